package service

import (
	"context"
	"errors"
	"testing"

	"dettyclub/internal/model"
)

func newTestSubscriptionService(subRepo *fakeSubscriptionRepo) SubscriptionService {
	catalog := NewCatalogService(&fakePackageRepo{records: []model.PackageRecord{{
		ID:                  "p1",
		Name:                "Basic Box",
		MonthlyContribution: "5000",
		YearlyContribution:  "60000",
		PackageWorth:        "85700",
		IsActive:            true,
	}}}, testLogger())
	return NewSubscriptionService(subRepo, catalog, testLogger())
}

func TestSubscribeDefaultsToOneSlot(t *testing.T) {
	svc := newTestSubscriptionService(newFakeSubscriptionRepo())

	sub, err := svc.Subscribe(context.Background(), "u1", "p1", 0)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	if sub.Slots != 1 {
		t.Fatalf("expected 1 slot, got %d", sub.Slots)
	}
	if sub.Status != model.SubscriptionStatusActive {
		t.Fatalf("expected active status, got %s", sub.Status)
	}
}

func TestSubscribeRejectsSecondSubscription(t *testing.T) {
	svc := newTestSubscriptionService(newFakeSubscriptionRepo())
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "u1", "p1", 1); err != nil {
		t.Fatalf("first Subscribe returned error: %v", err)
	}
	if _, err := svc.Subscribe(ctx, "u1", "p1", 1); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
}

func TestSubscribeUnknownPackage(t *testing.T) {
	svc := newTestSubscriptionService(newFakeSubscriptionRepo())
	if _, err := svc.Subscribe(context.Background(), "u1", "missing", 1); !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestChangeSlots(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	svc := newTestSubscriptionService(subRepo)
	ctx := context.Background()

	if _, err := svc.Subscribe(ctx, "u1", "p1", 1); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	sub, err := svc.ChangeSlots(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("ChangeSlots returned error: %v", err)
	}
	if sub.Slots != 3 {
		t.Fatalf("expected 3 slots, got %d", sub.Slots)
	}
}

func TestChangeSlotsWithoutSubscription(t *testing.T) {
	svc := newTestSubscriptionService(newFakeSubscriptionRepo())
	if _, err := svc.ChangeSlots(context.Background(), "u1", 2); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestSetStatusValidatesValue(t *testing.T) {
	subRepo := newFakeSubscriptionRepo()
	svc := newTestSubscriptionService(subRepo)
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "u1", "p1", 1)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	if err := svc.SetStatus(ctx, sub.ID, "paused"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := svc.SetStatus(ctx, sub.ID, model.SubscriptionStatusSuspended); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if subRepo.byID[sub.ID].Status != model.SubscriptionStatusSuspended {
		t.Fatalf("expected suspended, got %s", subRepo.byID[sub.ID].Status)
	}
}
