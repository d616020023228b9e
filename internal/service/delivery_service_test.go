package service

import (
	"context"
	"errors"
	"testing"

	"dettyclub/internal/model"
)

func TestGetPreferenceDefaultsToPickup(t *testing.T) {
	svc := NewDeliveryService(newFakeDeliveryRepo(), testLogger())

	pref, err := svc.GetPreference(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetPreference returned error: %v", err)
	}
	if pref.Method != model.DeliveryMethodPickup {
		t.Fatalf("expected default method pickup, got %s", pref.Method)
	}
}

func TestSetPreferenceBeforePaymentIsFree(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := NewDeliveryService(repo, testLogger())
	ctx := context.Background()

	if err := svc.SetPreference(ctx, &model.DeliveryPreference{
		UserID: "u1", Method: model.DeliveryMethodDelivery, State: "Lagos", AddressLine: "12 Marina Rd",
	}); err != nil {
		t.Fatalf("SetPreference returned error: %v", err)
	}
	// Not paid yet, switching back to pickup is allowed.
	if err := svc.SetPreference(ctx, &model.DeliveryPreference{
		UserID: "u1", Method: model.DeliveryMethodPickup,
	}); err != nil {
		t.Fatalf("expected free switch before payment, got %v", err)
	}
}

func TestSetPreferenceLockedAfterPayment(t *testing.T) {
	repo := newFakeDeliveryRepo()
	svc := NewDeliveryService(repo, testLogger())
	ctx := context.Background()

	repo.prefs["u1"] = &model.DeliveryPreference{
		UserID:       "u1",
		Method:       model.DeliveryMethodDelivery,
		State:        "Lagos",
		StatePaidFor: "Lagos",
	}

	// Reverting to pickup is rejected.
	err := svc.SetPreference(ctx, &model.DeliveryPreference{UserID: "u1", Method: model.DeliveryMethodPickup})
	if !errors.Is(err, ErrDeliveryLocked) {
		t.Fatalf("expected ErrDeliveryLocked on method change, got %v", err)
	}

	// Moving to another state is rejected.
	err = svc.SetPreference(ctx, &model.DeliveryPreference{
		UserID: "u1", Method: model.DeliveryMethodDelivery, State: "Abuja",
	})
	if !errors.Is(err, ErrDeliveryLocked) {
		t.Fatalf("expected ErrDeliveryLocked on state change, got %v", err)
	}

	// Updating address details within the paid state is still allowed.
	if err := svc.SetPreference(ctx, &model.DeliveryPreference{
		UserID: "u1", Method: model.DeliveryMethodDelivery, State: "Lagos", AddressLine: "New address",
	}); err != nil {
		t.Fatalf("expected address update within paid state to pass, got %v", err)
	}
}

func TestSetPreferenceRejectsUnknownMethod(t *testing.T) {
	svc := NewDeliveryService(newFakeDeliveryRepo(), testLogger())
	err := svc.SetPreference(context.Background(), &model.DeliveryPreference{UserID: "u1", Method: "teleport"})
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestFeeForStateNotFound(t *testing.T) {
	svc := NewDeliveryService(newFakeDeliveryRepo(), testLogger())
	if _, err := svc.FeeForState(context.Background(), "Kano"); !errors.Is(err, ErrFeeNotFound) {
		t.Fatalf("expected ErrFeeNotFound, got %v", err)
	}
}
