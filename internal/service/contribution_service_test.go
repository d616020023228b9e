package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/shopspring/decimal"

	"dettyclub/internal/model"
)

func newTestContributionService(
	contribRepo *fakeContributionRepo,
	subRepo *fakeSubscriptionRepo,
	deliveryRepo *fakeDeliveryRepo,
	publisher *fakePublisher,
) ContributionService {
	catalog := NewCatalogService(&fakePackageRepo{records: []model.PackageRecord{{
		ID:                  "p1",
		Name:                "Basic Box",
		MonthlyContribution: "5000",
		YearlyContribution:  "60000",
		PackageWorth:        "85700",
		IsActive:            true,
	}}}, testLogger())
	return NewContributionService(
		contribRepo, subRepo, deliveryRepo, catalog,
		s3.New(s3.Options{Region: "us-east-1"}), "receipts",
		publisher, "club-events",
		nil, "notification_queue",
		testLogger(),
	)
}

func TestRecordRequiresActiveSubscription(t *testing.T) {
	svc := newTestContributionService(newFakeContributionRepo(), newFakeSubscriptionRepo(), newFakeDeliveryRepo(), &fakePublisher{})

	_, _, err := svc.Record(context.Background(), &model.Contribution{
		UserID: "u1",
		Amount: decimal.NewFromInt(5000),
		Month:  1,
		Year:   2026,
	})
	if !errors.Is(err, ErrNoActiveSubscription) {
		t.Fatalf("expected ErrNoActiveSubscription, got %v", err)
	}
}

func TestApprovePendingContribution(t *testing.T) {
	contribRepo := newFakeContributionRepo()
	subRepo := newFakeSubscriptionRepo()
	publisher := &fakePublisher{}
	svc := newTestContributionService(contribRepo, subRepo, newFakeDeliveryRepo(), publisher)

	c := &model.Contribution{
		UserID:    "u1",
		PackageID: "p1",
		Amount:    decimal.NewFromInt(5000),
		Status:    model.ContributionStatusPending,
		Type:      model.ContributionTypeSavings,
	}
	contribRepo.CreateContribution(context.Background(), c)

	if err := svc.Approve(context.Background(), c.ID, "admin-1"); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	stored := contribRepo.byID[c.ID]
	if stored.Status != model.ContributionStatusApproved {
		t.Fatalf("expected status approved, got %s", stored.Status)
	}
	if stored.ReviewedBy != "admin-1" {
		t.Fatalf("expected reviewer admin-1, got %s", stored.ReviewedBy)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	var event map[string]string
	if err := json.Unmarshal(publisher.events[0], &event); err != nil {
		t.Fatalf("failed to unmarshal event: %v", err)
	}
	if event["event"] != "contribution.approved" {
		t.Fatalf("expected contribution.approved event, got %s", event["event"])
	}
	if event["contribution_id"] != c.ID {
		t.Fatalf("expected contribution_id %s, got %s", c.ID, event["contribution_id"])
	}
}

func TestApproveRejectsNonPending(t *testing.T) {
	contribRepo := newFakeContributionRepo()
	svc := newTestContributionService(contribRepo, newFakeSubscriptionRepo(), newFakeDeliveryRepo(), &fakePublisher{})

	c := &model.Contribution{
		UserID:    "u1",
		PackageID: "p1",
		Amount:    decimal.NewFromInt(5000),
		Status:    model.ContributionStatusDeclined,
		Type:      model.ContributionTypeSavings,
	}
	contribRepo.CreateContribution(context.Background(), c)

	if err := svc.Approve(context.Background(), c.ID, "admin-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := svc.Decline(context.Background(), c.ID, "admin-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApproveMissingContribution(t *testing.T) {
	svc := newTestContributionService(newFakeContributionRepo(), newFakeSubscriptionRepo(), newFakeDeliveryRepo(), &fakePublisher{})
	if err := svc.Approve(context.Background(), "missing", "admin-1"); !errors.Is(err, ErrContributionNotFound) {
		t.Fatalf("expected ErrContributionNotFound, got %v", err)
	}
}

func TestApproveDeliveryPaymentLocksPreference(t *testing.T) {
	contribRepo := newFakeContributionRepo()
	deliveryRepo := newFakeDeliveryRepo()
	svc := newTestContributionService(contribRepo, newFakeSubscriptionRepo(), deliveryRepo, &fakePublisher{})

	deliveryRepo.prefs["u1"] = &model.DeliveryPreference{
		UserID: "u1",
		Method: model.DeliveryMethodDelivery,
		State:  "Lagos",
	}
	c := &model.Contribution{
		UserID:    "u1",
		PackageID: "p1",
		Amount:    decimal.NewFromInt(3500),
		Status:    model.ContributionStatusPending,
		Type:      model.ContributionTypeDelivery,
	}
	contribRepo.CreateContribution(context.Background(), c)

	if err := svc.Approve(context.Background(), c.ID, "admin-1"); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if got := deliveryRepo.paidStates["u1"]; got != "Lagos" {
		t.Fatalf("expected state Lagos marked paid, got %q", got)
	}
}

func TestDeclineDoesNotTouchDelivery(t *testing.T) {
	contribRepo := newFakeContributionRepo()
	deliveryRepo := newFakeDeliveryRepo()
	svc := newTestContributionService(contribRepo, newFakeSubscriptionRepo(), deliveryRepo, &fakePublisher{})

	deliveryRepo.prefs["u1"] = &model.DeliveryPreference{
		UserID: "u1",
		Method: model.DeliveryMethodDelivery,
		State:  "Lagos",
	}
	c := &model.Contribution{
		UserID:    "u1",
		PackageID: "p1",
		Amount:    decimal.NewFromInt(3500),
		Status:    model.ContributionStatusPending,
		Type:      model.ContributionTypeDelivery,
	}
	contribRepo.CreateContribution(context.Background(), c)

	if err := svc.Decline(context.Background(), c.ID, "admin-1"); err != nil {
		t.Fatalf("Decline returned error: %v", err)
	}
	if got := deliveryRepo.paidStates["u1"]; got != "" {
		t.Fatalf("expected no state marked paid, got %q", got)
	}
	if contribRepo.byID[c.ID].Status != model.ContributionStatusDeclined {
		t.Fatalf("expected status declined, got %s", contribRepo.byID[c.ID].Status)
	}
}

func TestGetProgressUsesActiveSubscription(t *testing.T) {
	contribRepo := newFakeContributionRepo()
	subRepo := newFakeSubscriptionRepo()
	svc := newTestContributionService(contribRepo, subRepo, newFakeDeliveryRepo(), &fakePublisher{})

	subRepo.CreateSubscription(context.Background(), &model.Subscription{
		UserID:    "u1",
		PackageID: "p1",
		Slots:     1,
		Status:    model.SubscriptionStatusActive,
	})
	for month := 1; month <= 4; month++ {
		contribRepo.CreateContribution(context.Background(), &model.Contribution{
			UserID:    "u1",
			PackageID: "p1",
			Amount:    decimal.NewFromInt(5000),
			Status:    model.ContributionStatusApproved,
			Type:      model.ContributionTypeSavings,
			Month:     month,
			Year:      2026,
		})
	}

	summary, err := svc.GetProgress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetProgress returned error: %v", err)
	}
	if summary.ConfirmedCount != 4 {
		t.Fatalf("expected 4 confirmed periods, got %d", summary.ConfirmedCount)
	}
	if got := summary.TotalContributed.String(); got != "20000" {
		t.Fatalf("expected total contributed 20000, got %s", got)
	}
	if got := summary.CurrentInKindValue.String(); got != "28567" {
		t.Fatalf("expected in-kind value 28567, got %s", got)
	}
}
