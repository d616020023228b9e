package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"dettyclub/internal/model"
)

// In-memory repository fakes for service tests.

type fakePackageRepo struct {
	records []model.PackageRecord
}

func (f *fakePackageRepo) ListPackages(ctx context.Context, activeOnly bool) ([]model.PackageRecord, error) {
	if !activeOnly {
		return f.records, nil
	}
	out := []model.PackageRecord{}
	for _, r := range f.records {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePackageRepo) GetPackageByID(ctx context.Context, id string) (*model.PackageRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakePackageRepo) CreatePackage(ctx context.Context, p *model.PackageRecord) error {
	p.ID = fmt.Sprintf("pkg-%d", len(f.records)+1)
	f.records = append(f.records, *p)
	return nil
}

func (f *fakePackageRepo) UpdatePackage(ctx context.Context, p *model.PackageRecord) error {
	for i := range f.records {
		if f.records[i].ID == p.ID {
			f.records[i] = *p
			return nil
		}
	}
	return fmt.Errorf("no such package %s", p.ID)
}

func (f *fakePackageRepo) SetPackageActive(ctx context.Context, id string, active bool) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].IsActive = active
			return nil
		}
	}
	return fmt.Errorf("no such package %s", id)
}

type fakeSubscriptionRepo struct {
	active map[string]*model.Subscription
	byID   map[string]*model.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		active: map[string]*model.Subscription{},
		byID:   map[string]*model.Subscription{},
	}
}

func (f *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, s *model.Subscription) error {
	s.ID = fmt.Sprintf("sub-%d", len(f.byID)+1)
	f.byID[s.ID] = s
	f.active[s.UserID] = s
	return nil
}

func (f *fakeSubscriptionRepo) GetActiveByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	return f.active[userID], nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id string) (*model.Subscription, error) {
	return f.byID[id], nil
}

func (f *fakeSubscriptionRepo) UpdateSlots(ctx context.Context, id string, slots int) error {
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("no such subscription %s", id)
	}
	s.Slots = slots
	return nil
}

func (f *fakeSubscriptionRepo) SetStatus(ctx context.Context, id, status string) error {
	s, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("no such subscription %s", id)
	}
	s.Status = status
	return nil
}

func (f *fakeSubscriptionRepo) ListByPackage(ctx context.Context, packageID string, limit, offset int) ([]model.Subscription, error) {
	out := []model.Subscription{}
	for _, s := range f.byID {
		if s.PackageID == packageID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeContributionRepo struct {
	byID map[string]*model.Contribution
}

func newFakeContributionRepo() *fakeContributionRepo {
	return &fakeContributionRepo{byID: map[string]*model.Contribution{}}
}

func (f *fakeContributionRepo) CreateContribution(ctx context.Context, c *model.Contribution) error {
	c.ID = fmt.Sprintf("con-%d", len(f.byID)+1)
	f.byID[c.ID] = c
	return nil
}

func (f *fakeContributionRepo) GetByID(ctx context.Context, id string) (*model.Contribution, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeContributionRepo) ListByUserAndPackage(ctx context.Context, userID, packageID string) ([]model.Contribution, error) {
	out := []model.Contribution{}
	for _, c := range f.byID {
		if c.UserID == userID && c.PackageID == packageID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContributionRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]model.Contribution, error) {
	out := []model.Contribution{}
	for _, c := range f.byID {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContributionRepo) ListByPackageAndYear(ctx context.Context, packageID string, year int) ([]model.Contribution, error) {
	out := []model.Contribution{}
	for _, c := range f.byID {
		if c.PackageID == packageID && c.Year == year {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeContributionRepo) UpdateStatus(ctx context.Context, id, status, reviewedBy string) error {
	c, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("no such contribution %s", id)
	}
	c.Status = status
	c.ReviewedBy = reviewedBy
	return nil
}

type fakeDeliveryRepo struct {
	prefs      map[string]*model.DeliveryPreference
	fees       map[string]*model.DeliveryFee
	paidStates map[string]string
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{
		prefs:      map[string]*model.DeliveryPreference{},
		fees:       map[string]*model.DeliveryFee{},
		paidStates: map[string]string{},
	}
}

func (f *fakeDeliveryRepo) GetPreference(ctx context.Context, userID string) (*model.DeliveryPreference, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeDeliveryRepo) UpsertPreference(ctx context.Context, p *model.DeliveryPreference) error {
	existing, ok := f.prefs[p.UserID]
	if ok {
		p.StatePaidFor = existing.StatePaidFor
	}
	copied := *p
	f.prefs[p.UserID] = &copied
	return nil
}

func (f *fakeDeliveryRepo) MarkStatePaid(ctx context.Context, userID, state string) error {
	p, ok := f.prefs[userID]
	if !ok {
		return fmt.Errorf("no delivery preference for user %s", userID)
	}
	p.StatePaidFor = state
	f.paidStates[userID] = state
	return nil
}

func (f *fakeDeliveryRepo) ListFees(ctx context.Context) ([]model.DeliveryFee, error) {
	out := []model.DeliveryFee{}
	for _, fee := range f.fees {
		out = append(out, *fee)
	}
	return out, nil
}

func (f *fakeDeliveryRepo) GetFeeByState(ctx context.Context, state string) (*model.DeliveryFee, error) {
	fee, ok := f.fees[state]
	if !ok {
		return nil, nil
	}
	copied := *fee
	return &copied, nil
}

func (f *fakeDeliveryRepo) UpsertFee(ctx context.Context, fee *model.DeliveryFee) error {
	copied := *fee
	f.fees[fee.State] = &copied
	return nil
}

func (f *fakeDeliveryRepo) DeleteFee(ctx context.Context, state string) error {
	if _, ok := f.fees[state]; !ok {
		return fmt.Errorf("no fee for state %s", state)
	}
	delete(f.fees, state)
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	events [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	f.events = append(f.events, payload)
	return fmt.Sprintf("msg-%d", len(f.events)), nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
