package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dettyclub/internal/model"
	"dettyclub/internal/pgmq"
	"dettyclub/internal/pubsub"
	"dettyclub/internal/repository"
	"dettyclub/internal/valuation"
)

var (
	// ErrContributionNotFound is returned when no contribution exists for the given id.
	ErrContributionNotFound = errors.New("contribution_not_found")
	// ErrNoActiveSubscription is returned when a member without an active
	// subscription tries to record a payment.
	ErrNoActiveSubscription = errors.New("no_active_subscription")
	// ErrInvalidTransition is returned when a review lands on a contribution
	// that is no longer pending.
	ErrInvalidTransition = errors.New("invalid_status_transition")
)

// ContributionService defines business logic around payment records, their
// review lifecycle and the receipt store.
type ContributionService interface {
	Record(ctx context.Context, c *model.Contribution) (*model.Contribution, string, error)
	History(ctx context.Context, userID, packageID string) ([]model.Contribution, error)
	GetProgress(ctx context.Context, userID string) (*valuation.ProgressSummary, error)
	ListPending(ctx context.Context, limit, offset int) ([]model.Contribution, error)
	Approve(ctx context.Context, id, reviewedBy string) error
	Decline(ctx context.Context, id, reviewedBy string) error
	ReceiptDownloadURL(ctx context.Context, id string) (string, error)
}

type contributionService struct {
	repo          repository.ContributionRepository
	subRepo       repository.SubscriptionRepository
	deliveryRepo  repository.DeliveryRepository
	catalog       CatalogService
	presignClient *s3.PresignClient
	bucketName    string
	publisher     pubsub.Publisher
	eventTopic    string
	queue         *pgmq.Client
	queueName     string
	logger        zerolog.Logger
}

// NewContributionService creates a new ContributionService.
func NewContributionService(
	repo repository.ContributionRepository,
	subRepo repository.SubscriptionRepository,
	deliveryRepo repository.DeliveryRepository,
	catalog CatalogService,
	s3Client *s3.Client,
	bucketName string,
	publisher pubsub.Publisher,
	eventTopic string,
	queue *pgmq.Client,
	queueName string,
	logger zerolog.Logger,
) ContributionService {
	return &contributionService{
		repo:          repo,
		subRepo:       subRepo,
		deliveryRepo:  deliveryRepo,
		catalog:       catalog,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		publisher:     publisher,
		eventTopic:    eventTopic,
		queue:         queue,
		queueName:     queueName,
		logger:        logger.With().Str("service", "ContributionService").Logger(),
	}
}

// Record creates a pending contribution for the member's active subscription
// and returns a presigned PUT URL for the payment receipt.
func (s *contributionService) Record(ctx context.Context, c *model.Contribution) (*model.Contribution, string, error) {
	sub, err := s.subRepo.GetActiveByUser(ctx, c.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to look up subscription")
		return nil, "", err
	}
	if sub == nil {
		return nil, "", ErrNoActiveSubscription
	}

	c.PackageID = sub.PackageID
	c.Status = model.ContributionStatusPending
	if c.Type == "" {
		c.Type = model.ContributionTypeSavings
	}
	c.ReceiptKey = fmt.Sprintf("receipts/%s/%s.jpg", c.UserID, uuid.NewString())

	if err := s.repo.CreateContribution(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to create contribution")
		return nil, "", err
	}

	uploadURL, err := s.presignPut(ctx, c.ReceiptKey)
	if err != nil {
		s.logger.Error().Err(err).Str("contribution_id", c.ID).Msg("Failed to generate receipt upload URL")
		return nil, "", fmt.Errorf("generate receipt upload url: %w", err)
	}
	return c, uploadURL, nil
}

func (s *contributionService) History(ctx context.Context, userID, packageID string) ([]model.Contribution, error) {
	contribs, err := s.repo.ListByUserAndPackage(ctx, userID, packageID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list contributions")
		return nil, err
	}
	return contribs, nil
}

// GetProgress computes the member's savings progress on their active
// subscription from raw contribution records.
func (s *contributionService) GetProgress(ctx context.Context, userID string) (*valuation.ProgressSummary, error) {
	sub, err := s.subRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}
	pkg, err := s.catalog.GetPackage(ctx, sub.PackageID)
	if err != nil {
		return nil, err
	}
	contribs, err := s.repo.ListByUserAndPackage(ctx, userID, sub.PackageID)
	if err != nil {
		return nil, err
	}
	summary := valuation.ComputeProgress(contribs, *pkg, sub.Slots, valuation.DefaultRequiredPeriods)
	return &summary, nil
}

func (s *contributionService) ListPending(ctx context.Context, limit, offset int) ([]model.Contribution, error) {
	return s.repo.ListByStatus(ctx, model.ContributionStatusPending, limit, offset)
}

// Approve confirms a pending contribution. Approving a delivery-fee payment
// additionally locks the member's delivery preference to the paid state.
func (s *contributionService) Approve(ctx context.Context, id, reviewedBy string) error {
	c, err := s.pendingOrFail(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, model.ContributionStatusApproved, reviewedBy); err != nil {
		s.logger.Error().Err(err).Str("contribution_id", id).Msg("Failed to approve contribution")
		return err
	}

	if c.Type == model.ContributionTypeDelivery {
		pref, err := s.deliveryRepo.GetPreference(ctx, c.UserID)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to fetch delivery preference after approval")
		} else if pref != nil && pref.State != "" {
			if err := s.deliveryRepo.MarkStatePaid(ctx, c.UserID, pref.State); err != nil {
				s.logger.Error().Err(err).Str("user_id", c.UserID).Msg("Failed to lock delivery preference")
			}
		}
	}

	s.emit(ctx, "contribution.approved", c, reviewedBy)
	return nil
}

// Decline rejects a pending contribution.
func (s *contributionService) Decline(ctx context.Context, id, reviewedBy string) error {
	c, err := s.pendingOrFail(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, model.ContributionStatusDeclined, reviewedBy); err != nil {
		s.logger.Error().Err(err).Str("contribution_id", id).Msg("Failed to decline contribution")
		return err
	}
	s.emit(ctx, "contribution.declined", c, reviewedBy)
	return nil
}

// ReceiptDownloadURL generates a short-lived signed GET URL for a
// contribution's stored receipt.
func (s *contributionService) ReceiptDownloadURL(ctx context.Context, id string) (string, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", ErrContributionNotFound
	}
	if c.ReceiptKey == "" {
		return "", fmt.Errorf("contribution %s has no receipt", id)
	}
	resp, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucketName,
		Key:    &c.ReceiptKey,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("presign receipt download for contribution %s: %w", id, err)
	}
	return resp.URL, nil
}

func (s *contributionService) pendingOrFail(ctx context.Context, id string) (*model.Contribution, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContributionNotFound
	}
	if c.Status != model.ContributionStatusPending {
		return nil, ErrInvalidTransition
	}
	return c, nil
}

func (s *contributionService) presignPut(ctx context.Context, key string) (string, error) {
	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}
	return request.URL, nil
}

// emit publishes a review event to Pub/Sub and enqueues a notification job.
// Event delivery is best effort and never fails the review itself.
func (s *contributionService) emit(ctx context.Context, event string, c *model.Contribution, reviewedBy string) {
	payload, err := json.Marshal(map[string]string{
		"event":           event,
		"contribution_id": c.ID,
		"user_id":         c.UserID,
		"package_id":      c.PackageID,
		"amount":          c.Amount.String(),
		"reviewed_by":     reviewedBy,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("contribution_id", c.ID).Msg("Failed to marshal event payload")
		return
	}
	if s.publisher != nil {
		if _, err := s.publisher.Publish(ctx, s.eventTopic, payload); err != nil {
			s.logger.Error().Err(err).Str("event", event).Msg("Failed to publish event")
		}
	}
	if s.queue != nil {
		if err := s.queue.Send(ctx, s.queueName, payload); err != nil {
			s.logger.Error().Err(err).Str("event", event).Msg("Failed to enqueue notification")
		}
	}
}
