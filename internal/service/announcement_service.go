package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"dettyclub/internal/model"
	"dettyclub/internal/pubsub"
	"dettyclub/internal/repository"
)

// ErrAnnouncementNotFound is returned when no announcement exists for the given id.
var ErrAnnouncementNotFound = errors.New("announcement_not_found")

// AnnouncementService defines business logic for club announcements.
type AnnouncementService interface {
	Publish(ctx context.Context, a *model.Announcement) error
	Update(ctx context.Context, a *model.Announcement) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Announcement, error)
	ListActive(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	SetPinned(ctx context.Context, id string, pinned bool) error
}

type announcementService struct {
	repo       repository.AnnouncementRepository
	publisher  pubsub.Publisher
	eventTopic string
	logger     zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(repo repository.AnnouncementRepository, publisher pubsub.Publisher, eventTopic string, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		repo:       repo,
		publisher:  publisher,
		eventTopic: eventTopic,
		logger:     logger.With().Str("service", "AnnouncementService").Logger(),
	}
}

// Publish stores a new announcement and emits an event for the notification
// fan-out. Event delivery is best effort.
func (s *announcementService) Publish(ctx context.Context, a *model.Announcement) error {
	if a.Title == "" {
		return errors.New("announcement title is required")
	}
	if err := s.repo.CreateAnnouncement(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("title", a.Title).Msg("Failed to create announcement")
		return err
	}

	if s.publisher != nil && a.Active {
		payload, err := json.Marshal(map[string]string{
			"event":           "announcement.published",
			"announcement_id": a.ID,
			"title":           a.Title,
		})
		if err == nil {
			if _, err := s.publisher.Publish(ctx, s.eventTopic, payload); err != nil {
				s.logger.Error().Err(err).Str("announcement_id", a.ID).Msg("Failed to publish announcement event")
			}
		}
	}
	return nil
}

func (s *announcementService) Update(ctx context.Context, a *model.Announcement) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAnnouncementNotFound
	}
	if err := s.repo.UpdateAnnouncement(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("announcement_id", a.ID).Msg("Failed to update announcement")
		return err
	}
	return nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteAnnouncement(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("announcement_id", id).Msg("Failed to delete announcement")
		return err
	}
	return nil
}

func (s *announcementService) Get(ctx context.Context, id string) (*model.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAnnouncementNotFound
	}
	return a, nil
}

func (s *announcementService) ListActive(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *announcementService) ListAll(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	return s.repo.ListAll(ctx, limit, offset)
}

func (s *announcementService) SetPinned(ctx context.Context, id string, pinned bool) error {
	if err := s.repo.SetPinned(ctx, id, pinned); err != nil {
		s.logger.Error().Err(err).Str("announcement_id", id).Msg("Failed to pin announcement")
		return err
	}
	return nil
}
