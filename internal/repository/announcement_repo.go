package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dettyclub/internal/model"
)

// AnnouncementRepository defines methods for accessing announcements.
type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, a *model.Announcement) error
	UpdateAnnouncement(ctx context.Context, a *model.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	ListActive(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	SetPinned(ctx context.Context, id string, pinned bool) error
}

type announcementRepo struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepo creates a new AnnouncementRepository.
func NewAnnouncementRepo(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepo{pool: pool}
}

const announcementColumns = `id, title, body, pinned, active, created_by, published_at, created_at, updated_at`

func (r *announcementRepo) CreateAnnouncement(ctx context.Context, a *model.Announcement) error {
	const q = `
        INSERT INTO announcements (title, body, pinned, active, created_by, published_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, published_at, created_at, updated_at
    `
	err := r.pool.QueryRow(ctx, q, a.Title, a.Body, a.Pinned, a.Active, a.CreatedBy).
		Scan(&a.ID, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create announcement %q: %w", a.Title, err)
	}
	return nil
}

func (r *announcementRepo) UpdateAnnouncement(ctx context.Context, a *model.Announcement) error {
	const q = `
        UPDATE announcements
        SET title = $2, body = $3, active = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at
    `
	if err := r.pool.QueryRow(ctx, q, a.ID, a.Title, a.Body, a.Active).Scan(&a.UpdatedAt); err != nil {
		return fmt.Errorf("update announcement %s: %w", a.ID, err)
	}
	return nil
}

func (r *announcementRepo) DeleteAnnouncement(ctx context.Context, id string) error {
	const q = `DELETE FROM announcements WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete announcement %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete announcement %s: no such announcement", id)
	}
	return nil
}

func (r *announcementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	q := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	var a model.Announcement
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&a.ID, &a.Title, &a.Body, &a.Pinned, &a.Active, &a.CreatedBy, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch announcement %s: %w", id, err)
	}
	return &a, nil
}

// ListActive returns visible announcements, pinned ones first.
func (r *announcementRepo) ListActive(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	q := `
        SELECT ` + announcementColumns + `
        FROM announcements
        WHERE active
        ORDER BY pinned DESC, published_at DESC
        LIMIT $1 OFFSET $2
    `
	return r.list(ctx, q, limit, offset)
}

func (r *announcementRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	q := `
        SELECT ` + announcementColumns + `
        FROM announcements
        ORDER BY published_at DESC
        LIMIT $1 OFFSET $2
    `
	return r.list(ctx, q, limit, offset)
}

func (r *announcementRepo) list(ctx context.Context, q string, args ...any) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	anns := []model.Announcement{}
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Pinned, &a.Active, &a.CreatedBy, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement row: %w", err)
		}
		anns = append(anns, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list announcements rows: %w", err)
	}
	return anns, nil
}

func (r *announcementRepo) SetPinned(ctx context.Context, id string, pinned bool) error {
	const q = `UPDATE announcements SET pinned = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, id, pinned)
	if err != nil {
		return fmt.Errorf("set pinned=%t for announcement %s: %w", pinned, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set pinned for announcement %s: no such announcement", id)
	}
	return nil
}
