package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/socialops/content-api/internal/models"
)

type ContentRepository interface {
	GetByID(ctx context.Context, id string) (*models.ContentItem, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.ContentItem, error)
	UpdateReview(ctx context.Context, id, status, dmp string) error
	UpdateCaption(ctx context.Context, id, caption, status string) error
	SetPublished(ctx context.Context, id, provider, postID string) error
	ListDueScheduled(ctx context.Context, due time.Time) ([]*models.ContentItem, error)
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, company_id, status, caption, dmp,
	COALESCE(social_post_id, ''), COALESCE(social_provider, ''),
	COALESCE(target_provider, ''), COALESCE(target_account_id, 0),
	scheduled_time, created_at, updated_at`

func scanContentItem(row interface{ Scan(...interface{}) error }) (*models.ContentItem, error) {
	var item models.ContentItem
	err := row.Scan(&item.ID, &item.CompanyID, &item.Status, &item.Caption, &item.DMP,
		&item.SocialPostID, &item.SocialProvider, &item.TargetProvider,
		&item.TargetAccountID, &item.ScheduledTime, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_calendar WHERE id = $1`
	item, err := scanContentItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return item, nil
}

// GetByIDAndCompany scopes the lookup by both id and company so a guessed id
// can never cross tenants.
func (r *contentRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_calendar WHERE id = $1 AND company_id = $2`
	item, err := scanContentItem(r.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return item, nil
}

// UpdateReview writes status and review metadata by absolute value, so a
// retried webhook lands on the same row state.
func (r *contentRepository) UpdateReview(ctx context.Context, id, status, dmp string) error {
	query := `
		UPDATE content_calendar
		SET status = $1,
			dmp = COALESCE(NULLIF($2, ''), dmp),
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, dmp, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) UpdateCaption(ctx context.Context, id, caption, status string) error {
	query := `
		UPDATE content_calendar
		SET caption = $1,
			status = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, caption, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// SetPublished is the single write site for social_post_id/social_provider;
// the pair is always set together, and only with status PUBLISHED.
func (r *contentRepository) SetPublished(ctx context.Context, id, provider, postID string) error {
	query := `
		UPDATE content_calendar
		SET social_post_id = $1,
			social_provider = $2,
			status = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, postID, provider, models.ContentStatusPublished, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) ListDueScheduled(ctx context.Context, due time.Time) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + `
		FROM content_calendar
		WHERE status = $1 AND scheduled_time <= $2`
	rows, err := r.db.QueryContext(ctx, query, models.ContentStatusScheduled, due)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return items, nil
}
