package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/socialops/content-api/internal/models"
)

type BrandKBRepository interface {
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.BrandKB, error)
	UpdateRules(ctx context.Context, id, rules string) error
}

type brandKBRepository struct {
	db *sql.DB
}

func NewBrandKBRepository(db *sql.DB) BrandKBRepository {
	return &brandKBRepository{db: db}
}

func (r *brandKBRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.BrandKB, error) {
	query := `
		SELECT id, company_id, rules, created_at, updated_at
		FROM brand_knowledge WHERE id = $1 AND company_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, companyID)

	var kb models.BrandKB
	err := row.Scan(&kb.ID, &kb.CompanyID, &kb.Rules, &kb.CreatedAt, &kb.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &kb, nil
}

func (r *brandKBRepository) UpdateRules(ctx context.Context, id, rules string) error {
	query := `
		UPDATE brand_knowledge
		SET rules = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, rules, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
