package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/socialops/content-api/internal/models"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Company, error)
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	query := `
		SELECT id, name, owner_id, collaborators, created_at, updated_at
		FROM companies WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var company models.Company
	err := row.Scan(&company.ID, &company.Name, &company.OwnerID,
		pq.Array(&company.Collaborators), &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &company, nil
}
