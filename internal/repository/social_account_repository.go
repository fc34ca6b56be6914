package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/socialops/content-api/internal/models"
)

type SocialAccountRepository interface {
	Upsert(ctx context.Context, sa *models.SocialAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialAccount, error)
	GetForPublish(ctx context.Context, companyID, provider string, accountID int64) (*models.SocialAccount, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]*models.SocialAccount, error)
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

// Upsert writes a social account by its natural key. Re-connecting the same
// provider account replaces the token fields in place; the data store's
// single-row atomicity is the only consistency relied on.
func (r *socialAccountRepository) Upsert(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	query := `
		INSERT INTO social_accounts(
			company_id,
			provider,
			provider_account_id,
			account_name,
			profile_picture_url,
			access_token,
			refresh_token,
			token_expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_id, provider, provider_account_id) DO UPDATE
		SET account_name = EXCLUDED.account_name,
			profile_picture_url = EXCLUDED.profile_picture_url,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		sa.CompanyID,
		sa.Provider,
		sa.ProviderAccountID,
		sa.AccountName,
		sa.ProfilePicture,
		sa.AccessToken,
		sa.RefreshToken,
		sa.TokenExpiresAt,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	query := `
		SELECT id, company_id, provider, provider_account_id, account_name,
			profile_picture_url, access_token, refresh_token, token_expires_at,
			created_at, updated_at
		FROM social_accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var sa models.SocialAccount
	err := row.Scan(&sa.ID, &sa.CompanyID, &sa.Provider, &sa.ProviderAccountID,
		&sa.AccountName, &sa.ProfilePicture, &sa.AccessToken, &sa.RefreshToken,
		&sa.TokenExpiresAt, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &sa, nil
}

// GetForPublish resolves the credential for (company, provider[, account]).
// With accountID zero the most recently refreshed account wins; a company can
// hold several accounts per provider (e.g. Facebook pages).
func (r *socialAccountRepository) GetForPublish(ctx context.Context, companyID, provider string, accountID int64) (*models.SocialAccount, error) {
	query := `
		SELECT id, company_id, provider, provider_account_id, account_name,
			profile_picture_url, access_token, refresh_token, token_expires_at,
			created_at, updated_at
		FROM social_accounts
		WHERE company_id = $1 AND provider = $2`
	args := []interface{}{companyID, provider}

	if accountID != 0 {
		query += ` AND id = $3`
		args = append(args, accountID)
	} else {
		query += ` ORDER BY updated_at DESC LIMIT 1`
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var sa models.SocialAccount
	err := row.Scan(&sa.ID, &sa.CompanyID, &sa.Provider, &sa.ProviderAccountID,
		&sa.AccountName, &sa.ProfilePicture, &sa.AccessToken, &sa.RefreshToken,
		&sa.TokenExpiresAt, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &sa, nil
}

func (r *socialAccountRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*models.SocialAccount, error) {
	query := `
		SELECT id, company_id, provider, provider_account_id, account_name,
			profile_picture_url, token_expires_at
		FROM social_accounts WHERE company_id = $1`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		var sa models.SocialAccount
		err := rows.Scan(&sa.ID, &sa.CompanyID, &sa.Provider, &sa.ProviderAccountID,
			&sa.AccountName, &sa.ProfilePicture, &sa.TokenExpiresAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &sa)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return accounts, nil
}
