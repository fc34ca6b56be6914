package models

import (
	"time"
)

type SocialAccount struct {
	ID                int64     `db:"id" json:"id"`
	CompanyID         string    `db:"company_id" json:"company_id"`
	Provider          string    `db:"provider" json:"provider"`
	ProviderAccountID string    `db:"provider_account_id" json:"provider_account_id"`
	AccountName       string    `db:"account_name" json:"account_name"`
	ProfilePicture    string    `db:"profile_picture_url" json:"profile_picture"`
	AccessToken       string    `db:"access_token" json:"-"`
	RefreshToken      string    `db:"refresh_token" json:"-"`
	TokenExpiresAt    time.Time `db:"token_expires_at" json:"token_expires_at"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

const (
	ProviderLinkedin = "linkedin"
	ProviderFacebook = "facebook"
)

// SupportedProvider reports whether the publish gateway knows the platform.
func SupportedProvider(provider string) bool {
	switch provider {
	case ProviderLinkedin, ProviderFacebook:
		return true
	}
	return false
}
