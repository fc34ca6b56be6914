package service

import (
	"context"
	"fmt"
	"net/url"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/pkg/svcerr"
)

const (
	LINKEDIN_AUTH_URL = "https://www.linkedin.com/oauth/v2/authorization"
	FACEBOOK_AUTH_URL = "https://www.facebook.com/v19.0/dialog/oauth"
)

type PlatformService interface {
	GetAuthURL(ctx context.Context, provider, state string) string
	ListAccounts(ctx context.Context, userID, companyID string) ([]*models.SocialAccount, error)
}

type platformService struct {
	cfg config.Config
	co  repository.CompanyRepository
	sa  repository.SocialAccountRepository
}

func NewPlatformService(cfg config.Config, co repository.CompanyRepository, sa repository.SocialAccountRepository) PlatformService {
	return &platformService{
		cfg: cfg,
		co:  co,
		sa:  sa,
	}
}

// GetAuthURL builds the provider authorization URL with the fixed scope set
// for that provider. No state is written anywhere at this stage.
func (s *platformService) GetAuthURL(ctx context.Context, provider, state string) string {
	switch provider {
	case models.ProviderLinkedin:
		params := url.Values{}
		params.Add("client_id", s.cfg.LinkedinClientID)
		params.Add("scope", "openid profile email w_member_social")
		params.Add("response_type", "code")
		params.Add("redirect_uri", s.cfg.LinkedinRedirectURI)
		params.Add("state", state)

		return fmt.Sprintf("%s?%s", LINKEDIN_AUTH_URL, params.Encode())

	case models.ProviderFacebook:
		params := url.Values{}
		params.Add("client_id", s.cfg.FacebookClientID)
		params.Add("scope", "pages_show_list,pages_manage_posts,pages_read_engagement,read_insights")
		params.Add("response_type", "code")
		params.Add("redirect_uri", s.cfg.FacebookRedirectURI)
		params.Add("state", state)

		return fmt.Sprintf("%s?%s", FACEBOOK_AUTH_URL, params.Encode())

	default:
		return ""
	}
}

func (s *platformService) ListAccounts(ctx context.Context, userID, companyID string) ([]*models.SocialAccount, error) {
	company, err := s.co.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, svcerr.NotFound("company not found")
	}
	if !company.HasMember(userID) {
		return nil, svcerr.Forbidden("not a member of this company")
	}

	accounts, err := s.sa.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts")
	}
	return accounts, nil
}
