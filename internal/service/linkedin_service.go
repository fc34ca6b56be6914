package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
	"github.com/socialops/content-api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

const linkedinAPIURL = "https://api.linkedin.com"

type LinkedinService interface {
	LinkedinCallback(ctx context.Context, code string, state *transfer.ConnectState) error
	Publish(ctx context.Context, accountID, accessToken string, content transfer.PublishContent) (*transfer.PublishResult, error)
}

type linkedinService struct {
	cfg      config.Config
	sa       repository.SocialAccountRepository
	apiURL   string
	endpoint oauth2.Endpoint
	client   *http.Client
}

func NewLinkedinService(cfg config.Config, sa repository.SocialAccountRepository) LinkedinService {
	return &linkedinService{
		cfg:      cfg,
		sa:       sa,
		apiURL:   linkedinAPIURL,
		endpoint: linkedin.Endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *linkedinService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.LinkedinClientID,
		ClientSecret: s.cfg.LinkedinClientSecret,
		RedirectURL:  s.cfg.LinkedinRedirectURI,
		Scopes:       []string{"openid", "profile", "email", "w_member_social"},
		Endpoint:     s.endpoint,
	}
}

// LinkedinCallback exchanges the authorization code, resolves the member
// profile and upserts one social account for the connecting company. The
// token expiry LinkedIn reports is recorded as-is; there is no auto-refresh.
func (s *linkedinService) LinkedinCallback(ctx context.Context, code string, state *transfer.ConnectState) error {
	if code == "" {
		err := errors.New("authorization code is empty")
		slog.Info(err.Error())
		return err
	}

	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	profile, err := s.getProfile(ctx, token.AccessToken)
	if err != nil {
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefreshToken := ""
	if token.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	account := &models.SocialAccount{
		CompanyID:         state.CompanyID,
		Provider:          models.ProviderLinkedin,
		ProviderAccountID: profile.Sub,
		AccountName:       profile.Name,
		ProfilePicture:    profile.Picture,
		AccessToken:       encryptedAccessToken,
		RefreshToken:      encryptedRefreshToken,
		TokenExpiresAt:    token.Expiry,
	}

	if _, err := s.sa.Upsert(ctx, account); err != nil {
		return err
	}

	return nil
}

func (s *linkedinService) getProfile(ctx context.Context, accessToken string) (*transfer.LinkedinProfile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.apiURL+"/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to fetch linkedin profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Info("linkedin userinfo error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code from linkedin: %d", resp.StatusCode)
	}

	var profile transfer.LinkedinProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if profile.Sub == "" {
		return nil, errors.New("linkedin profile has no member id")
	}

	return &profile, nil
}

// Publish creates a UGC post for the member and returns the normalized
// result. LinkedIn nests the created id under "id" as an activity URN.
func (s *linkedinService) Publish(ctx context.Context, accountID, accessToken string, content transfer.PublishContent) (*transfer.PublishResult, error) {
	shareMediaCategory := "NONE"
	media := []map[string]interface{}{}
	if content.Link != "" {
		shareMediaCategory = "ARTICLE"
		media = append(media, map[string]interface{}{
			"status":      "READY",
			"originalUrl": content.Link,
		})
	}

	shareContent := map[string]interface{}{
		"shareCommentary":    map[string]string{"text": content.Text},
		"shareMediaCategory": shareMediaCategory,
	}
	if len(media) > 0 {
		shareContent["media"] = media
	}

	payload := map[string]interface{}{
		"author":         fmt.Sprintf("urn:li:person:%s", accountID),
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": shareContent,
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL+"/v2/ugcPosts", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("linkedin publish failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var apiErr transfer.LinkedinErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		slog.Info("linkedin publish error", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, svcerr.Upstream("linkedin publish failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var native transfer.LinkedinPublishResponse
	if err := json.Unmarshal(respBody, &native); err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("linkedin publish returned an unreadable response", err)
	}

	if native.ID == "" {
		return nil, svcerr.Upstream("linkedin publish returned no post id", nil)
	}

	result := native.Normalize(respBody)
	return &result, nil
}
