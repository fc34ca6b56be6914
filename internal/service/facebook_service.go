package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
	"github.com/socialops/content-api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookGraphURL = "https://graph.facebook.com/v19.0"

type FacebookService interface {
	FacebookCallback(ctx context.Context, code string, state *transfer.ConnectState) error
	Publish(ctx context.Context, pageID, accessToken string, content transfer.PublishContent) (*transfer.PublishResult, error)
	Insights(ctx context.Context, postID, accessToken string) (map[string]interface{}, error)
}

type facebookService struct {
	cfg      config.Config
	sa       repository.SocialAccountRepository
	graphURL string
	endpoint oauth2.Endpoint
	client   *http.Client
}

func NewFacebookService(cfg config.Config, sa repository.SocialAccountRepository) FacebookService {
	return &facebookService{
		cfg:      cfg,
		sa:       sa,
		graphURL: facebookGraphURL,
		endpoint: facebook.Endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *facebookService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.FacebookClientID,
		ClientSecret: s.cfg.FacebookClientSecret,
		RedirectURL:  s.cfg.FacebookRedirectURI,
		Scopes:       []string{"pages_show_list", "pages_manage_posts", "pages_read_engagement", "read_insights"},
		Endpoint:     s.endpoint,
	}
}

// FacebookCallback exchanges the code for a user token, lists the pages the
// user manages and upserts one social account per page, each carrying the
// page's own access token. One page failing to persist does not abort the
// rest of the batch.
func (s *facebookService) FacebookCallback(ctx context.Context, code string, state *transfer.ConnectState) error {
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

	pages, err := s.getPages(ctx, token.AccessToken)
	if err != nil {
		return err
	}

	if len(pages) == 0 {
		return errors.New("no facebook pages available for this user")
	}

	var saved int
	for _, page := range pages {
		encryptedToken, err := utils.Encrypt([]byte(page.AccessToken), []byte(s.cfg.SecretKey))
		if err != nil {
			slog.Info("failed to encrypt page token", "page", page.ID, "error", err.Error())
			continue
		}

		account := &models.SocialAccount{
			CompanyID:         state.CompanyID,
			Provider:          models.ProviderFacebook,
			ProviderAccountID: page.ID,
			AccountName:       page.Name,
			ProfilePicture:    page.Picture.Data.URL,
			AccessToken:       encryptedToken,
		}

		if _, err := s.sa.Upsert(ctx, account); err != nil {
			slog.Info("failed to save facebook page", "page", page.ID, "error", err.Error())
			continue
		}
		saved++
	}

	if saved == 0 {
		return errors.New("failed to save any facebook page")
	}

	return nil
}

func (s *facebookService) getPages(ctx context.Context, accessToken string) ([]transfer.FacebookPage, error) {
	reqURL := fmt.Sprintf(
		"%s/me/accounts?fields=id,name,access_token,picture&access_token=%s",
		s.graphURL,
		url.QueryEscape(accessToken),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to list facebook pages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Info("facebook pages error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code from facebook: %d", resp.StatusCode)
	}

	var pagesResp transfer.FacebookPagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&pagesResp); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return pagesResp.Data, nil
}

// Publish posts to the page feed, or to the photos endpoint when the content
// carries exactly one image URL. Both native shapes normalize to the same
// PublishResult.
func (s *facebookService) Publish(ctx context.Context, pageID, accessToken string, content transfer.PublishContent) (*transfer.PublishResult, error) {
	var endpoint string
	form := url.Values{}
	form.Set("access_token", accessToken)

	if len(content.MediaURLs) == 1 {
		endpoint = fmt.Sprintf("%s/%s/photos", s.graphURL, pageID)
		form.Set("url", content.MediaURLs[0])
		form.Set("caption", content.Text)
	} else {
		endpoint = fmt.Sprintf("%s/%s/feed", s.graphURL, pageID)
		form.Set("message", content.Text)
		if content.Link != "" {
			form.Set("link", content.Link)
		}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("facebook publish failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr transfer.FacebookErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		slog.Info("facebook publish error", "status", resp.StatusCode, "message", apiErr.Error.Message)
		return nil, svcerr.Upstream("facebook publish failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var native transfer.FacebookPublishResponse
	if err := json.Unmarshal(respBody, &native); err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("facebook publish returned an unreadable response", err)
	}

	if native.ID == "" && native.PostID == "" {
		return nil, svcerr.Upstream("facebook publish returned no post id", nil)
	}

	result := native.Normalize(respBody)
	return &result, nil
}

// Insights fetches post-level metrics and flattens them to one value per
// metric name.
func (s *facebookService) Insights(ctx context.Context, postID, accessToken string) (map[string]interface{}, error) {
	reqURL := fmt.Sprintf(
		"%s/%s/insights?metric=post_impressions,post_engaged_users,post_clicks&access_token=%s",
		s.graphURL,
		postID,
		url.QueryEscape(accessToken),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("facebook insights failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr transfer.FacebookErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		slog.Info("facebook insights error", "status", resp.StatusCode, "message", apiErr.Error.Message)
		return nil, svcerr.Upstream("facebook insights failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var insights transfer.FacebookInsightsResponse
	if err := json.Unmarshal(respBody, &insights); err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("facebook insights returned an unreadable response", err)
	}

	return insights.Flatten(), nil
}
