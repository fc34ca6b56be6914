package service

import (
	"context"
	"log/slog"
	"strings"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
	"github.com/socialops/content-api/pkg/utils"
)

// SystemCaller marks a publish initiated by the scheduler rather than an end
// user; company membership is not checked for it.
const SystemCaller = ""

type PublishService interface {
	Publish(ctx context.Context, userID string, req *transfer.PublishRequest) (*transfer.PublishResult, error)
	FetchInsights(ctx context.Context, userID, contentCalendarID string) (map[string]interface{}, error)
}

type publishService struct {
	cfg config.Config
	co  repository.CompanyRepository
	sa  repository.SocialAccountRepository
	cc  repository.ContentRepository
	ph  repository.PostingHistoryRepository
	li  LinkedinService
	fb  FacebookService
}

func NewPublishService(
	cfg config.Config,
	co repository.CompanyRepository,
	sa repository.SocialAccountRepository,
	cc repository.ContentRepository,
	ph repository.PostingHistoryRepository,
	li LinkedinService,
	fb FacebookService) PublishService {
	return &publishService{
		cfg: cfg,
		co:  co,
		sa:  sa,
		cc:  cc,
		ph:  ph,
		li:  li,
		fb:  fb,
	}
}

// Publish validates the request, resolves the stored credential and calls the
// provider adapter. The provider call always precedes the calendar
// write-back, and the write-back is best-effort: its failure never masks a
// publish that actually happened.
func (s *publishService) Publish(ctx context.Context, userID string, req *transfer.PublishRequest) (*transfer.PublishResult, error) {
	if strings.TrimSpace(req.Content.Text) == "" {
		return nil, svcerr.BadRequest("content text cannot be empty")
	}

	if !models.SupportedProvider(req.Provider) {
		return nil, svcerr.BadRequest("unsupported provider: " + req.Provider)
	}

	if userID != SystemCaller {
		if err := s.authorize(ctx, userID, req.CompanyID); err != nil {
			return nil, err
		}
	}

	account, err := s.sa.GetForPublish(ctx, req.CompanyID, req.Provider, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, svcerr.NotFound("no connected " + req.Provider + " account for this company")
	}

	accessToken, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	var result *transfer.PublishResult
	switch req.Provider {
	case models.ProviderLinkedin:
		result, err = s.li.Publish(ctx, account.ProviderAccountID, accessToken, req.Content)
	case models.ProviderFacebook:
		result, err = s.fb.Publish(ctx, account.ProviderAccountID, accessToken, req.Content)
	}

	s.recordHistory(ctx, req, result, err)

	if err != nil {
		return nil, err
	}

	if req.ContentCalendarID != "" {
		if err := s.cc.SetPublished(ctx, req.ContentCalendarID, req.Provider, result.ProviderPostID); err != nil {
			// The provider post exists; a stale calendar row is recoverable,
			// a lost post id is not.
			slog.Error("failed to record published post on calendar item",
				"content_calendar_id", req.ContentCalendarID,
				"post_id", result.ProviderPostID,
				"error", err.Error())
		}
	}

	return result, nil
}

func (s *publishService) authorize(ctx context.Context, userID, companyID string) error {
	company, err := s.co.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return svcerr.NotFound("company not found")
	}
	if !company.HasMember(userID) {
		return svcerr.Forbidden("not a member of this company")
	}
	return nil
}

func (s *publishService) recordHistory(ctx context.Context, req *transfer.PublishRequest, result *transfer.PublishResult, publishErr error) {
	history := &models.PostingHistory{
		CompanyID:         req.CompanyID,
		ContentCalendarID: req.ContentCalendarID,
		Provider:          req.Provider,
	}
	if result != nil {
		history.PostID = result.ProviderPostID
	}
	if publishErr != nil {
		history.ErrorMessage = publishErr.Error()
	}

	if _, err := s.ph.Create(ctx, history); err != nil {
		slog.Info("failed to save posting history", "error", err.Error())
	}
}

// FetchInsights loads the recorded post for a calendar item and queries the
// provider. Only Facebook exposes insights today; anything else is a caller
// error, not a server fault.
func (s *publishService) FetchInsights(ctx context.Context, userID, contentCalendarID string) (map[string]interface{}, error) {
	item, err := s.cc.GetByID(ctx, contentCalendarID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, svcerr.NotFound("content item not found")
	}

	if userID != SystemCaller {
		if err := s.authorize(ctx, userID, item.CompanyID); err != nil {
			return nil, err
		}
	}

	if item.SocialPostID == "" || item.SocialProvider == "" {
		return nil, svcerr.NotFound("content item has no published post")
	}

	if item.SocialProvider != models.ProviderFacebook {
		return nil, svcerr.BadRequest("unsupported provider for insights: " + item.SocialProvider)
	}

	account, err := s.sa.GetForPublish(ctx, item.CompanyID, item.SocialProvider, item.TargetAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, svcerr.NotFound("no connected facebook account for this company")
	}

	accessToken, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	return s.fb.Insights(ctx, item.SocialPostID, accessToken)
}
