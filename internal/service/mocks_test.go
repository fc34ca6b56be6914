package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/transfer"
)

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

type MockSocialAccountRepository struct {
	mock.Mock
}

func (m *MockSocialAccountRepository) Upsert(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	args := m.Called(ctx, sa)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockSocialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SocialAccount), args.Error(1)
}

func (m *MockSocialAccountRepository) GetForPublish(ctx context.Context, companyID, provider string, accountID int64) (*models.SocialAccount, error) {
	args := m.Called(ctx, companyID, provider, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SocialAccount), args.Error(1)
}

func (m *MockSocialAccountRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*models.SocialAccount, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SocialAccount), args.Error(1)
}

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetByID(ctx context.Context, id string) (*models.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.ContentItem, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) UpdateReview(ctx context.Context, id, status, dmp string) error {
	args := m.Called(ctx, id, status, dmp)
	return args.Error(0)
}

func (m *MockContentRepository) UpdateCaption(ctx context.Context, id, caption, status string) error {
	args := m.Called(ctx, id, caption, status)
	return args.Error(0)
}

func (m *MockContentRepository) SetPublished(ctx context.Context, id, provider, postID string) error {
	args := m.Called(ctx, id, provider, postID)
	return args.Error(0)
}

func (m *MockContentRepository) ListDueScheduled(ctx context.Context, due time.Time) ([]*models.ContentItem, error) {
	args := m.Called(ctx, due)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContentItem), args.Error(1)
}

type MockBrandKBRepository struct {
	mock.Mock
}

func (m *MockBrandKBRepository) GetByIDAndCompany(ctx context.Context, id, companyID string) (*models.BrandKB, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BrandKB), args.Error(1)
}

func (m *MockBrandKBRepository) UpdateRules(ctx context.Context, id, rules string) error {
	args := m.Called(ctx, id, rules)
	return args.Error(0)
}

type MockPostingHistoryRepository struct {
	mock.Mock
}

func (m *MockPostingHistoryRepository) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	args := m.Called(ctx, ph)
	return int64(args.Int(0)), args.Error(1)
}

type MockLinkedinService struct {
	mock.Mock
}

func (m *MockLinkedinService) LinkedinCallback(ctx context.Context, code string, state *transfer.ConnectState) error {
	args := m.Called(ctx, code, state)
	return args.Error(0)
}

func (m *MockLinkedinService) Publish(ctx context.Context, accountID, accessToken string, content transfer.PublishContent) (*transfer.PublishResult, error) {
	args := m.Called(ctx, accountID, accessToken, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.PublishResult), args.Error(1)
}

type MockFacebookService struct {
	mock.Mock
}

func (m *MockFacebookService) FacebookCallback(ctx context.Context, code string, state *transfer.ConnectState) error {
	args := m.Called(ctx, code, state)
	return args.Error(0)
}

func (m *MockFacebookService) Publish(ctx context.Context, pageID, accessToken string, content transfer.PublishContent) (*transfer.PublishResult, error) {
	args := m.Called(ctx, pageID, accessToken, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.PublishResult), args.Error(1)
}

func (m *MockFacebookService) Insights(ctx context.Context, postID, accessToken string) (map[string]interface{}, error) {
	args := m.Called(ctx, postID, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) ReviewContent(ctx context.Context, item *models.ContentItem) (*transfer.GenerationResult, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.GenerationResult), args.Error(1)
}

func (m *MockGenerationClient) GenerateCaption(ctx context.Context, item *models.ContentItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationClient) GenerateBrandRules(ctx context.Context, companyID, formAnswer string) (string, error) {
	args := m.Called(ctx, companyID, formAnswer)
	return args.String(0), args.Error(1)
}
