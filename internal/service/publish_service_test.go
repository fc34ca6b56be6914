package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
	"github.com/socialops/content-api/pkg/utils"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func encryptedToken(t *testing.T, plaintext string) string {
	t.Helper()
	token, err := utils.Encrypt([]byte(plaintext), []byte(testSecretKey))
	require.NoError(t, err)
	return token
}

type publishFixture struct {
	co *MockCompanyRepository
	sa *MockSocialAccountRepository
	cc *MockContentRepository
	ph *MockPostingHistoryRepository
	li *MockLinkedinService
	fb *MockFacebookService
	s  PublishService
}

func newPublishFixture() *publishFixture {
	f := &publishFixture{
		co: new(MockCompanyRepository),
		sa: new(MockSocialAccountRepository),
		cc: new(MockContentRepository),
		ph: new(MockPostingHistoryRepository),
		li: new(MockLinkedinService),
		fb: new(MockFacebookService),
	}
	cfg := config.Config{SecretKey: testSecretKey}
	f.s = NewPublishService(cfg, f.co, f.sa, f.cc, f.ph, f.li, f.fb)
	return f
}

func memberCompany() *models.Company {
	return &models.Company{
		ID:            "company-1",
		OwnerID:       "owner-1",
		Collaborators: []string{"collab-1"},
	}
}

func TestPublishEmptyTextRejectedBeforeAnyLookup(t *testing.T) {
	f := newPublishFixture()

	req := &transfer.PublishRequest{
		CompanyID: "company-1",
		Provider:  models.ProviderLinkedin,
		Content:   transfer.PublishContent{Text: "   "},
	}

	result, err := f.s.Publish(context.Background(), "owner-1", req)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, 400, svcerr.HTTPStatus(err))

	f.co.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.sa.AssertNotCalled(t, "GetForPublish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishUnsupportedProviderRejectedWithoutExternalCall(t *testing.T) {
	f := newPublishFixture()

	req := &transfer.PublishRequest{
		CompanyID: "company-1",
		Provider:  "twitter",
		Content:   transfer.PublishContent{Text: "hello"},
	}

	result, err := f.s.Publish(context.Background(), "owner-1", req)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, 400, svcerr.HTTPStatus(err))

	f.li.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.fb.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishNonMemberForbidden(t *testing.T) {
	f := newPublishFixture()

	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)

	req := &transfer.PublishRequest{
		CompanyID: "company-1",
		Provider:  models.ProviderLinkedin,
		Content:   transfer.PublishContent{Text: "hello"},
	}

	_, err := f.s.Publish(context.Background(), "stranger", req)
	require.Error(t, err)
	assert.Equal(t, 403, svcerr.HTTPStatus(err))
}

func TestPublishLinkedinRecordsPublishedOnCalendar(t *testing.T) {
	f := newPublishFixture()

	account := &models.SocialAccount{
		ID:                1,
		CompanyID:         "company-1",
		Provider:          models.ProviderLinkedin,
		ProviderAccountID: "li-member-1",
		AccessToken:       encryptedToken(t, "li-token"),
	}

	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)
	f.sa.On("GetForPublish", mock.Anything, "company-1", models.ProviderLinkedin, int64(0)).Return(account, nil)
	f.li.On("Publish", mock.Anything, "li-member-1", "li-token", mock.Anything).
		Return(&transfer.PublishResult{ProviderPostID: "urn:li:share:42"}, nil)
	f.ph.On("Create", mock.Anything, mock.Anything).Return(1, nil)
	f.cc.On("SetPublished", mock.Anything, "cal-9", models.ProviderLinkedin, "urn:li:share:42").Return(nil)

	req := &transfer.PublishRequest{
		CompanyID:         "company-1",
		Provider:          models.ProviderLinkedin,
		Content:           transfer.PublishContent{Text: "hello"},
		ContentCalendarID: "cal-9",
	}

	result, err := f.s.Publish(context.Background(), "collab-1", req)
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:42", result.ProviderPostID)

	f.cc.AssertCalled(t, "SetPublished", mock.Anything, "cal-9", models.ProviderLinkedin, "urn:li:share:42")
}

func TestPublishCalendarWriteBackFailureDoesNotMaskSuccess(t *testing.T) {
	f := newPublishFixture()

	account := &models.SocialAccount{
		CompanyID:         "company-1",
		Provider:          models.ProviderFacebook,
		ProviderAccountID: "page-1",
		AccessToken:       encryptedToken(t, "fb-token"),
	}

	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)
	f.sa.On("GetForPublish", mock.Anything, "company-1", models.ProviderFacebook, int64(0)).Return(account, nil)
	f.fb.On("Publish", mock.Anything, "page-1", "fb-token", mock.Anything).
		Return(&transfer.PublishResult{ProviderPostID: "page-1_77"}, nil)
	f.ph.On("Create", mock.Anything, mock.Anything).Return(1, nil)
	f.cc.On("SetPublished", mock.Anything, "cal-9", models.ProviderFacebook, "page-1_77").
		Return(errors.New("calendar store down"))

	req := &transfer.PublishRequest{
		CompanyID:         "company-1",
		Provider:          models.ProviderFacebook,
		Content:           transfer.PublishContent{Text: "hello"},
		ContentCalendarID: "cal-9",
	}

	result, err := f.s.Publish(context.Background(), "owner-1", req)
	require.NoError(t, err)
	assert.Equal(t, "page-1_77", result.ProviderPostID)
}

func TestPublishNoConnectedAccountNotFound(t *testing.T) {
	f := newPublishFixture()

	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)
	f.sa.On("GetForPublish", mock.Anything, "company-1", models.ProviderLinkedin, int64(0)).Return(nil, nil)

	req := &transfer.PublishRequest{
		CompanyID: "company-1",
		Provider:  models.ProviderLinkedin,
		Content:   transfer.PublishContent{Text: "hello"},
	}

	_, err := f.s.Publish(context.Background(), "owner-1", req)
	require.Error(t, err)
	assert.Equal(t, 404, svcerr.HTTPStatus(err))
}

func TestFetchInsightsUnsupportedProvider(t *testing.T) {
	f := newPublishFixture()

	item := &models.ContentItem{
		ID:             "cal-9",
		CompanyID:      "company-1",
		SocialPostID:   "urn:li:share:42",
		SocialProvider: models.ProviderLinkedin,
	}

	f.cc.On("GetByID", mock.Anything, "cal-9").Return(item, nil)
	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)

	_, err := f.s.FetchInsights(context.Background(), "owner-1", "cal-9")
	require.Error(t, err)
	assert.Equal(t, 400, svcerr.HTTPStatus(err))

	f.fb.AssertNotCalled(t, "Insights", mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchInsightsNoRecordedPost(t *testing.T) {
	f := newPublishFixture()

	item := &models.ContentItem{
		ID:        "cal-9",
		CompanyID: "company-1",
		Status:    models.ContentStatusApproved,
	}

	f.cc.On("GetByID", mock.Anything, "cal-9").Return(item, nil)
	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)

	_, err := f.s.FetchInsights(context.Background(), "owner-1", "cal-9")
	require.Error(t, err)
	assert.Equal(t, 404, svcerr.HTTPStatus(err))
}

func TestFetchInsightsFacebookHappyPath(t *testing.T) {
	f := newPublishFixture()

	item := &models.ContentItem{
		ID:             "cal-9",
		CompanyID:      "company-1",
		SocialPostID:   "page-1_77",
		SocialProvider: models.ProviderFacebook,
	}
	account := &models.SocialAccount{
		CompanyID:         "company-1",
		Provider:          models.ProviderFacebook,
		ProviderAccountID: "page-1",
		AccessToken:       encryptedToken(t, "fb-token"),
	}

	f.cc.On("GetByID", mock.Anything, "cal-9").Return(item, nil)
	f.co.On("GetByID", mock.Anything, "company-1").Return(memberCompany(), nil)
	f.sa.On("GetForPublish", mock.Anything, "company-1", models.ProviderFacebook, int64(0)).Return(account, nil)
	f.fb.On("Insights", mock.Anything, "page-1_77", "fb-token").
		Return(map[string]interface{}{"post_impressions": 25}, nil)

	metrics, err := f.s.FetchInsights(context.Background(), "owner-1", "cal-9")
	require.NoError(t, err)
	assert.Equal(t, 25, metrics["post_impressions"])
}
