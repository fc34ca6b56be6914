package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/pkg/utils"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// guardedApp mounts the guard plus a probe route that echoes the caller the
// handler observed.
func guardedApp(cfg config.Config, u *mockUserRepository) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(cfg, u).Handler())
	app.Get("/probe", func(c *fiber.Ctx) error {
		caller := Caller(c)
		return c.JSON(fiber.Map{
			"userId":         caller.UserID,
			"role":           caller.Role,
			"originalUserId": caller.OriginalUserID,
		})
	})
	app.Get("/auth/linkedin/callback", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecretKey, userID, time.Hour)
	require.NoError(t, err)
	return token
}

func probeCaller(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGuardRejectsMissingToken(t *testing.T) {
	u := new(mockUserRepository)
	app := guardedApp(config.Config{SecretKey: testSecretKey}, u)

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	u.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGuardRejectsUnknownUser(t *testing.T) {
	u := new(mockUserRepository)
	u.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

	app := guardedApp(config.Config{SecretKey: testSecretKey}, u)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "ghost"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardLetsCallbacksThrough(t *testing.T) {
	u := new(mockUserRepository)
	app := guardedApp(config.Config{SecretKey: testSecretKey}, u)

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/linkedin/callback?code=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	u.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGuardMaintenanceBlocksMembers(t *testing.T) {
	u := new(mockUserRepository)
	u.On("GetByID", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Role: models.RoleMember}, nil)

	app := guardedApp(config.Config{SecretKey: testSecretKey, MaintenanceMode: true}, u)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "user-1"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["maintenance"])
}

func TestGuardMaintenanceAdmitsAdmins(t *testing.T) {
	u := new(mockUserRepository)
	u.On("GetByID", mock.Anything, "admin-1").Return(&models.User{ID: "admin-1", Role: models.RoleAdmin}, nil)

	app := guardedApp(config.Config{SecretKey: testSecretKey, MaintenanceMode: true}, u)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "admin-1"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	caller := probeCaller(t, resp)
	assert.Equal(t, "admin-1", caller["userId"])
}

func TestGuardAdminImpersonation(t *testing.T) {
	u := new(mockUserRepository)
	u.On("GetByID", mock.Anything, "admin-1").Return(&models.User{ID: "admin-1", Role: models.RoleAdmin}, nil)

	app := guardedApp(config.Config{SecretKey: testSecretKey}, u)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "admin-1"))
	req.Header.Set(ImpersonateUserHeader, "user-7")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	caller := probeCaller(t, resp)
	assert.Equal(t, "user-7", caller["userId"])
	assert.Equal(t, models.RoleMember, caller["role"])
	assert.Equal(t, "admin-1", caller["originalUserId"])
}

func TestGuardIgnoresImpersonationFromMembers(t *testing.T) {
	u := new(mockUserRepository)
	u.On("GetByID", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Role: models.RoleMember}, nil)

	app := guardedApp(config.Config{SecretKey: testSecretKey}, u)

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "user-1"))
	req.Header.Set(ImpersonateUserHeader, "user-7")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	caller := probeCaller(t, resp)
	assert.Equal(t, "user-1", caller["userId"])
	assert.Equal(t, "", caller["originalUserId"])
}
