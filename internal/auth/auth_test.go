package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := database.New(ctx, database.NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, database.Seed(ctx, db,
		database.SeedUser{Username: "boss", Password: "boss-pass", Role: models.RoleAdmin},
		database.SeedUser{Username: "rina", Password: "rina-pass", Role: models.RoleKasir},
	))

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler})
	app.Post("/api/login", LoginHandler(testSecret, db))
	protected := app.Group("/api", JWTMiddleware(testSecret))
	protected.Get("/me", MeHandler())
	protected.Get("/admin/ping", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func login(t *testing.T, app *fiber.App, username, password string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"`+username+`","password":"`+password+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	b, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(b, &body)
	return resp.StatusCode, body
}

func TestLoginIssuesToken(t *testing.T) {
	app := newTestApp(t)

	status, body := login(t, app, "rina", "rina-pass")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "kasir", body["role"])
	assert.Equal(t, "rina", body["username"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)

	status, _ := login(t, app, "rina", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = login(t, app, "nobody", "x")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = login(t, app, "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMiddlewareAndRoles(t *testing.T) {
	app := newTestApp(t)
	_, kasir := login(t, app, "rina", "rina-pass")
	_, admin := login(t, app, "boss", "boss-pass")

	call := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, call("/api/me", ""))
	assert.Equal(t, http.StatusUnauthorized, call("/api/me", "garbage"))
	assert.Equal(t, http.StatusOK, call("/api/me", kasir["token"].(string)))
	assert.Equal(t, http.StatusForbidden, call("/api/admin/ping", kasir["token"].(string)))
	assert.Equal(t, http.StatusOK, call("/api/admin/ping", admin["token"].(string)))
}

func TestGuardErrorsCarryKinds(t *testing.T) {
	var got error
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		got = err
		return apperr.Handler(c, err)
	}})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) }
	app.Get("/anon", RequireRole(models.RoleAdmin), ok)
	app.Get("/kasir", func(c *fiber.Ctx) error {
		c.Locals(CtxUserRoleKey, models.RoleKasir)
		return c.Next()
	}, RequireRole(models.RoleAdmin), ok)
	app.Get("/jwt", JWTMiddleware(testSecret), ok)

	call := func(path string) int {
		got = nil
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, call("/anon"))
	assert.True(t, apperr.Is(got, apperr.KindUnauthorized))

	assert.Equal(t, http.StatusForbidden, call("/kasir"))
	assert.True(t, apperr.Is(got, apperr.KindForbidden))

	assert.Equal(t, http.StatusUnauthorized, call("/jwt"))
	assert.True(t, apperr.Is(got, apperr.KindUnauthorized))
}

func TestExpiredTokenRejected(t *testing.T) {
	app := newTestApp(t)
	user := &models.User{ID: "u1", Username: "old", Role: models.RoleAdmin}
	token, err := GenerateToken(testSecret, user, time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
