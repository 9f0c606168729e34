package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/upload"
)

func TestQRISUploadAndRead(t *testing.T) {
	now := time.Date(2026, 1, 10, 3, 0, 0, 0, time.UTC)
	db, err := database.New(context.Background(), database.NewMemoryStore())
	require.NoError(t, err)
	svc := NewService(db, clock.Fixed(clock.DefaultZone, now))
	images, err := upload.NewImages(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler})
	app.Post("/admin/qris", UploadQRISHandler(svc, images))
	app.Get("/admin/qris", AdminQRISHandler(svc))
	app.Get("/qris", PublicQRISHandler(svc))

	get := func(path string) map[string]any {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		out := map[string]any{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	assert.Nil(t, get("/qris")["qrisImage"])

	post := func(field string) int {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if field != "" {
			part, err := w.CreateFormFile(field, "qris.png")
			require.NoError(t, err)
			_, _ = part.Write([]byte("png"))
		}
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, "/admin/qris", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusBadRequest, post(""))
	assert.Equal(t, http.StatusOK, post("qris"))

	admin := get("/admin/qris")
	assert.Contains(t, admin["qrisImage"], upload.PublicPrefix)
	assert.Equal(t, now.Format(time.RFC3339), admin["updatedAt"])
	assert.Equal(t, admin["qrisImage"], get("/qris")["qrisImage"])

	logs := db.Snapshot().AuditLogs
	require.Len(t, logs, 1)
	assert.Equal(t, "settings", logs[0].EntityType)
}

func TestSetQRISRequiresImage(t *testing.T) {
	db, err := database.New(context.Background(), database.NewMemoryStore())
	require.NoError(t, err)
	_, err = NewService(db, clock.New(clock.DefaultZone)).SetQRIS(context.Background(), "", "admin")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
