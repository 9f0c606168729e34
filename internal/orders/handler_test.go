package orders

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/auth"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

func newHandlerApp(f *fixture) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler})
	app.Post("/api/orders", CreateOrderHandler(f.svc))

	kasir := app.Group("/api/kasir", func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUsernameKey, "kasirdipnfly")
		c.Locals(auth.CtxUserRoleKey, models.RoleKasir)
		return c.Next()
	})
	kasir.Get("/orders", ListOrdersHandler(f.svc))
	kasir.Patch("/orders/:id/status", UpdateStatusHandler(f.svc))
	kasir.Delete("/orders/:id", DeleteOrderHandler(f.svc))
	kasir.Get("/summary/today", TodaySummaryHandler(f.svc))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	b, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(b, &out)
	return resp.StatusCode, out
}

func TestOrderHandlersFlow(t *testing.T) {
	f := newFixture(t, false)
	app := newHandlerApp(f)

	status, order := do(t, app, http.MethodPost, "/api/orders",
		`{"tableCode":"meja03","paymentMethod":"QRIS","items":[{"productId":"p-dimsum","qty":1}]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "NEW", order["status"])
	assert.Equal(t, float64(25000), order["total"])
	id := order["id"].(string)

	status, list := do(t, app, http.MethodGet, "/api/kasir/orders?start=2026-01-10", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list["orders"], 1)
	assert.Equal(t, "2026-01-10", list["range"].(map[string]any)["end"])

	status, body := do(t, app, http.MethodPatch, "/api/kasir/orders/"+id+"/status", `{"status":"BOGUS"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status", body["message"])

	status, body = do(t, app, http.MethodPatch, "/api/kasir/orders/"+id+"/status", `{"status":"PROCESS","cashierName":"Rina"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rina", body["cashierName"])

	status, body = do(t, app, http.MethodDelete, "/api/kasir/orders/"+id, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Only NEW order can be deleted", body["message"])

	status, _ = do(t, app, http.MethodDelete, "/api/kasir/orders/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateOrderHandlerRejectsUnknownTable(t *testing.T) {
	f := newFixture(t, false)
	app := newHandlerApp(f)

	status, body := do(t, app, http.MethodPost, "/api/orders",
		`{"tableCode":"X1","items":[{"productId":"p-tea","qty":1}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid tableCode: X1", body["message"])
	assert.Empty(t, f.db.Snapshot().Orders)
}

func TestListOrdersHandlerRejectsBadDate(t *testing.T) {
	f := newFixture(t, false)
	app := newHandlerApp(f)

	status, _ := do(t, app, http.MethodGet, "/api/kasir/orders?start=not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, status)
}
