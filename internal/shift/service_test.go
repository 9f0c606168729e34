package shift

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

type fixture struct {
	db    *database.DB
	store *database.MemoryStore
	tr    *Tracker
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: database.NewMemoryStore()}
	f.now = time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC)
	db, err := database.New(context.Background(), f.store)
	require.NoError(t, err)
	f.db = db
	f.tr = NewTracker(db, clock.New(clock.DefaultZone).WithNow(func() time.Time { return f.now }))
	return f
}

func (f *fixture) addOrder(t *testing.T, cashier string, created, updated time.Time) {
	t.Helper()
	require.NoError(t, f.db.Update(context.Background(), func(doc *models.Document) error {
		doc.Orders = append(doc.Orders, models.Order{
			ID: created.String() + cashier, Status: models.OrderStatusDone,
			CashierName: cashier, CreatedAt: created, UpdatedAt: updated,
		})
		return nil
	}))
}

func TestOpenRequiresCashierName(t *testing.T) {
	f := newFixture(t)
	_, err := f.tr.Open(context.Background(), "  ", "kasirdipnfly")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, f.db.Snapshot().Shifts)
}

func TestCloseCountsOrdersTouchedDuringShift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := f.now

	s, err := f.tr.Open(ctx, "Rina", "kasirdipnfly")
	require.NoError(t, err)
	assert.Nil(t, s.EndAt)
	assert.Equal(t, "kasirdipnfly", s.CreatedBy)

	f.addOrder(t, "Rina", t0.Add(-time.Hour), t0.Add(5*time.Minute)) // counted
	f.addOrder(t, "Budi", t0, t0.Add(10*time.Minute))                // other cashier
	f.addOrder(t, "Rina", t0.Add(-3*time.Hour), t0.Add(-2*time.Hour)) // before the shift
	f.addOrder(t, "Rina", t0.Add(2*time.Hour), t0.Add(2*time.Hour))   // after the close

	f.now = t0.Add(time.Hour)
	closed, err := f.tr.Close(ctx, s.ID, "kasirdipnfly")
	require.NoError(t, err)
	require.NotNil(t, closed.EndAt)
	assert.Equal(t, f.now, *closed.EndAt)
	require.NotNil(t, closed.OrdersHandled)
	assert.Equal(t, 1, *closed.OrdersHandled)
}

func TestCloseIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t0 := f.now

	s, err := f.tr.Open(ctx, "Rina", "k")
	require.NoError(t, err)
	f.addOrder(t, "Rina", t0, t0.Add(5*time.Minute))

	f.now = t0.Add(time.Hour)
	first, err := f.tr.Close(ctx, s.ID, "k")
	require.NoError(t, err)
	saves := f.store.Saves()

	// more work after the close must not change the closed record
	f.addOrder(t, "Rina", t0, t0.Add(30*time.Minute))
	f.now = t0.Add(2 * time.Hour)
	second, err := f.tr.Close(ctx, s.ID, "k")
	require.NoError(t, err)

	assert.Equal(t, *first.OrdersHandled, *second.OrdersHandled)
	assert.Equal(t, *first.EndAt, *second.EndAt)
	assert.Equal(t, saves+1, f.store.Saves(), "only addOrder may write")
}

func TestCloseUnknownShift(t *testing.T) {
	f := newFixture(t)
	_, err := f.tr.Close(context.Background(), "missing", "k")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCountHandledBoundariesAreInclusive(t *testing.T) {
	start := time.Date(2026, 1, 10, 1, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	orders := []models.Order{
		{CashierName: "Rina", CreatedAt: start, UpdatedAt: start},
		{CashierName: "Rina", CreatedAt: start, UpdatedAt: end},
		{CashierName: "Rina", CreatedAt: start.Add(time.Minute)}, // no updatedAt, falls back
		{CashierName: "Rina", CreatedAt: start, UpdatedAt: end.Add(time.Nanosecond)},
	}
	assert.Equal(t, 3, CountHandled(orders, "Rina", start, end))
	assert.Equal(t, 0, CountHandled(orders, "rina", start, end))
}

func TestShiftHandlers(t *testing.T) {
	f := newFixture(t)
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler})
	app.Post("/login", OpenShiftHandler(f.tr))
	app.Post("/logout", CloseShiftHandler(f.tr))
	app.Get("/shift/:id", GetShiftHandler(f.tr))

	post := func(path, body string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusBadRequest, post("/login", `{}`))
	assert.Equal(t, http.StatusOK, post("/login", `{"cashierName":"Rina"}`))
	assert.Equal(t, http.StatusNotFound, post("/logout", `{"shiftId":"nope"}`))

	id := f.db.Snapshot().Shifts[0].ID
	assert.Equal(t, http.StatusOK, post("/logout", `{"shiftId":"`+id+`"}`))
	assert.Equal(t, http.StatusOK, post("/logout", `{"shiftId":"`+id+`"}`))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/shift/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/shift/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOpenKeepsShiftsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.tr.Open(ctx, "Rina", "kasir")
	require.NoError(t, err)
	f.now = f.now.Add(time.Hour)
	second, err := f.tr.Open(ctx, "Budi", "kasir")
	require.NoError(t, err)

	shifts := f.db.Snapshot().Shifts
	require.Len(t, shifts, 2)
	assert.Equal(t, second.ID, shifts[0].ID)
	assert.Equal(t, first.ID, shifts[1].ID)

	got, err := f.tr.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rina", got.CashierName)
	_, err = f.tr.Get("nope")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
