package report

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "Cashflow_2026-01-10_to_2026-01-12.xlsx", FileName("Cashflow_2026-01-10_to_2026-01-12", "xlsx"))
	assert.Equal(t, "Performa_Toko_kasir_Rina_Ayu.xlsx", FileName("Performa Toko  kasir Rina/Ayu", "xlsx"))
	assert.Equal(t, "report.xlsx", FileName("???", "xlsx"))

	long := FileName(string(bytes.Repeat([]byte("a"), 100)), "xlsx")
	assert.Len(t, long, 60+len(".xlsx"))
}

func TestXLSXSinkWritesSections(t *testing.T) {
	sections := []Section{
		{Name: "Summary", Header: []string{"Metric", "Value"}, Rows: [][]any{{"Revenue", int64(80000)}}},
		{Name: "Orders", Header: []string{"Code"}, Rows: [][]any{{"#123456"}, {"#654321"}}},
	}
	b, err := XLSXSink{}.Render("Cashflow", sections)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Orders"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Cashflow", title)

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	// title, blank, header, two rows
	require.Len(t, rows, 5)
	assert.Equal(t, "Code", rows[2][0])
	assert.Equal(t, "#654321", rows[4][0])

	raw, err := f.GetCellValue("Summary", "B4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "80000", raw)
}

func TestExportHandlers(t *testing.T) {
	orders := []models.Order{
		order("1", models.OrderStatusDone, models.PaymentCash, 50000, 20000, 2, "Rina", at(10, 9, 0)),
	}
	e, clk := newEngine(t, at(10, 12, 0), orders, nil)

	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler})
	app.Get("/cashflow", CashflowHandler(e))
	app.Get("/cashflow/export", CashflowExportHandler(e, XLSXSink{}, clk))
	app.Get("/performance/export", PerformanceExportHandler(e, XLSXSink{}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cashflow/export?start=2026-01-10", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, XLSXSink{}.ContentType(), resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Cashflow_2026-01-10_to_2026-01-10.xlsx")

	body, _ := io.ReadAll(resp.Body)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	f.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/performance/export?start=2026-01-10&cashier=Rina", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "_kasir_Rina.xlsx")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cashflow?start=bogus", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cashflow?start=2026-01-10", nil))
	require.NoError(t, err)
	var got CashflowReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, int64(30000), got.Summary.Profit)
}
