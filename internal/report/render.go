package report

import (
	"fmt"
	"regexp"

	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/xuri/excelize/v2"
)

// Section is one table of a rendered report. Rows hold plain values; the
// sink decides formatting.
type Section struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Sink turns report sections into a downloadable document.
type Sink interface {
	Render(title string, sections []Section) ([]byte, error)
	ContentType() string
	Extension() string
}

// thousands separator, "#,##0"
const numFmtThousands = 3

type XLSXSink struct{}

func (XLSXSink) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXSink) Extension() string {
	return "xlsx"
}

func (XLSXSink) Render(title string, sections []Section) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	num, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		sections = []Section{{Name: "Report"}}
	}

	for i, s := range sections {
		sheet := s.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}

		if err := f.SetCellValue(sheet, "A1", title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
			return nil, err
		}

		row := 3
		if len(s.Header) > 0 {
			header := make([]any, len(s.Header))
			for j, h := range s.Header {
				header[j] = h
			}
			if err := writeRow(f, sheet, row, header, bold, num); err != nil {
				return nil, err
			}
			row++
		}
		for _, values := range s.Rows {
			if err := writeRow(f, sheet, row, values, 0, num); err != nil {
				return nil, err
			}
			row++
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, style, numStyle int) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}

		s := style
		switch v.(type) {
		case int, int64:
			if s == 0 {
				s = numStyle
			}
		}
		if s != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, s); err != nil {
				return err
			}
		}
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9\-_]+`)
var repeatedUnderscore = regexp.MustCompile(`_+`)

// FileName makes a download name from a report title.
func FileName(title, ext string) string {
	name := unsafeFileChars.ReplaceAllString(title, "_")
	name = repeatedUnderscore.ReplaceAllString(name, "_")
	if name == "" || name == "_" {
		name = "report"
	}
	if len(name) > 60 {
		name = name[:60]
	}
	return name + "." + ext
}

func CashflowTitle(r CashflowReport) string {
	return fmt.Sprintf("Cashflow_%s_to_%s", r.Range.Start, r.Range.End)
}

func CashflowSections(r CashflowReport, orders []models.Order, clk *clock.Clock) []Section {
	summary := Section{
		Name:   "Summary",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Range", r.Range.Start + " s/d " + r.Range.End},
			{"Orders Done", r.Summary.OrdersDone},
			{"Revenue", r.Summary.Revenue},
			{"COGS (HPP)", r.Summary.COGS},
			{"Profit", r.Summary.Profit},
			{"Cash", r.Summary.Cash},
			{"QRIS", r.Summary.QRIS},
		},
	}

	detail := Section{
		Name:   "Orders",
		Header: []string{"Date", "Code", "Table", "Total", "Payment", "Cashier"},
	}
	for _, o := range orders {
		cashier := o.CashierName
		if cashier == "" {
			cashier = "-"
		}
		detail.Rows = append(detail.Rows, []any{
			clk.DayKey(o.CreatedAt), "#" + o.Code, o.TableCode, o.Total, string(o.PaymentMethod), cashier,
		})
	}

	shifts := Section{
		Name:   "Shifts",
		Header: []string{"Cashier", "Start", "End", "Orders Handled"},
	}
	for _, s := range r.Shifts {
		end, handled := "-", "-"
		if s.EndAt != nil {
			end = clk.Local(*s.EndAt).Format("2006-01-02 15:04")
		}
		if s.OrdersHandled != nil {
			handled = fmt.Sprint(*s.OrdersHandled)
		}
		shifts.Rows = append(shifts.Rows, []any{
			s.CashierName, clk.Local(s.StartAt).Format("2006-01-02 15:04"), end, handled,
		})
	}

	return []Section{summary, detail, shifts}
}

func PerformanceTitle(r PerformanceReport) string {
	title := fmt.Sprintf("Performa_Toko_%s_to_%s", r.Range.Start, r.Range.End)
	if r.Filter.Cashier != nil {
		title += "_kasir_" + *r.Filter.Cashier
	}
	return title
}

func PerformanceSections(r PerformanceReport) []Section {
	chart := Section{Name: "Chart", Header: []string{"Label", "Qty"}}
	for _, p := range r.Chart {
		chart.Rows = append(chart.Rows, []any{p.Label, p.Count})
	}

	filter := "-"
	if r.Filter.Cashier != nil {
		filter = *r.Filter.Cashier
	}
	info := Section{
		Name: "Info",
		Rows: [][]any{
			{"Range", r.Range.Start + " s/d " + r.Range.End},
			{"Cashier filter", filter},
		},
	}
	return []Section{chart, info}
}
