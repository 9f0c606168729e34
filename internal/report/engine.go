package report

import (
	"fmt"
	"sort"

	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/daterange"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

type Summary struct {
	OrdersDone int   `json:"ordersDone"`
	Revenue    int64 `json:"revenue"`
	COGS       int64 `json:"cogs"`
	Profit     int64 `json:"profit"`
	Cash       int64 `json:"cash"`
	QRIS       int64 `json:"qris"`
}

type CashflowReport struct {
	Range    daterange.Range `json:"range"`
	Summary  Summary         `json:"summary"`
	Cashiers []string        `json:"cashiers"`
	Shifts   []models.Shift  `json:"shifts"`
}

// ChartPoint is one histogram bucket: an hour "00".."23" or a day "YYYY-MM-DD".
// Count is item quantity, not order count.
type ChartPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type PerformanceFilter struct {
	Cashier *string `json:"cashier"`
}

type PerformanceReport struct {
	Range    daterange.Range   `json:"range"`
	Cashiers []string          `json:"cashiers"`
	Chart    []ChartPoint      `json:"chart"`
	Filter   PerformanceFilter `json:"filter"`
}

type ShiftsReport struct {
	Range  daterange.Range `json:"range"`
	Shifts []models.Shift  `json:"shifts"`
}

// Engine computes read-only reports over a single snapshot, so every figure
// in one report comes from the same state.
type Engine struct {
	db       *database.DB
	clock    *clock.Clock
	resolver *daterange.Resolver
}

func NewEngine(db *database.DB, clk *clock.Clock) *Engine {
	return &Engine{db: db, clock: clk, resolver: daterange.NewResolver(clk)}
}

func (e *Engine) Resolve(req daterange.Request) (daterange.Window, error) {
	return e.resolver.Resolve(req)
}

func (e *Engine) Cashflow(req daterange.Request) (CashflowReport, error) {
	w, err := e.resolver.Resolve(req)
	if err != nil {
		return CashflowReport{}, err
	}
	return e.cashflow(e.db.Snapshot(), w), nil
}

func (e *Engine) cashflow(doc *models.Document, w daterange.Window) CashflowReport {
	done := doneOrders(doc.Orders, w)

	var s Summary
	s.OrdersDone = len(done)
	for _, o := range done {
		s.Revenue += o.Total
		s.COGS += o.TotalHPP
		switch o.PaymentMethod {
		case models.PaymentCash:
			s.Cash += o.Total
		case models.PaymentQRIS:
			s.QRIS += o.Total
		}
	}
	s.Profit = s.Revenue - s.COGS

	shifts := e.overlapping(doc.Shifts, w)
	return CashflowReport{
		Range:    w.Range(),
		Summary:  s,
		Cashiers: cashierNames(shifts),
		Shifts:   shifts,
	}
}

// CashflowOrders returns the DONE orders behind a cashflow report, oldest first.
func (e *Engine) CashflowOrders(req daterange.Request) ([]models.Order, error) {
	w, err := e.resolver.Resolve(req)
	if err != nil {
		return nil, err
	}
	return doneOrders(e.db.Snapshot().Orders, w), nil
}

// Performance buckets ordered quantity by hour for a single-day window and by
// day otherwise. An empty cashier means every cashier.
func (e *Engine) Performance(req daterange.Request, cashier string) (PerformanceReport, error) {
	w, err := e.resolver.Resolve(req)
	if err != nil {
		return PerformanceReport{}, err
	}
	doc := e.db.Snapshot()

	var orders []models.Order
	for _, o := range doc.Orders {
		if !o.Status.Valid() || !w.Contains(o.CreatedAt) {
			continue
		}
		if cashier != "" && o.CashierName != cashier {
			continue
		}
		orders = append(orders, o)
	}

	r := PerformanceReport{
		Range:    w.Range(),
		Cashiers: cashierNames(e.overlapping(doc.Shifts, w)),
	}
	if cashier != "" {
		r.Filter.Cashier = &cashier
	}
	if w.SingleDay() {
		r.Chart = e.hourly(orders)
	} else {
		r.Chart = e.daily(orders)
	}
	return r, nil
}

func (e *Engine) hourly(orders []models.Order) []ChartPoint {
	buckets := make([]ChartPoint, 24)
	for i := range buckets {
		buckets[i].Label = fmt.Sprintf("%02d", i)
	}
	for _, o := range orders {
		buckets[e.clock.Local(o.CreatedAt).Hour()].Count += o.Quantity()
	}
	return buckets
}

func (e *Engine) daily(orders []models.Order) []ChartPoint {
	byDay := map[string]int{}
	for _, o := range orders {
		byDay[e.clock.DayKey(o.CreatedAt)] += o.Quantity()
	}

	points := make([]ChartPoint, 0, len(byDay))
	for day, n := range byDay {
		points = append(points, ChartPoint{Label: day, Count: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

// Shifts lists shifts touching the window, latest start first.
func (e *Engine) Shifts(req daterange.Request) (ShiftsReport, error) {
	w, err := e.resolver.Resolve(req)
	if err != nil {
		return ShiftsReport{}, err
	}
	shifts := e.overlapping(e.db.Snapshot().Shifts, w)
	return ShiftsReport{Range: w.Range(), Shifts: shifts}, nil
}

// overlapping keeps shifts whose start or effective end (now while open)
// falls in the window. A shift spanning the whole window without either end
// inside it is not matched. The result is ordered by start, latest first.
func (e *Engine) overlapping(all []models.Shift, w daterange.Window) []models.Shift {
	now := e.clock.Now()
	out := make([]models.Shift, 0)
	for _, s := range all {
		if w.Contains(s.StartAt) || w.Contains(s.EffectiveEnd(now)) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartAt.After(out[j].StartAt) })
	return out
}

func doneOrders(all []models.Order, w daterange.Window) []models.Order {
	out := make([]models.Order, 0)
	for _, o := range all {
		if o.Status == models.OrderStatusDone && w.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// cashierNames returns distinct non-empty names in first-seen order.
func cashierNames(shifts []models.Shift) []string {
	seen := map[string]bool{}
	names := make([]string, 0)
	for _, s := range shifts {
		if s.CashierName == "" || seen[s.CashierName] {
			continue
		}
		seen[s.CashierName] = true
		names = append(names, s.CashierName)
	}
	return names
}

// CashflowDetail returns the report and its DONE orders from one snapshot.
func (e *Engine) CashflowDetail(req daterange.Request) (CashflowReport, []models.Order, error) {
	w, err := e.resolver.Resolve(req)
	if err != nil {
		return CashflowReport{}, nil, err
	}
	doc := e.db.Snapshot()
	return e.cashflow(doc, w), doneOrders(doc.Orders, w), nil
}
