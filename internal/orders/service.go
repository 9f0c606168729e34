package orders

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/audit"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/daterange"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/google/uuid"
)

// MaxItemQty caps the quantity of a single checkout line.
const MaxItemQty = 999

type CreateItem struct {
	ProductID string `json:"productId"`
	ID        string `json:"id"` // accepted as an alias of productId
	Qty       int    `json:"qty"`
}

type CreateInput struct {
	TableCode     string       `json:"tableCode"`
	PaymentMethod string       `json:"paymentMethod"`
	Items         []CreateItem `json:"items"`
}

type TodaySummary struct {
	Range     daterange.Range `json:"range"`
	DoneCount int             `json:"doneCount"`
	Revenue   int64           `json:"revenue"`
}

// Service is the order state machine: NEW -> PROCESS -> DONE, with delete
// allowed only while NEW.
type Service struct {
	db       *database.DB
	clock    *clock.Clock
	resolver *daterange.Resolver

	// lenient accepts any valid status regardless of the current one.
	lenient bool
	newCode func() string
}

func NewService(db *database.DB, clk *clock.Clock, lenient bool) *Service {
	return &Service{
		db:       db,
		clock:    clk,
		resolver: daterange.NewResolver(clk),
		lenient:  lenient,
		newCode:  randomCode,
	}
}

func randomCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// fitsLine reports whether sum + amount*qty stays within int64.
func fitsLine(sum, amount int64, qty int) bool {
	if amount <= 0 || qty == 0 {
		return true
	}
	return int64(qty) <= (math.MaxInt64-sum)/amount
}

func normalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// Create validates the checkout against the current menu and tables and
// captures product name, price and cost into the order.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Order, error) {
	table := normalizeCode(in.TableCode)
	if table == "" {
		return models.Order{}, apperr.Validation("tableCode required (scan the table QR first)")
	}
	if len(in.Items) == 0 {
		return models.Order{}, apperr.Validation("items required")
	}
	pm := models.PaymentMethod(normalizeCode(in.PaymentMethod))
	if pm == "" {
		pm = models.PaymentCash
	}
	if !pm.Valid() {
		return models.Order{}, apperr.Validation("paymentMethod must be CASH or QRIS")
	}

	var created models.Order
	err := s.db.Update(ctx, func(doc *models.Document) error {
		if _, ok := doc.FindTableByCode(table); !ok {
			return apperr.Validation("Invalid tableCode: %s", table)
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		var total, totalHPP int64
		for _, it := range in.Items {
			productID := it.ProductID
			if productID == "" {
				productID = it.ID
			}
			idx, ok := doc.FindProduct(productID)
			if !ok {
				return apperr.Validation("Unknown product: %s", productID)
			}
			qty := it.Qty
			if qty == 0 {
				qty = 1
			}
			if qty < 0 {
				return apperr.Validation("qty must be greater than 0 for product %s", productID)
			}
			if qty > MaxItemQty {
				return apperr.Validation("qty must be at most %d for product %s", MaxItemQty, productID)
			}

			p := doc.Products[idx]
			if !fitsLine(total, p.Price, qty) || !fitsLine(totalHPP, p.HPP, qty) {
				return apperr.Validation("order total too large")
			}
			items = append(items, models.OrderItem{
				ID:        uuid.NewString(),
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				HPP:       p.HPP,
				Qty:       qty,
			})
			total += p.Price * int64(qty)
			totalHPP += p.HPP * int64(qty)
		}

		now := s.clock.Now()
		created = models.Order{
			ID:            uuid.NewString(),
			Code:          s.newCode(),
			TableCode:     table,
			Items:         items,
			Total:         total,
			TotalHPP:      totalHPP,
			PaymentMethod: pm,
			Status:        models.OrderStatusNew,
			CashierName:   "",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		doc.Orders = append(doc.Orders, created)

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    audit.GuestUser,
			EntityType:  "order",
			EntityID:    created.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Order #%s created at %s: Rp %d (%s)", created.Code, table, total, pm),
			After:       created,
		})
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return created, nil
}

// SetStatus re-stamps status and updatedAt, and attributes the order to
// cashierName when one is given.
func (s *Service) SetStatus(ctx context.Context, id, status, cashierName, actor string) (models.Order, error) {
	next := models.OrderStatus(strings.TrimSpace(status))
	cashierName = strings.TrimSpace(cashierName)

	var updated models.Order
	err := s.db.Update(ctx, func(doc *models.Document) error {
		idx, ok := doc.FindOrder(id)
		if !ok {
			return apperr.NotFound("Not found")
		}
		if !next.Valid() {
			return apperr.Validation("Invalid status")
		}

		o := &doc.Orders[idx]
		before := *o
		if !s.lenient && !canTransition(o.Status, next) {
			return apperr.Validation("Invalid transition %s -> %s", o.Status, next)
		}

		now := s.clock.Now()
		o.Status = next
		if cashierName != "" {
			o.CashierName = cashierName
		}
		o.UpdatedAt = now
		updated = *o

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    actor,
			EntityType:  "order",
			EntityID:    o.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Order #%s %s -> %s", o.Code, before.Status, next),
			Before:      statusView(before),
			After:       statusView(updated),
		})
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

// status-only audit payload, the items never change after checkout
func statusView(o models.Order) map[string]any {
	return map[string]any{
		"status":      o.Status,
		"cashierName": o.CashierName,
		"updatedAt":   o.UpdatedAt,
	}
}

// Delete removes an order that is still NEW.
func (s *Service) Delete(ctx context.Context, id, actor string) error {
	return s.db.Update(ctx, func(doc *models.Document) error {
		idx, ok := doc.FindOrder(id)
		if !ok {
			return apperr.NotFound("Not found")
		}
		o := doc.Orders[idx]
		if o.Status != models.OrderStatusNew {
			return apperr.Validation("Only NEW order can be deleted")
		}

		doc.Orders = append(doc.Orders[:idx], doc.Orders[idx+1:]...)

		audit.WriteLog(doc, s.clock.Now(), audit.LogOptions{
			UserName:    actor,
			EntityType:  "order",
			EntityID:    o.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Order #%s deleted", o.Code),
			Before:      o,
		})
		return nil
	})
}

func (s *Service) Get(id string) (models.Order, error) {
	snap := s.db.Snapshot()
	idx, ok := snap.FindOrder(id)
	if !ok {
		return models.Order{}, apperr.NotFound("Not found")
	}
	return snap.Orders[idx], nil
}

// List returns the orders created inside w, newest first.
func (s *Service) List(w daterange.Window) []models.Order {
	snap := s.db.Snapshot()
	out := make([]models.Order, 0)
	for _, o := range snap.Orders {
		if w.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Service) Resolve(req daterange.Request) (daterange.Window, error) {
	return s.resolver.Resolve(req)
}

// Today sums the DONE orders created today.
func (s *Service) Today() TodaySummary {
	w := s.resolver.Today()
	sum := TodaySummary{Range: w.Range()}
	for _, o := range s.db.Snapshot().Orders {
		if o.Status == models.OrderStatusDone && w.Contains(o.CreatedAt) {
			sum.DoneCount++
			sum.Revenue += o.Total
		}
	}
	return sum
}
