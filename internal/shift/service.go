package shift

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/audit"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/google/uuid"
)

// Tracker opens and closes cashier shifts. Attribution is by cashier name;
// two open shifts under one name both count the same orders.
type Tracker struct {
	db    *database.DB
	clock *clock.Clock
}

func NewTracker(db *database.DB, clk *clock.Clock) *Tracker {
	return &Tracker{db: db, clock: clk}
}

// Open records a new shift at the head of the list, so shifts are kept
// newest first.
func (t *Tracker) Open(ctx context.Context, cashierName, createdBy string) (models.Shift, error) {
	cashierName = strings.TrimSpace(cashierName)
	if cashierName == "" {
		return models.Shift{}, apperr.Validation("cashierName required")
	}

	var opened models.Shift
	err := t.db.Update(ctx, func(doc *models.Document) error {
		now := t.clock.Now()
		opened = models.Shift{
			ID:          uuid.NewString(),
			CashierName: cashierName,
			StartAt:     now,
			CreatedBy:   createdBy,
		}
		doc.Shifts = append([]models.Shift{opened}, doc.Shifts...)

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    createdBy,
			EntityType:  "shift",
			EntityID:    opened.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Shift opened for %s", cashierName),
			After:       opened,
		})
		return nil
	})
	if err != nil {
		return models.Shift{}, err
	}
	return opened, nil
}

// Close ends the shift and counts the orders its cashier touched during it.
// Closing a closed shift returns it as is, without writing.
func (t *Tracker) Close(ctx context.Context, shiftID, actor string) (models.Shift, error) {
	snap := t.db.Snapshot()
	idx, ok := snap.FindShift(shiftID)
	if !ok {
		return models.Shift{}, apperr.NotFound("Shift not found")
	}
	if snap.Shifts[idx].Closed() {
		return snap.Shifts[idx], nil
	}

	var closed models.Shift
	err := t.db.Update(ctx, func(doc *models.Document) error {
		idx, ok := doc.FindShift(shiftID)
		if !ok {
			return apperr.NotFound("Shift not found")
		}
		s := &doc.Shifts[idx]
		if s.Closed() {
			// closed by a concurrent request between snapshot and update
			closed = *s
			return nil
		}

		now := t.clock.Now()
		handled := CountHandled(doc.Orders, s.CashierName, s.StartAt, now)
		s.EndAt = &now
		s.OrdersHandled = &handled
		s.UpdatedAt = &now
		closed = *s

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    actor,
			EntityType:  "shift",
			EntityID:    s.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Shift closed for %s, %d orders handled", s.CashierName, handled),
			After:       closed,
		})
		return nil
	})
	if err != nil {
		return models.Shift{}, err
	}
	return closed, nil
}

func (t *Tracker) Get(shiftID string) (models.Shift, error) {
	snap := t.db.Snapshot()
	idx, ok := snap.FindShift(shiftID)
	if !ok {
		return models.Shift{}, apperr.NotFound("Shift not found")
	}
	return snap.Shifts[idx], nil
}

// CountHandled counts orders last touched inside [start, end] (exact
// instants, not whole days) and attributed to cashierName.
func CountHandled(orders []models.Order, cashierName string, start, end time.Time) int {
	n := 0
	for _, o := range orders {
		at := o.TouchedAt()
		if at.Before(start) || at.After(end) {
			continue
		}
		if o.CashierName == cashierName {
			n++
		}
	}
	return n
}
