package models

import "time"

type Shift struct {
	ID            string     `json:"id"`
	CashierName   string     `json:"cashierName"`
	StartAt       time.Time  `json:"startAt"`
	EndAt         *time.Time `json:"endAt"`
	CreatedBy     string     `json:"createdBy"`
	OrdersHandled *int       `json:"ordersHandled,omitempty"` // set on close
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

func (s Shift) Closed() bool {
	return s.EndAt != nil
}

// EffectiveEnd is the close instant, or now while the shift is open.
func (s Shift) EffectiveEnd(now time.Time) time.Time {
	if s.EndAt != nil {
		return *s.EndAt
	}
	return now
}
