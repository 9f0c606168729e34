package models

import "time"

type OrderStatus string

const (
	OrderStatusNew     OrderStatus = "NEW"
	OrderStatusProcess OrderStatus = "PROCESS"
	OrderStatusDone    OrderStatus = "DONE"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusProcess, OrderStatusDone:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentQRIS
}

// OrderItem keeps the product name, price and cost as they were at checkout.
type OrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	HPP       int64  `json:"hpp"`
	Qty       int    `json:"qty"`
}

type Order struct {
	ID            string        `json:"id"`
	Code          string        `json:"code"` // display only, not unique
	TableCode     string        `json:"tableCode"`
	Items         []OrderItem   `json:"items"`
	Total         int64         `json:"total"`
	TotalHPP      int64         `json:"totalHpp"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	CashierName   string        `json:"cashierName"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Quantity is the number of menu portions in the order.
func (o Order) Quantity() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}

// TouchedAt is the last instant the order was changed.
func (o Order) TouchedAt() time.Time {
	if !o.UpdatedAt.IsZero() {
		return o.UpdatedAt
	}
	return o.CreatedAt
}
