package orders

import "github.com/Siskaumami/Dip-N-Fly/internal/models"

// Orders only move forward. Staying in place is allowed so a cashier can
// attach their name without changing the status.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusNew:     {models.OrderStatusNew, models.OrderStatusProcess, models.OrderStatusDone},
	models.OrderStatusProcess: {models.OrderStatusProcess, models.OrderStatusDone},
	models.OrderStatusDone:    {models.OrderStatusDone},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
