package orders

import (
	"github.com/Siskaumami/Dip-N-Fly/internal/auth"
	"github.com/Siskaumami/Dip-N-Fly/internal/daterange"

	"github.com/gofiber/fiber/v2"
)

type UpdateStatusRequest struct {
	Status      string `json:"status"`
	CashierName string `json:"cashierName"`
}

// -------------------------------------------------
// POST /api/orders (guest checkout, no auth)
// -------------------------------------------------
func CreateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := svc.Create(c.UserContext(), body)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// -------------------------------------------------
// GET /api/kasir/orders?mode=today | ?start=2026-01-01&end=2026-01-31
// -------------------------------------------------
func ListOrdersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q daterange.Request
		if err := c.QueryParser(&q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
		}

		w, err := svc.Resolve(q)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"range":  w.Range(),
			"orders": svc.List(w),
		})
	}
}

// -------------------------------------------------
// PATCH /api/kasir/orders/:id/status
// -------------------------------------------------
func UpdateStatusHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		who := auth.IdentityFrom(c)
		order, err := svc.SetStatus(c.UserContext(), c.Params("id"), body.Status, body.CashierName, who.Username)
		if err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// -------------------------------------------------
// DELETE /api/kasir/orders/:id (only while NEW)
// -------------------------------------------------
func DeleteOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		who := auth.IdentityFrom(c)
		if err := svc.Delete(c.UserContext(), c.Params("id"), who.Username); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// GET /api/kasir/summary/today
func TodaySummaryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Today())
	}
}
