package shift

import (
	"github.com/Siskaumami/Dip-N-Fly/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	CashierName string `json:"cashierName"`
}

type LogoutRequest struct {
	ShiftID string `json:"shiftId"`
}

// POST /api/kasir/shift/login
func OpenShiftHandler(tr *Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		who := auth.IdentityFrom(c)
		s, err := tr.Open(c.UserContext(), body.CashierName, who.Username)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// POST /api/kasir/shift/logout
func CloseShiftHandler(tr *Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LogoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		who := auth.IdentityFrom(c)
		s, err := tr.Close(c.UserContext(), body.ShiftID, who.Username)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}

// GET /api/kasir/shift/:id
func GetShiftHandler(tr *Tracker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := tr.Get(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}
