package tables

import (
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type TableRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// Origin picks the frontend base URL: the configured origin, else the
// request's own base URL.
func Origin(configured string, c *fiber.Ctx) string {
	if o := strings.TrimRight(strings.TrimSpace(configured), "/"); o != "" {
		return o
	}
	return c.BaseURL()
}

// GET /api/admin/tables
func ListTablesHandler(svc *Service, frontendOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.List(Origin(frontendOrigin, c)))
	}
}

// POST /api/admin/tables
func CreateTableHandler(svc *Service, frontendOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		var name, code string
		if body.Name != nil {
			name = *body.Name
		}
		if body.Code != nil {
			code = *body.Code
		}

		t, err := svc.Create(c.UserContext(), name, code, Origin(frontendOrigin, c), auth.IdentityFrom(c).Username)
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// PUT /api/admin/tables/:id
func UpdateTableHandler(svc *Service, frontendOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid table id")
		}
		var body TableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		t, err := svc.Update(c.UserContext(), id, body.Name, body.Code, Origin(frontendOrigin, c), auth.IdentityFrom(c).Username)
		if err != nil {
			return err
		}
		return c.JSON(t)
	}
}

// DELETE /api/admin/tables/:id
func DeleteTableHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid table id")
		}
		if err := svc.Delete(c.UserContext(), id, auth.IdentityFrom(c).Username); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// GET /t/:code, the target of a printed table QR code
func RedirectHandler(svc *Service, frontendOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, ok := svc.Lookup(c.Params("code"))
		if !ok {
			return c.Status(fiber.StatusNotFound).SendString("QR tidak valid")
		}
		return c.Redirect(MenuURL(Origin(frontendOrigin, c), t.Code), fiber.StatusFound)
	}
}
