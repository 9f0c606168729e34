package apperr

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// Handler is the fiber ErrorHandler: caller-facing errors keep their message,
// anything else is logged and answered with a generic 500.
func Handler(c *fiber.Ctx, err error) error {
	if status, msg, ok := HTTPStatus(err); ok {
		return c.Status(status).JSON(fiber.Map{
			"message": msg,
		})
	}
	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
