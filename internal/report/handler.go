package report

import (
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/daterange"

	"github.com/gofiber/fiber/v2"
)

func parseRange(c *fiber.Ctx) (daterange.Request, error) {
	var q daterange.Request
	if err := c.QueryParser(&q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	return q, nil
}

// GET /api/admin/cashflow?mode=today | ?start=&end=
func CashflowHandler(e *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseRange(c)
		if err != nil {
			return err
		}
		r, err := e.Cashflow(q)
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

// GET /api/admin/performance?start=&end=&cashier=
func PerformanceHandler(e *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseRange(c)
		if err != nil {
			return err
		}
		r, err := e.Performance(q, strings.TrimSpace(c.Query("cashier")))
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

// GET /api/admin/shifts
func ShiftsHandler(e *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseRange(c)
		if err != nil {
			return err
		}
		r, err := e.Shifts(q)
		if err != nil {
			return err
		}
		return c.JSON(r)
	}
}

// GET /api/admin/cashflow/export
func CashflowExportHandler(e *Engine, sink Sink, clk *clock.Clock) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseRange(c)
		if err != nil {
			return err
		}
		r, orders, err := e.CashflowDetail(q)
		if err != nil {
			return err
		}

		title := CashflowTitle(r)
		return send(c, sink, title, CashflowSections(r, orders, clk))
	}
}

// GET /api/admin/performance/export
func PerformanceExportHandler(e *Engine, sink Sink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseRange(c)
		if err != nil {
			return err
		}
		r, err := e.Performance(q, strings.TrimSpace(c.Query("cashier")))
		if err != nil {
			return err
		}

		return send(c, sink, PerformanceTitle(r), PerformanceSections(r))
	}
}

func send(c *fiber.Ctx, sink Sink, title string, sections []Section) error {
	b, err := sink.Render(title, sections)
	if err != nil {
		return err
	}
	c.Attachment(FileName(title, sink.Extension()))
	c.Set(fiber.HeaderContentType, sink.ContentType())
	return c.Send(b)
}
