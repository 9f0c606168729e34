package audit

import (
	"strconv"

	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultListLimit = 100

// GET /api/admin/audit-logs?entity_type=order&entity_id=...&limit=50
// Newest first.
func ListAuditLogsHandler(db *database.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Query("entity_type")
		entityID := c.Query("entity_id")

		limit := defaultListLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "invalid limit")
			}
			limit = n
		}

		logs := db.Snapshot().AuditLogs
		resp := make([]models.AuditLog, 0, min(limit, len(logs)))
		for i := len(logs) - 1; i >= 0 && len(resp) < limit; i-- {
			l := logs[i]
			if entityType != "" && l.EntityType != entityType {
				continue
			}
			if entityID != "" && l.EntityID != entityID {
				continue
			}
			resp = append(resp, l)
		}

		return c.JSON(resp)
	}
}
