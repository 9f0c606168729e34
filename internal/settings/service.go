package settings

import (
	"context"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/audit"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

type Service struct {
	db    *database.DB
	clock *clock.Clock
}

func NewService(db *database.DB, clk *clock.Clock) *Service {
	return &Service{db: db, clock: clk}
}

func (s *Service) QRIS() models.Settings {
	return s.db.Snapshot().Settings
}

// SetQRIS points the payment QR at a stored image path.
func (s *Service) SetQRIS(ctx context.Context, image, actor string) (models.Settings, error) {
	if image == "" {
		return models.Settings{}, apperr.Validation("qris image required")
	}

	var out models.Settings
	err := s.db.Update(ctx, func(doc *models.Document) error {
		before := doc.Settings
		now := s.clock.Now()
		doc.Settings.QRISImage = &image
		doc.Settings.QRISUpdatedAt = &now
		out = doc.Settings

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    actor,
			EntityType:  "settings",
			EntityID:    "qris",
			Action:      models.AuditActionUpdate,
			Description: "QRIS image updated",
			Before:      before,
			After:       out,
		})
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	return out, nil
}
