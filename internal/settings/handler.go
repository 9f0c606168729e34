package settings

import (
	"errors"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/auth"
	"github.com/Siskaumami/Dip-N-Fly/internal/upload"

	"github.com/gofiber/fiber/v2"
)

// POST /api/admin/qris (multipart "qris")
func UploadQRISHandler(svc *Service, images *upload.Images) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := images.Save(c, "qris")
		if errors.Is(err, upload.ErrNoFile) {
			return apperr.Validation("qris image required")
		}
		if err != nil {
			return err
		}

		st, err := svc.SetQRIS(c.UserContext(), path, auth.IdentityFrom(c).Username)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"qrisImage": st.QRISImage})
	}
}

// GET /api/admin/qris
func AdminQRISHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := svc.QRIS()
		return c.JSON(fiber.Map{"qrisImage": st.QRISImage, "updatedAt": st.QRISUpdatedAt})
	}
}

// GET /api/qris (public)
func PublicQRISHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"qrisImage": svc.QRIS().QRISImage})
	}
}
