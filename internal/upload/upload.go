package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	MaxImageSize = 5 * 1024 * 1024
	PublicPrefix = "/uploads/"
)

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// ErrNoFile is returned when the form has no file under the requested field.
var ErrNoFile = errors.New("no file uploaded")

// Images stores uploaded menu and QRIS images under a directory served at /uploads.
type Images struct {
	dir string
}

func NewImages(dir string) (*Images, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Images{dir: dir}, nil
}

func (im *Images) Dir() string {
	return im.dir
}

// Save stores the multipart file in field and returns its public path.
// A missing file yields ErrNoFile so callers can treat the image as optional.
func (im *Images) Save(c *fiber.Ctx, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", apperr.Validation("Only jpg, jpeg, png files are allowed")
	}
	if fh.Size > MaxImageSize {
		return "", apperr.Validation("File too large, max 5MB")
	}

	name := uuid.NewString() + ext
	if err := c.SaveFile(fh, filepath.Join(im.dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return PublicPrefix + name, nil
}

// Optional is Save with a missing file reported as nil.
func (im *Images) Optional(c *fiber.Ctx, field string) (*string, error) {
	p, err := im.Save(c, field)
	if errors.Is(err, ErrNoFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
