package menu

import (
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/auth"
	"github.com/Siskaumami/Dip-N-Fly/internal/upload"

	"github.com/gofiber/fiber/v2"
)

// formField reads a multipart or urlencoded field and reports whether it was sent.
func formField(c *fiber.Ctx, key string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0], true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}

func amountField(c *fiber.Ctx, key string) (*int64, error) {
	raw, ok := formField(c, key)
	if !ok {
		return nil, nil
	}
	v, err := parseAmount(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperr.Validation("invalid %s", key)
	}
	return &v, nil
}

// GET /api/menu (public, no HPP)
func PublicMenuHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Menu())
	}
}

// GET /api/admin/products
func ListProductsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.List())
	}
}

// POST /api/admin/products (multipart: name, level, hpp, price, image)
func CreateProductHandler(svc *Service, images *upload.Images) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, _ := formField(c, "name")
		level, _ := formField(c, "level")
		price, err := amountField(c, "price")
		if err != nil {
			return err
		}
		if price == nil || strings.TrimSpace(name) == "" {
			return apperr.Validation("name & price required")
		}
		hpp, err := amountField(c, "hpp")
		if err != nil {
			return err
		}

		in := ProductInput{Name: name, Level: level, Price: *price}
		if hpp != nil {
			in.HPP = *hpp
		}
		if err := validate(in.Name, in.HPP, in.Price); err != nil {
			return err
		}

		img, err := images.Optional(c, "image")
		if err != nil {
			return err
		}
		in.Image = img

		p, err := svc.Create(c.UserContext(), in, auth.IdentityFrom(c).Username)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// PUT /api/admin/products/:id (multipart, any subset of fields)
func UpdateProductHandler(svc *Service, images *upload.Images) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch ProductPatch
		if v, ok := formField(c, "name"); ok {
			patch.Name = &v
		}
		if v, ok := formField(c, "level"); ok {
			patch.Level = &v
		}
		var err error
		if patch.HPP, err = amountField(c, "hpp"); err != nil {
			return err
		}
		if patch.Price, err = amountField(c, "price"); err != nil {
			return err
		}
		if patch.Image, err = images.Optional(c, "image"); err != nil {
			return err
		}

		p, err := svc.Update(c.UserContext(), c.Params("id"), patch, auth.IdentityFrom(c).Username)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id"), auth.IdentityFrom(c).Username); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// POST /api/admin/products/import (multipart "file", .xlsx)
func ImportProductsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return apperr.Validation("file required")
		}
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
			return apperr.Validation("Only .xlsx files can be uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := ReadWorkbook(f)
		if err != nil {
			return err
		}

		res, err := svc.Import(c.UserContext(), rows, auth.IdentityFrom(c).Username)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}
