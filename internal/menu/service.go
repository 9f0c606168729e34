package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/audit"
	"github.com/Siskaumami/Dip-N-Fly/internal/clock"
	"github.com/Siskaumami/Dip-N-Fly/internal/database"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/google/uuid"
)

type ProductInput struct {
	Name  string
	Level string
	HPP   int64
	Price int64
	Image *string
}

// ProductPatch carries only the fields present in the request.
type ProductPatch struct {
	Name  *string
	Level *string
	HPP   *int64
	Price *int64
	Image *string
}

type Service struct {
	db    *database.DB
	clock *clock.Clock
}

func NewService(db *database.DB, clk *clock.Clock) *Service {
	return &Service{db: db, clock: clk}
}

// List returns every product, newest first, including cost.
func (s *Service) List() []models.Product {
	return s.db.Snapshot().Products
}

// Menu is the public view without HPP.
func (s *Service) Menu() []models.MenuItem {
	products := s.db.Snapshot().Products
	items := make([]models.MenuItem, 0, len(products))
	for _, p := range products {
		items = append(items, p.MenuItem())
	}
	return items
}

func validate(name string, hpp, price int64) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name & price required")
	}
	if price < 0 || hpp < 0 {
		return apperr.Validation("price and hpp must not be negative")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in ProductInput, actor string) (models.Product, error) {
	if err := validate(in.Name, in.HPP, in.Price); err != nil {
		return models.Product{}, err
	}

	var created models.Product
	err := s.db.Update(ctx, func(doc *models.Document) error {
		now := s.clock.Now()
		created = models.Product{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(in.Name),
			Level:     strings.TrimSpace(in.Level),
			Image:     in.Image,
			HPP:       in.HPP,
			Price:     in.Price,
			CreatedAt: now,
		}
		doc.Products = append([]models.Product{created}, doc.Products...)

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    actor,
			EntityType:  "product",
			EntityID:    created.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Product %s created", created.Name),
			After:       created,
		})
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch ProductPatch, actor string) (models.Product, error) {
	var updated models.Product
	err := s.db.Update(ctx, func(doc *models.Document) error {
		idx, ok := doc.FindProduct(id)
		if !ok {
			return apperr.NotFound("Product not found")
		}
		p := &doc.Products[idx]
		before := *p

		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Level != nil {
			p.Level = strings.TrimSpace(*patch.Level)
		}
		if patch.HPP != nil {
			p.HPP = *patch.HPP
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Image != nil {
			p.Image = patch.Image
		}
		if err := validate(p.Name, p.HPP, p.Price); err != nil {
			return err
		}

		now := s.clock.Now()
		p.UpdatedAt = &now
		updated = *p

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    actor,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Product %s updated", p.Name),
			Before:      before,
			After:       updated,
		})
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// Delete removes the product. Orders keep their captured name and price.
func (s *Service) Delete(ctx context.Context, id, actor string) error {
	return s.db.Update(ctx, func(doc *models.Document) error {
		idx, ok := doc.FindProduct(id)
		if !ok {
			return apperr.NotFound("Product not found")
		}
		removed := doc.Products[idx]
		doc.Products = append(doc.Products[:idx], doc.Products[idx+1:]...)

		audit.WriteLog(doc, s.clock.Now(), audit.LogOptions{
			UserName:    actor,
			EntityType:  "product",
			EntityID:    removed.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Product %s deleted", removed.Name),
			Before:      removed,
		})
		return nil
	})
}
