package tables

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

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

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// MenuURL is the customer-facing page a table's QR code points at.
func MenuURL(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/m/" + url.PathEscape(NormalizeCode(code))
}

// List returns tables by id with URLs built from origin. Stored URLs are
// never trusted.
func (s *Service) List(origin string) []models.Table {
	src := s.db.Snapshot().Tables
	out := make([]models.Table, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	for i := range out {
		out[i].URL = MenuURL(origin, out[i].Code)
	}
	return out
}

// Lookup finds a table by code. Codes are compared after normalizing.
func (s *Service) Lookup(code string) (models.Table, bool) {
	snap := s.db.Snapshot()
	idx, ok := snap.FindTableByCode(NormalizeCode(code))
	if !ok {
		return models.Table{}, false
	}
	return snap.Tables[idx], true
}

func codeTaken(tables []models.Table, code string, exceptID int) bool {
	for _, t := range tables {
		if t.ID != exceptID && NormalizeCode(t.Code) == code {
			return true
		}
	}
	return false
}

func (s *Service) Create(ctx context.Context, name, code, origin, actor string) (models.Table, error) {
	name = strings.TrimSpace(name)
	code = NormalizeCode(code)
	if name == "" || code == "" {
		return models.Table{}, apperr.Validation("name & code required")
	}

	var created models.Table
	err := s.db.Update(ctx, func(doc *models.Document) error {
		if codeTaken(doc.Tables, code, 0) {
			return apperr.Conflict("Table code already exists: %s", code)
		}

		maxID := 0
		for _, t := range doc.Tables {
			if t.ID > maxID {
				maxID = t.ID
			}
		}
		created = models.Table{ID: maxID + 1, Name: name, Code: code}
		doc.Tables = append(doc.Tables, created)

		audit.WriteLog(doc, s.clock.Now(), audit.LogOptions{
			UserName:    actor,
			EntityType:  "table",
			EntityID:    fmt.Sprint(created.ID),
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Table %s created", code),
			After:       created,
		})
		return nil
	})
	if err != nil {
		return models.Table{}, err
	}
	created.URL = MenuURL(origin, created.Code)
	return created, nil
}

// Update renames and/or recodes a table. Nil fields are left as they are.
func (s *Service) Update(ctx context.Context, id int, name, code *string, origin, actor string) (models.Table, error) {
	var updated models.Table
	err := s.db.Update(ctx, func(doc *models.Document) error {
		idx := -1
		for i, t := range doc.Tables {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperr.NotFound("Table not found")
		}
		t := &doc.Tables[idx]
		before := *t

		if name != nil {
			if strings.TrimSpace(*name) == "" {
				return apperr.Validation("name required")
			}
			t.Name = strings.TrimSpace(*name)
		}
		if code != nil {
			c := NormalizeCode(*code)
			if c == "" {
				return apperr.Validation("code required")
			}
			if codeTaken(doc.Tables, c, id) {
				return apperr.Conflict("Table code already exists: %s", c)
			}
			t.Code = c
		}
		t.URL = ""
		updated = *t

		audit.WriteLog(doc, s.clock.Now(), audit.LogOptions{
			UserName:    actor,
			EntityType:  "table",
			EntityID:    fmt.Sprint(id),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Table %s updated", t.Code),
			Before:      before,
			After:       updated,
		})
		return nil
	})
	if err != nil {
		return models.Table{}, err
	}
	updated.URL = MenuURL(origin, updated.Code)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int, actor string) error {
	return s.db.Update(ctx, func(doc *models.Document) error {
		for i, t := range doc.Tables {
			if t.ID != id {
				continue
			}
			doc.Tables = append(doc.Tables[:i], doc.Tables[i+1:]...)
			audit.WriteLog(doc, s.clock.Now(), audit.LogOptions{
				UserName:    actor,
				EntityType:  "table",
				EntityID:    fmt.Sprint(id),
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Table %s deleted", t.Code),
				Before:      t,
			})
			return nil
		}
		return apperr.NotFound("Table not found")
	})
}
