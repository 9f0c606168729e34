package menu

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/audit"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped"`
}

var headerWords = map[string]bool{"name": true, "nama": true, "menu": true, "product": true}

// ReadWorkbook returns the rows of the first sheet.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("Excel file could not be read: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("Excel file has no sheet")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("Sheet could not be read: %v", err)
	}
	if len(rows) == 0 {
		return nil, apperr.Validation("Excel file is empty")
	}
	return rows, nil
}

// Import upserts products from rows of name, level, hpp, price. Existing
// products are matched by name ignoring case. A header row is skipped.
// Bad rows are reported, not fatal.
func (s *Service) Import(ctx context.Context, rows [][]string, actor string) (ImportResult, error) {
	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 && headerWords[strings.ToLower(strings.TrimSpace(rows[0][0]))] {
		start = 1
	}

	type parsed struct {
		line int
		in   ProductInput
	}
	res := ImportResult{Skipped: []string{}}
	var items []parsed
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		in, err := parseRow(row)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		items = append(items, parsed{line: i + 1, in: in})
	}
	if len(items) == 0 {
		return res, nil
	}

	err := s.db.Update(ctx, func(doc *models.Document) error {
		now := s.clock.Now()
		for _, it := range items {
			idx := findByName(doc.Products, it.in.Name)
			if idx >= 0 {
				p := &doc.Products[idx]
				p.Level, p.HPP, p.Price = it.in.Level, it.in.HPP, it.in.Price
				p.UpdatedAt = &now
				res.Updated++
				continue
			}
			doc.Products = append([]models.Product{{
				ID:        uuid.NewString(),
				Name:      it.in.Name,
				Level:     it.in.Level,
				HPP:       it.in.HPP,
				Price:     it.in.Price,
				CreatedAt: now,
			}}, doc.Products...)
			res.Created++
		}

		audit.WriteLog(doc, now, audit.LogOptions{
			UserName:    actor,
			EntityType:  "product",
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Menu import: %d created, %d updated", res.Created, res.Updated),
		})
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

func parseRow(row []string) (ProductInput, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	hpp, err := parseAmount(cell(2))
	if err != nil {
		return ProductInput{}, fmt.Errorf("invalid hpp %q", cell(2))
	}
	price, err := parseAmount(cell(3))
	if err != nil || cell(3) == "" {
		return ProductInput{}, fmt.Errorf("invalid price %q", cell(3))
	}
	in := ProductInput{Name: cell(0), Level: cell(1), HPP: hpp, Price: price}
	if err := validate(in.Name, in.HPP, in.Price); err != nil {
		return ProductInput{}, err
	}
	return in, nil
}

// wholeRupiah matches plain digits or thousands grouped by one kind of
// separator, so "15.000" passes and "15.000,50" or "2.5" do not.
var wholeRupiah = regexp.MustCompile(`^(\d+|\d{1,3}(\.\d{3})+|\d{1,3}(,\d{3})+)$`)

// parseAmount accepts whole rupiah written plainly or with "." / "," grouping.
func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	if !wholeRupiah.MatchString(s) {
		return 0, fmt.Errorf("not a whole rupiah amount: %q", s)
	}
	return strconv.ParseInt(strings.NewReplacer(".", "", ",", "").Replace(s), 10, 64)
}

func findByName(products []models.Product, name string) int {
	for i, p := range products {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}
