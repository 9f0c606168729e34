package database

import (
	"context"
	"fmt"
	"log"

	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTableCount = 20

type SeedUser struct {
	Username string
	Password string
	Role     models.UserRole
}

// DefaultTables returns MEJA01..MEJAnn.
func DefaultTables(n int) []models.Table {
	tables := make([]models.Table, 0, n)
	for i := 1; i <= n; i++ {
		tables = append(tables, models.Table{
			ID:   i,
			Name: fmt.Sprintf("Meja %d", i),
			Code: fmt.Sprintf("MEJA%02d", i),
		})
	}
	return tables
}

// Seed creates the default tables on first run and the given users when their
// username is missing. It writes once, and only when something changed.
func Seed(ctx context.Context, db *DB, users ...SeedUser) error {
	snap := db.Snapshot()
	needTables := len(snap.Tables) == 0
	var missing []SeedUser
	for _, u := range users {
		if _, ok := snap.FindUser(u.Username); !ok {
			missing = append(missing, u)
		}
	}
	if !needTables && len(missing) == 0 {
		return nil
	}

	hashed := make([]models.User, 0, len(missing))
	for _, u := range missing {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("password could not be hashed: %w", err)
		}
		hashed = append(hashed, models.User{
			ID:           uuid.NewString(),
			Username:     u.Username,
			PasswordHash: string(hash),
			Role:         u.Role,
		})
	}

	return db.Update(ctx, func(doc *models.Document) error {
		if len(doc.Tables) == 0 {
			doc.Tables = DefaultTables(DefaultTableCount)
			log.Printf("Seeded %d default tables", DefaultTableCount)
		}
		for _, u := range hashed {
			doc.Users = append(doc.Users, u)
			log.Printf("Seeded user %s (%s)", u.Username, u.Role)
		}
		return nil
	})
}
