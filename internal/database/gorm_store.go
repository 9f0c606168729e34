package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const documentName = "main"

// GormStore keeps the document in one row of store_documents.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm connects with the named driver ("postgres" or "sqlite") and migrates.
func OpenGorm(driver, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.StoreDocument{}); err != nil {
		return nil, fmt.Errorf("AutoMigrate failed: %w", err)
	}
	log.Println("Database connected, migration done.")
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context) (*models.Document, error) {
	var row models.StoreDocument
	err := s.db.WithContext(ctx).Where("name = ?", documentName).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("document could not be read: %w", err)
	}
	return decodeDocument([]byte(row.Data))
}

func (s *GormStore) Save(ctx context.Context, doc *models.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document could not be encoded: %w", err)
	}

	row := models.StoreDocument{
		Name:      documentName,
		Data:      string(b),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).Create(&row).Error
	})
}
