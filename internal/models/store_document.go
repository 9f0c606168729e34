package models

import "time"

// StoreDocument holds the serialized Document when a SQL database backs the store.
type StoreDocument struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;uniqueIndex;not null"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
