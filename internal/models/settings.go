package models

import "time"

type Settings struct {
	QRISImage     *string    `json:"qrisImage"`
	QRISUpdatedAt *time.Time `json:"qrisUpdatedAt,omitempty"`
}
