package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserName string `json:"user_name"` // denormalized, may be a guest marker

	// "order", "shift", "product", "table", "settings"
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`

	Action      AuditAction `json:"action"`
	Description string      `json:"description"`

	BeforeData json.RawMessage `json:"before_data,omitempty"`
	AfterData  json.RawMessage `json:"after_data,omitempty"`
}
