package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Siskaumami/Dip-N-Fly/internal/models"
)

// GuestUser marks entries made through the public checkout.
const GuestUser = "guest"

// MaxEntries bounds the log kept in the document. Older entries are dropped
// first; ids keep counting up.
const MaxEntries = 5000

type LogOptions struct {
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog appends an entry to doc. It must be called inside the same
// database.DB.Update as the change it describes, so both are written together.
func WriteLog(doc *models.Document, at time.Time, opts LogOptions) {
	nextID := 1
	if n := len(doc.AuditLogs); n > 0 {
		nextID = doc.AuditLogs[n-1].ID + 1
	}

	doc.AuditLogs = append(doc.AuditLogs, models.AuditLog{
		ID:          nextID,
		CreatedAt:   at,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  encode(opts.Before),
		AfterData:   encode(opts.After),
	})
	if n := len(doc.AuditLogs); n > MaxEntries {
		doc.AuditLogs = append([]models.AuditLog(nil), doc.AuditLogs[n-MaxEntries:]...)
	}
}

func encode(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		// not fatal for the mutation itself
		log.Printf("audit payload could not be encoded: %v", err)
		return nil
	}
	return b
}
