package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/models"
)

// Writer persists a single audit event.
type Writer interface {
	Write(ev Event) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ev Event) error {
	return l.db.Create(ev.record()).Error
}

func (ev Event) record() *models.AuditLog {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return &models.AuditLog{
		BusinessID: ev.BusinessID,
		UserID:     optional(ev.UserID),
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   optional(ev.EntityID),
		Metadata:   metaJSON,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
