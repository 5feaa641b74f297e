// internal/models/event.go
package models

import (
	"github.com/google/uuid"
)

// LedgerEvent is a persisted notification consumed by external
// collaborators (UI, indexers). One row per successful state change.
type LedgerEvent struct {
	BaseModel
	Type       EventType `json:"type" gorm:"type:varchar(30);not null;index"`
	Actor      string    `json:"actor" gorm:"size:64;index"`
	LotID      *uint     `json:"lot_id,omitempty" gorm:"index"`
	TransferID *uint     `json:"transfer_id,omitempty" gorm:"index"`
	Payload    JSONB     `json:"payload" gorm:"type:jsonb"`
}

// AuditLog records every mutating HTTP request.
type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:255;not null"`
	ResourceType string     `json:"resource_type" gorm:"size:50;index"`
	ResourceID   string     `json:"resource_id" gorm:"size:64"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"size:255"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
}
