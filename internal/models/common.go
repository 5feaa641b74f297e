// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeParticipant UserType = "participant"
	UserTypeAdmin       UserType = "admin"
)

// Role is a supply chain stage. Transfers must follow the fixed forward
// adjacency producer -> factory -> retailer -> consumer.
type Role string

const (
	RoleProducer Role = "producer"
	RoleFactory  Role = "factory"
	RoleRetailer Role = "retailer"
	RoleConsumer Role = "consumer"
)

// RoleSuccessor is the legal recipient role for each sender role.
// RoleConsumer has no successor and may never send.
var RoleSuccessor = map[Role]Role{
	RoleProducer: RoleFactory,
	RoleFactory:  RoleRetailer,
	RoleRetailer: RoleConsumer,
}

func (r Role) Valid() bool {
	switch r {
	case RoleProducer, RoleFactory, RoleRetailer, RoleConsumer:
		return true
	}
	return false
}

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
	ApprovalStatusCanceled ApprovalStatus = "canceled"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected, ApprovalStatusCanceled:
		return true
	}
	return false
}

type TransferStatus string

const (
	TransferStatusPending  TransferStatus = "pending"
	TransferStatusAccepted TransferStatus = "accepted"
	TransferStatusRejected TransferStatus = "rejected"
)

// Ledger event types, one per observable side effect. Events fire on
// success only.
type EventType string

const (
	EventRoleRequested     EventType = "role_requested"
	EventStatusChanged     EventType = "status_changed"
	EventLotCreated        EventType = "lot_created"
	EventTransferRequested EventType = "transfer_requested"
	EventTransferAccepted  EventType = "transfer_accepted"
	EventTransferRejected  EventType = "transfer_rejected"
)
