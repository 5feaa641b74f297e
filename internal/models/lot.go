// internal/models/lot.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Lot is a batch of a fungible product. TotalSupply is fixed at creation;
// balances only move between holders, they are never minted afterwards.
// ParentID is a provenance hint and is stored unvalidated.
type Lot struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	CreatorAddress string         `json:"creator_address" gorm:"size:64;not null;index"`
	Name           string         `json:"name" gorm:"size:255;not null"`
	TotalSupply    uint64         `json:"total_supply" gorm:"not null"`
	Features       string         `json:"features" gorm:"type:text"`
	ParentID       *uint          `json:"parent_id"`
	Documents      pq.StringArray `json:"documents" gorm:"type:text[]"`
	CreatedAt      time.Time      `json:"created_at"`

	Balances []LotBalance `json:"balances,omitempty" gorm:"foreignKey:LotID"`
}

// LotBalance is one holder's quantity within a lot. Absence of a row
// means a balance of zero.
type LotBalance struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	LotID  uint   `json:"lot_id" gorm:"not null;uniqueIndex:idx_lot_holder"`
	Holder string `json:"holder" gorm:"size:64;not null;uniqueIndex:idx_lot_holder;index"`
	Amount uint64 `json:"amount" gorm:"not null"`
}
