// internal/models/transfer.go
package models

import "time"

// Transfer is a two-phase movement of lot units. Balances move at
// initiation; the status records whether the recipient kept the units
// (accepted) or the movement was reversed (rejected). A terminal status
// is never re-opened.
type Transfer struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	FromAddress string         `json:"from_address" gorm:"size:64;not null;index"`
	ToAddress   string         `json:"to_address" gorm:"size:64;not null;index"`
	LotID       uint           `json:"lot_id" gorm:"not null;index"`
	Amount      uint64         `json:"amount" gorm:"not null"`
	Status      TransferStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ResolvedAt  *time.Time     `json:"resolved_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (t *Transfer) Pending() bool {
	return t.Status == TransferStatusPending
}
