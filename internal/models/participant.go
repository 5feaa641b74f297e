// internal/models/participant.go
package models

import "time"

// Participant is the role approval record for one ledger identity. At
// most one record exists per address; re-requesting a role overwrites it
// and resets the status to pending.
type Participant struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Address   string         `json:"address" gorm:"uniqueIndex;size:64;not null"`
	Role      Role           `json:"role" gorm:"type:varchar(20);not null"`
	Status    ApprovalStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Approved reports whether the participant passes the approval gate.
func (p *Participant) Approved() bool {
	return p != nil && p.ID != 0 && p.Status == ApprovalStatusApproved
}

// UnregisteredParticipant is the canonical record returned for an address
// that never requested a role: zero id, empty role, rejected status.
func UnregisteredParticipant(address string) *Participant {
	return &Participant{
		Address: address,
		Status:  ApprovalStatusRejected,
	}
}
