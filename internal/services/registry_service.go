// internal/services/registry_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// RegistryService owns the role approval records. A participant may act
// on the ledger only while its record is approved; the gate is
// re-evaluated on every gated call, so a demotion takes effect
// immediately.
type RegistryService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type RequestRoleRequest struct {
	Role models.Role `json:"role" validate:"required,supply_role"`
}

type SetStatusRequest struct {
	Status models.ApprovalStatus `json:"status" validate:"required"`
}

func NewRegistryService(db *gorm.DB, notifications *NotificationService) *RegistryService {
	return &RegistryService{
		db:            db,
		notifications: notifications,
	}
}

// RequestRole creates the role record for an unseen address, or
// overwrites the role of an existing one. Either way the status resets
// to pending; a role change always requires re-approval.
func (s *RegistryService) RequestRole(address string, role models.Role) (*models.Participant, error) {
	if role == "" || !role.Valid() {
		return nil, ErrInvalidInput
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var participant *models.Participant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := participantByAddress(tx, address)
		if err != nil {
			return err
		}

		if existing == nil {
			participant = &models.Participant{
				Address: address,
				Role:    role,
				Status:  models.ApprovalStatusPending,
			}
			return tx.Create(participant).Error
		}

		existing.Role = role
		existing.Status = models.ApprovalStatusPending
		participant = existing
		return tx.Save(existing).Error
	})

	if err != nil {
		return nil, err
	}

	s.notifications.PublishRoleRequested(participant)
	s.notifications.PublishStatusChanged(participant)

	return participant, nil
}

// SetStatus sets a participant's approval status unconditionally,
// including demoting an approved participant. Administrator only.
func (s *RegistryService) SetStatus(actor *models.User, address string, status models.ApprovalStatus) (*models.Participant, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, ErrNotAdministrator
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var participant *models.Participant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := participantByAddress(tx, address)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}

		existing.Status = status
		participant = existing
		return tx.Save(existing).Error
	})

	if err != nil {
		return nil, err
	}

	s.notifications.PublishStatusChanged(participant)

	return participant, nil
}

// GetInfo never fails: an address without a role record resolves to the
// canonical unregistered sentinel.
func (s *RegistryService) GetInfo(address string) (*models.Participant, error) {
	participant, err := participantByAddress(s.db, address)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return models.UnregisteredParticipant(address), nil
	}
	return participant, nil
}
