// internal/services/transfer_service.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// TransferService is the two-phase transfer state machine. Balances move
// at initiation: the amount leaves the sender and reaches the recipient
// before the transfer is resolved, so the pending status is an audit
// label, not a custody gate. Rejection reverses the movement exactly.
type TransferService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type InitiateTransferRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	LotID     uint   `json:"lot_id" validate:"required"`
	Amount    uint64 `json:"amount"`
}

func NewTransferService(db *gorm.DB, notifications *NotificationService) *TransferService {
	return &TransferService{
		db:            db,
		notifications: notifications,
	}
}

// Initiate validates the transfer and moves the balance in the same
// atomic step. Precondition order is fixed; every check precedes every
// write, so a failure leaves no partial state.
func (s *TransferService) Initiate(sender string, req *InitiateTransferRequest) (*models.Transfer, error) {
	if req.Recipient == "" || req.Recipient == sender {
		return nil, ErrInvalidRecipient
	}
	if req.Amount == 0 {
		return nil, ErrInvalidAmount
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var transfer *models.Transfer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lotByID(tx, req.LotID); err != nil {
			return err
		}

		senderRecord, err := participantByAddress(tx, sender)
		if err != nil {
			return err
		}
		if !senderRecord.Approved() {
			return ErrNotApproved
		}

		recipientRecord, err := participantByAddress(tx, req.Recipient)
		if err != nil {
			return err
		}
		if recipientRecord == nil {
			return ErrRecipientUnregistered
		}

		if senderRecord.Role == models.RoleConsumer {
			return ErrTerminalRole
		}
		if models.RoleSuccessor[senderRecord.Role] != recipientRecord.Role {
			return ErrIllegalRoleTransition
		}

		balance, err := lotBalance(tx, req.LotID, sender)
		if err != nil {
			return err
		}
		if balance < req.Amount {
			return ErrInsufficientBalance
		}

		if err := debitBalance(tx, req.LotID, sender, req.Amount); err != nil {
			return err
		}
		if err := creditBalance(tx, req.LotID, req.Recipient, req.Amount); err != nil {
			return err
		}

		transfer = &models.Transfer{
			FromAddress: sender,
			ToAddress:   req.Recipient,
			LotID:       req.LotID,
			Amount:      req.Amount,
			Status:      models.TransferStatusPending,
		}
		return tx.Create(transfer).Error
	})

	if err != nil {
		return nil, err
	}

	s.notifications.PublishTransferRequested(transfer)

	return transfer, nil
}

// Accept marks a pending transfer accepted. The role adjacency is
// re-validated against the participants' current roles; roles may have
// changed since initiation. A failed re-validation refuses the accept
// but does not move funds back, the initiation-time movement stands.
func (s *TransferService) Accept(caller string, transferID uint) (*models.Transfer, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var transfer *models.Transfer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		transfer, err = transferByID(tx, transferID)
		if err != nil {
			return err
		}
		if !transfer.Pending() {
			return ErrInvalidState
		}
		if caller != transfer.ToAddress {
			return ErrNotRecipient
		}

		senderRecord, err := participantByAddress(tx, transfer.FromAddress)
		if err != nil {
			return err
		}
		recipientRecord, err := participantByAddress(tx, transfer.ToAddress)
		if err != nil {
			return err
		}
		if senderRecord == nil || recipientRecord == nil ||
			models.RoleSuccessor[senderRecord.Role] != recipientRecord.Role {
			return ErrIllegalRoleTransition
		}

		now := time.Now()
		transfer.Status = models.TransferStatusAccepted
		transfer.ResolvedAt = &now
		return tx.Save(transfer).Error
	})

	if err != nil {
		return nil, err
	}

	s.notifications.PublishTransferAccepted(transfer, caller)

	return transfer, nil
}

// Reject reverses the initiation-time movement and marks the transfer
// rejected. The recipient or the administrator may reject.
func (s *TransferService) Reject(caller string, isAdmin bool, transferID uint) (*models.Transfer, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var transfer *models.Transfer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		transfer, err = transferByID(tx, transferID)
		if err != nil {
			return err
		}
		if !transfer.Pending() {
			return ErrInvalidState
		}
		if caller != transfer.ToAddress && !isAdmin {
			return ErrNotAuthorized
		}

		if err := debitBalance(tx, transfer.LotID, transfer.ToAddress, transfer.Amount); err != nil {
			return err
		}
		if err := creditBalance(tx, transfer.LotID, transfer.FromAddress, transfer.Amount); err != nil {
			return err
		}

		now := time.Now()
		transfer.Status = models.TransferStatusRejected
		transfer.ResolvedAt = &now
		return tx.Save(transfer).Error
	})

	if err != nil {
		return nil, err
	}

	s.notifications.PublishTransferRejected(transfer, caller)

	return transfer, nil
}

func (s *TransferService) GetTransfer(id uint) (*models.Transfer, error) {
	return transferByID(s.db, id)
}

func transferByID(tx *gorm.DB, id uint) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := tx.First(&transfer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}
