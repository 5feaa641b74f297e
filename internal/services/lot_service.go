// internal/services/lot_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// LotService owns lot records and their balance maps. Total supply is
// fixed at creation; after that, balances move only through the transfer
// service.
type LotService struct {
	db            *gorm.DB
	notifications *NotificationService
}

type CreateLotRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	TotalSupply uint64 `json:"total_supply"`
	Features    string `json:"features,omitempty"`
	ParentID    *uint  `json:"parent_id,omitempty"`
}

func NewLotService(db *gorm.DB, notifications *NotificationService) *LotService {
	return &LotService{
		db:            db,
		notifications: notifications,
	}
}

// CreateLot allocates a new lot and credits the entire initial supply to
// the creator. A zero supply is a valid placeholder lot. ParentID is
// recorded as provenance without existence validation.
func (s *LotService) CreateLot(creator string, req *CreateLotRequest) (*models.Lot, error) {
	if req.Name == "" {
		return nil, ErrInvalidInput
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var lot *models.Lot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		participant, err := participantByAddress(tx, creator)
		if err != nil {
			return err
		}
		if !participant.Approved() {
			return ErrNotApproved
		}

		lot = &models.Lot{
			CreatorAddress: creator,
			Name:           req.Name,
			TotalSupply:    req.TotalSupply,
			Features:       req.Features,
			ParentID:       req.ParentID,
		}
		if err := tx.Create(lot).Error; err != nil {
			return err
		}

		return tx.Create(&models.LotBalance{
			LotID:  lot.ID,
			Holder: creator,
			Amount: req.TotalSupply,
		}).Error
	})

	if err != nil {
		return nil, err
	}

	s.notifications.PublishLotCreated(lot)

	return lot, nil
}

func (s *LotService) GetLot(id uint) (*models.Lot, error) {
	var lot models.Lot
	if err := s.db.Preload("Balances").First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// GetBalance fails only when the lot itself is unknown; a holder with no
// recorded balance holds zero.
func (s *LotService) GetBalance(lotID uint, holder string) (uint64, error) {
	if _, err := lotByID(s.db, lotID); err != nil {
		return 0, err
	}
	return lotBalance(s.db, lotID, holder)
}

// AttachDocuments appends uploaded document URLs to a lot. Only the
// creator may attach.
func (s *LotService) AttachDocuments(creator string, lotID uint, urls []string) (*models.Lot, error) {
	if len(urls) == 0 {
		return nil, ErrInvalidInput
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var lot *models.Lot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		lot, err = lotByID(tx, lotID)
		if err != nil {
			return err
		}
		if lot.CreatorAddress != creator {
			return ErrNotAuthorized
		}

		lot.Documents = append(lot.Documents, urls...)
		return tx.Model(lot).Update("documents", lot.Documents).Error
	})

	if err != nil {
		return nil, err
	}

	return lot, nil
}
