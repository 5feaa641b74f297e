// internal/services/ledger.go
package services

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// ledgerMu serializes every mutating ledger call. One call commits
// entirely before the next begins; this is also the re-entrancy guard
// for transfer-affecting operations.
var ledgerMu sync.Mutex

func participantByAddress(tx *gorm.DB, address string) (*models.Participant, error) {
	var participant models.Participant
	if err := tx.Where("address = ?", address).First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &participant, nil
}

func lotByID(tx *gorm.DB, lotID uint) (*models.Lot, error) {
	var lot models.Lot
	if err := tx.First(&lot, lotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// lotBalance returns the holder's balance on a lot. A missing row is a
// zero balance, not an error.
func lotBalance(tx *gorm.DB, lotID uint, holder string) (uint64, error) {
	var row models.LotBalance
	if err := tx.Where("lot_id = ? AND holder = ?", lotID, holder).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.Amount, nil
}

func creditBalance(tx *gorm.DB, lotID uint, holder string, amount uint64) error {
	var row models.LotBalance
	err := tx.Where("lot_id = ? AND holder = ?", lotID, holder).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.LotBalance{
			LotID:  lotID,
			Holder: holder,
			Amount: amount,
		}).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&row).Update("amount", row.Amount+amount).Error
}

func debitBalance(tx *gorm.DB, lotID uint, holder string, amount uint64) error {
	var row models.LotBalance
	err := tx.Where("lot_id = ? AND holder = ?", lotID, holder).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if amount == 0 {
			return nil
		}
		return ErrInsufficientBalance
	}
	if err != nil {
		return err
	}

	if row.Amount < amount {
		return ErrInsufficientBalance
	}

	return tx.Model(&row).Update("amount", row.Amount-amount).Error
}
