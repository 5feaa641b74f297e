// internal/services/query_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// QueryService is the read-only aggregation layer. Results are
// recomputed on every call; at this scale a linear scan through the id
// range is acceptable and keeps the results trivially consistent.
type QueryService struct {
	db *gorm.DB
}

func NewQueryService(db *gorm.DB) *QueryService {
	return &QueryService{db: db}
}

// LotsFor returns the ids of lots the address created or currently holds
// a nonzero balance in, strictly ascending and duplicate-free.
func (s *QueryService) LotsFor(address string) ([]uint, error) {
	var ids []uint
	err := s.db.Raw(`
		SELECT id FROM lots WHERE creator_address = ?
		UNION
		SELECT lot_id FROM lot_balances WHERE holder = ? AND amount > 0
		ORDER BY 1`, address, address).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// TransfersFor returns the ids of transfers the address sent or
// received, strictly ascending.
func (s *QueryService) TransfersFor(address string) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Transfer{}).
		Where("from_address = ? OR to_address = ?", address, address).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}
