// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

// AdminService backs the administrator dashboard: participant listings,
// ledger-wide counts and the event feed.
type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	ParticipantsByStatus map[string]int64 `json:"participants_by_status"`
	TotalLots            int64            `json:"total_lots"`
	TransfersByStatus    map[string]int64 `json:"transfers_by_status"`
	TotalEvents          int64            `json:"total_events"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) ListParticipants(params utils.PaginationParams) ([]models.Participant, int64, error) {
	query := s.db.Model(&models.Participant{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Search != "" {
		query = query.Where("address LIKE ?", params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count participants: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "address", "role", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var participants []models.Participant
	if err := query.Find(&participants).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch participants: %w", err)
	}

	return participants, total, nil
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		ParticipantsByStatus: make(map[string]int64),
		TransfersByStatus:    make(map[string]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var participantCounts []statusCount
	if err := s.db.Model(&models.Participant{}).
		Select("status, COUNT(*) as count").Group("status").
		Scan(&participantCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	for _, row := range participantCounts {
		stats.ParticipantsByStatus[row.Status] = row.Count
	}

	var transferCounts []statusCount
	if err := s.db.Model(&models.Transfer{}).
		Select("status, COUNT(*) as count").Group("status").
		Scan(&transferCounts).Error; err != nil {
		return nil, fmt.Errorf("failed to count transfers: %w", err)
	}
	for _, row := range transferCounts {
		stats.TransfersByStatus[row.Status] = row.Count
	}

	if err := s.db.Model(&models.Lot{}).Count(&stats.TotalLots).Error; err != nil {
		return nil, fmt.Errorf("failed to count lots: %w", err)
	}
	if err := s.db.Model(&models.LedgerEvent{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	return stats, nil
}

func (s *AdminService) ListEvents(params utils.PaginationParams) ([]models.LedgerEvent, int64, error) {
	query := s.db.Model(&models.LedgerEvent{})

	if params.Search != "" {
		query = query.Where("actor = ?", params.Search)
	}
	if params.Status != "" {
		query = query.Where("type = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	allowedSortFields := []string{"created_at", "type", "actor"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var events []models.LedgerEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	return events, total, nil
}
