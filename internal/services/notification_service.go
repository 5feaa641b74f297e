// internal/services/notification_service.go
package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lotchain/supplytrace-backend/internal/models"
)

// NotificationService persists ledger events for external collaborators
// (UI, indexers) and mirrors them to the structured log. Events are
// published after a successful commit only; a failed publish never fails
// the originating call.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) publish(event *models.LedgerEvent) {
	if err := s.db.Create(event).Error; err != nil {
		logrus.WithError(err).WithField("type", event.Type).Error("Failed to persist ledger event")
		return
	}

	logrus.WithFields(logrus.Fields{
		"type":        event.Type,
		"actor":       event.Actor,
		"lot_id":      event.LotID,
		"transfer_id": event.TransferID,
	}).Info("Ledger event published")
}

func (s *NotificationService) PublishRoleRequested(p *models.Participant) {
	s.publish(&models.LedgerEvent{
		Type:  models.EventRoleRequested,
		Actor: p.Address,
		Payload: models.JSONB{
			"address": p.Address,
			"role":    p.Role,
		},
	})
}

func (s *NotificationService) PublishStatusChanged(p *models.Participant) {
	s.publish(&models.LedgerEvent{
		Type:  models.EventStatusChanged,
		Actor: p.Address,
		Payload: models.JSONB{
			"address": p.Address,
			"role":    p.Role,
			"status":  p.Status,
		},
	})
}

func (s *NotificationService) PublishLotCreated(lot *models.Lot) {
	lotID := lot.ID
	s.publish(&models.LedgerEvent{
		Type:  models.EventLotCreated,
		Actor: lot.CreatorAddress,
		LotID: &lotID,
		Payload: models.JSONB{
			"name":         lot.Name,
			"total_supply": lot.TotalSupply,
			"parent_id":    lot.ParentID,
		},
	})
}

func (s *NotificationService) PublishTransferRequested(t *models.Transfer) {
	s.publishTransferEvent(models.EventTransferRequested, t.FromAddress, t)
}

func (s *NotificationService) PublishTransferAccepted(t *models.Transfer, actor string) {
	s.publishTransferEvent(models.EventTransferAccepted, actor, t)
}

func (s *NotificationService) PublishTransferRejected(t *models.Transfer, actor string) {
	s.publishTransferEvent(models.EventTransferRejected, actor, t)
}

func (s *NotificationService) publishTransferEvent(eventType models.EventType, actor string, t *models.Transfer) {
	transferID := t.ID
	lotID := t.LotID
	s.publish(&models.LedgerEvent{
		Type:       eventType,
		Actor:      actor,
		LotID:      &lotID,
		TransferID: &transferID,
		Payload: models.JSONB{
			"from":   t.FromAddress,
			"to":     t.ToAddress,
			"amount": t.Amount,
			"status": t.Status,
		},
	})
}

// EventsForLot returns the event history of one lot, oldest first.
func (s *NotificationService) EventsForLot(lotID uint) ([]models.LedgerEvent, error) {
	var events []models.LedgerEvent
	if err := s.db.Where("lot_id = ?", lotID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// EventsForTransfer returns the event history of one transfer, oldest first.
func (s *NotificationService) EventsForTransfer(transferID uint) ([]models.LedgerEvent, error) {
	var events []models.LedgerEvent
	if err := s.db.Where("transfer_id = ?", transferID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
