// internal/handlers/transfer.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotchain/supplytrace-backend/internal/models"
	"github.com/lotchain/supplytrace-backend/internal/services"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

type TransferHandler struct {
	transferService     *services.TransferService
	notificationService *services.NotificationService
}

func NewTransferHandler(transferService *services.TransferService, notificationService *services.NotificationService) *TransferHandler {
	return &TransferHandler{
		transferService:     transferService,
		notificationService: notificationService,
	}
}

// POST /transfers
func (h *TransferHandler) InitiateTransfer(c *gin.Context) {
	address, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.InitiateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	transfer, err := h.transferService.Initiate(address, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"transfer": transfer,
	})
}

// GET /transfers/:id
func (h *TransferHandler) GetTransfer(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransfer(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transfer": transfer,
	})
}

// PUT /transfers/:id/accept
func (h *TransferHandler) AcceptTransfer(c *gin.Context) {
	address, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	transfer, err := h.transferService.Accept(address, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transfer": transfer,
	})
}

// PUT /transfers/:id/reject
func (h *TransferHandler) RejectTransfer(c *gin.Context) {
	address, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	userType, _ := utils.GetUserTypeFromContext(c)
	isAdmin := userType == string(models.UserTypeAdmin)

	transfer, err := h.transferService.Reject(address, isAdmin, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transfer": transfer,
	})
}

// GET /transfers/:id/events
func (h *TransferHandler) GetTransferEvents(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.transferService.GetTransfer(id); err != nil {
		handleServiceError(c, err)
		return
	}

	events, err := h.notificationService.EventsForTransfer(id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"events": events,
	})
}
