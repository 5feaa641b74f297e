// internal/handlers/participant.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotchain/supplytrace-backend/internal/services"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

type ParticipantHandler struct {
	registryService *services.RegistryService
	queryService    *services.QueryService
}

func NewParticipantHandler(registryService *services.RegistryService, queryService *services.QueryService) *ParticipantHandler {
	return &ParticipantHandler{
		registryService: registryService,
		queryService:    queryService,
	}
}

// POST /participants/role
func (h *ParticipantHandler) RequestRole(c *gin.Context) {
	address, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.RequestRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	participant, err := h.registryService.RequestRole(address, req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"participant": participant,
	})
}

// GET /participants/:address
//
// Never a 404: an unknown address resolves to the unregistered sentinel.
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	participant, err := h.registryService.GetInfo(c.Param("address"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"participant": participant,
	})
}

// GET /participants/:address/lots
func (h *ParticipantHandler) GetParticipantLots(c *gin.Context) {
	ids, err := h.queryService.LotsFor(c.Param("address"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lot_ids": ids,
	})
}

// GET /participants/:address/transfers
func (h *ParticipantHandler) GetParticipantTransfers(c *gin.Context) {
	ids, err := h.queryService.TransfersFor(c.Param("address"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transfer_ids": ids,
	})
}
