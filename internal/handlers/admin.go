// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotchain/supplytrace-backend/internal/services"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

type AdminHandler struct {
	adminService    *services.AdminService
	authService     *services.AuthService
	registryService *services.RegistryService
}

func NewAdminHandler(adminService *services.AdminService, authService *services.AuthService, registryService *services.RegistryService) *AdminHandler {
	return &AdminHandler{
		adminService:    adminService,
		authService:     authService,
		registryService: registryService,
	}
}

// PUT /admin/participants/:address/status
func (h *AdminHandler) SetParticipantStatus(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	actor, err := h.authService.GetUserByID(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var req services.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	participant, err := h.registryService.SetStatus(actor, c.Param("address"), req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"participant": participant,
	})
}

// GET /admin/participants
func (h *AdminHandler) GetParticipants(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	participants, total, err := h.adminService.ListParticipants(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(participants, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/events
func (h *AdminHandler) GetEvents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	events, total, err := h.adminService.ListEvents(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(events, total, params)
	utils.PaginatedResponse(c, result)
}
