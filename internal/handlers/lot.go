// internal/handlers/lot.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lotchain/supplytrace-backend/internal/services"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

type LotHandler struct {
	lotService          *services.LotService
	storageService      *services.StorageService
	notificationService *services.NotificationService
}

func NewLotHandler(lotService *services.LotService, storageService *services.StorageService, notificationService *services.NotificationService) *LotHandler {
	return &LotHandler{
		lotService:          lotService,
		storageService:      storageService,
		notificationService: notificationService,
	}
}

// POST /lots
func (h *LotHandler) CreateLot(c *gin.Context) {
	address, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	lot, err := h.lotService.CreateLot(address, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"lot": lot,
	})
}

// GET /lots/:id
func (h *LotHandler) GetLot(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	lot, err := h.lotService.GetLot(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lot": lot,
	})
}

// GET /lots/:id/balances/:address
func (h *LotHandler) GetBalance(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	balance, err := h.lotService.GetBalance(id, c.Param("address"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lot_id":  id,
		"holder":  c.Param("address"),
		"balance": balance,
	})
}

// GET /lots/:id/events
func (h *LotHandler) GetLotEvents(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.lotService.GetLot(id); err != nil {
		handleServiceError(c, err)
		return
	}

	events, err := h.notificationService.EventsForLot(id)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"events": events,
	})
}

// POST /lots/:id/documents
func (h *LotHandler) UploadDocuments(c *gin.Context) {
	address, exists := utils.GetAddressFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "File upload failed", err.Error())
		return
	}

	files := form.File["documents"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No documents uploaded", nil)
		return
	}

	var urls []string
	options := h.storageService.LotDocumentUploadOptions()

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			continue
		}

		result, err := h.storageService.UploadFile(file, fileHeader, options)
		file.Close()

		if err != nil {
			continue
		}

		urls = append(urls, result.URL)
	}

	if len(urls) == 0 {
		utils.BadRequestResponse(c, "No documents could be stored", nil)
		return
	}

	lot, err := h.lotService.AttachDocuments(address, id, urls)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lot":       lot,
		"documents": urls,
	})
}
