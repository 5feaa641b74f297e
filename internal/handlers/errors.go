// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lotchain/supplytrace-backend/internal/services"
	"github.com/lotchain/supplytrace-backend/internal/utils"
)

// serviceErrorCodes maps each ledger error sentinel to its stable API
// code. Unknown errors fall through as internal.
var serviceErrorCodes = map[error]string{
	services.ErrNotAdministrator:      "NOT_ADMINISTRATOR",
	services.ErrNotApproved:           "NOT_APPROVED",
	services.ErrNotFound:              "NOT_FOUND",
	services.ErrInvalidInput:          "INVALID_INPUT",
	services.ErrInvalidAmount:         "INVALID_AMOUNT",
	services.ErrInvalidRecipient:      "INVALID_RECIPIENT",
	services.ErrRecipientUnregistered: "RECIPIENT_UNREGISTERED",
	services.ErrTerminalRole:          "TERMINAL_ROLE",
	services.ErrIllegalRoleTransition: "ILLEGAL_ROLE_TRANSITION",
	services.ErrInsufficientBalance:   "INSUFFICIENT_BALANCE",
	services.ErrInvalidState:          "INVALID_STATE",
	services.ErrNotRecipient:          "NOT_RECIPIENT",
	services.ErrNotAuthorized:         "NOT_AUTHORIZED",
}

func handleServiceError(c *gin.Context, err error) {
	code := "INTERNAL_ERROR"
	for sentinel, sentinelCode := range serviceErrorCodes {
		if errors.Is(err, sentinel) {
			code = sentinelCode
			break
		}
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, code, err.Error(), nil)
	case errors.Is(err, services.ErrNotAdministrator),
		errors.Is(err, services.ErrNotApproved),
		errors.Is(err, services.ErrNotRecipient),
		errors.Is(err, services.ErrNotAuthorized):
		utils.ErrorResponse(c, http.StatusForbidden, code, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidState):
		utils.ErrorResponse(c, http.StatusConflict, code, err.Error(), nil)
	case code != "INTERNAL_ERROR":
		utils.ErrorResponse(c, http.StatusBadRequest, code, err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return 0, false
	}
	return uint(value), true
}
