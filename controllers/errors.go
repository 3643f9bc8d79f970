package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-inventory/services"
	"hotel-inventory/utils"
)

// respondError maps core errors onto HTTP statuses and error codes.
func respondError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		illegal    *services.IllegalTransitionError
		noVacant   *services.NoVacantRoomError
		forbidden  *services.ForbiddenStatusError
		busy       *services.RoomBusyError
	)

	switch {
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", validation.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.As(err, &illegal):
		utils.JSONError(c, http.StatusConflict, "error.illegalTransition", illegal.Error())
	case errors.As(err, &noVacant):
		utils.JSONError(c, http.StatusConflict, "error.noVacantRoom", noVacant.Error())
	case errors.As(err, &busy):
		utils.JSONError(c, http.StatusConflict, "error.roomBusy", busy.Error())
	case errors.As(err, &forbidden):
		utils.JSONError(c, http.StatusForbidden, "error.forbiddenStatus", forbidden.Error())
	default:
		_ = c.Error(err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal error")
	}
}

func respondBadRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", message)
}
