package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-inventory/models"
	"hotel-inventory/services"
	"hotel-inventory/utils"
)

type UpdateRoomStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

type RoomController struct {
	Svc *services.ReservationService
}

func NewRoomController(svc *services.ReservationService) *RoomController {
	return &RoomController{Svc: svc}
}

// ----------------------------------------------------
// GET /api/room-types
// ----------------------------------------------------

func (ctrl *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.Svc.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

// ----------------------------------------------------
// GET /api/rooms (room board)
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Svc.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// ----------------------------------------------------
// GET /api/rooms/stats (dashboard KPIs)
// ----------------------------------------------------

func (ctrl *RoomController) GetRoomStats(c *gin.Context) {
	stats, err := ctrl.Svc.RoomStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// ----------------------------------------------------
// PATCH /api/rooms/:id/status
// ----------------------------------------------------

func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "room id must be a positive number")
		return
	}

	var p UpdateRoomStatusPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBadRequest(c, "payload must include status")
		return
	}
	status, err := models.ParseRoomStatus(p.Status)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	room, err := ctrl.Svc.SetRoomStatus(c.Request.Context(), uint(id), status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
