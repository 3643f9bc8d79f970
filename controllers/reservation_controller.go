// controllers/reservation_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-inventory/services"
	"hotel-inventory/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateReservationPayload struct {
	GuestName  string `json:"guestName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	RoomTypeID uint   `json:"roomTypeId"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

// GET /api/availability?check_in=&check_out=&guests=
func (ctrl *ReservationController) CheckAvailability(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		respondBadRequest(c, "check_in: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		respondBadRequest(c, "check_out: "+err.Error())
		return
	}
	guests := 1
	if raw := strings.TrimSpace(c.Query("guests")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "guests must be a whole number")
			return
		}
		guests = n
	}

	types, err := ctrl.Svc.CheckAvailability(c.Request.Context(), services.AvailabilityQuery{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

// GET /api/quote?room_type_id=&check_in=&check_out=
func (ctrl *ReservationController) Quote(c *gin.Context) {
	typeID, err := strconv.ParseUint(c.Query("room_type_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "room_type_id must be a positive number")
		return
	}
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		respondBadRequest(c, "check_in: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		respondBadRequest(c, "check_out: "+err.Error())
		return
	}

	q, err := ctrl.Svc.Quote(c.Request.Context(), uint(typeID), checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

// GET /api/reservations
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.Svc.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/reservations/:id
func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	res, err := ctrl.Svc.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// POST /api/reservations
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var p CreateReservationPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBadRequest(c, "payload must include checkIn and checkOut: "+err.Error())
		return
	}
	checkIn, err := utils.ParseDate(p.CheckIn)
	if err != nil {
		respondBadRequest(c, "checkIn: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(p.CheckOut)
	if err != nil {
		respondBadRequest(c, "checkOut: "+err.Error())
		return
	}

	res, err := ctrl.Svc.CreateReservation(c.Request.Context(), services.CreateReservationRequest{
		GuestName:  p.GuestName,
		Email:      p.Email,
		Phone:      p.Phone,
		RoomTypeID: p.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

// POST /api/reservations/:id/check-in
func (ctrl *ReservationController) CheckIn(c *gin.Context) {
	res, err := ctrl.Svc.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// POST /api/reservations/:id/check-out
func (ctrl *ReservationController) CheckOut(c *gin.Context) {
	res, err := ctrl.Svc.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// POST /api/reservations/:id/cancel
func (ctrl *ReservationController) Cancel(c *gin.Context) {
	res, err := ctrl.Svc.CancelReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}
