package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"hotel-inventory/controllers"
	"hotel-inventory/middleware"
)

// SetupRouter wires controllers to their routes.
func SetupRouter(
	rc *controllers.ReservationController,
	roomc *controllers.RoomController,
	corsOrigins []string,
	logger zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger))

	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/room-types", roomc.GetRoomTypes)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", roomc.GetRooms)
			rooms.GET("/stats", roomc.GetRoomStats)
			rooms.PATCH("/:id/status", roomc.UpdateRoomStatus)
		}

		api.GET("/availability", rc.CheckAvailability)
		api.GET("/quote", rc.Quote)

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.GetReservations)
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservation)
			reservations.POST("/:id/check-in", rc.CheckIn)
			reservations.POST("/:id/check-out", rc.CheckOut)
			reservations.POST("/:id/cancel", rc.Cancel)
		}
	}

	return r
}
