package routes

import (
	"detailify/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers the scheduling endpoints.
func RegisterScheduleRoutes(r *gin.Engine, h *handlers.ScheduleHandler) {
	schedule := r.Group("/api/schedule")
	{
		schedule.POST("/availability", h.CheckAvailability) // conflict check only
		schedule.POST("/book", h.ConfirmBooking)            // serialized check-then-write
	}
}
