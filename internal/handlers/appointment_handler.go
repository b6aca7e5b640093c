package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-bot/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barbershop-bot/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *ucAppointment.GetAvailability
	listByDate   *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	availability *ucAppointment.GetAvailability,
	listByDate *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		listByDate:   listByDate,
	}
}

// ======================================================
// GET /api/barbers/:id/availability?date=YYYY-MM-DD
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")

	free, err := h.availability.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"barber_id": barberID,
		"date":      date,
		"slots":     free,
	})
}

// ======================================================
// GET /api/barbers/:id/appointments?date=YYYY-MM-DD
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := paramID(c, "id")
	if !ok {
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, out)
}
