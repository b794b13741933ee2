package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-portfolio-api/internal/logging"
	"github.com/harentsoaR/doctor-portfolio-api/internal/models"
	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

// --- CREATE APPOINTMENT ---
func (h *Handler) CreateAppointment(c *gin.Context) {
	req := models.NewAppointmentInput()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.BindError(err))
		return
	}
	req.Normalize()

	id, err := h.Store.Insert(c.Request.Context(), models.Appointments, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notifyBooking(c.Request.Context(), req)

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// --- LIST APPOINTMENTS (optional exact-match filters) ---
func (h *Handler) ListAppointments(c *gin.Context) {
	filter := store.Filter{}
	// Absent or empty parameters are left out of the filter.
	if email := c.Query("email"); email != "" {
		filter = filter.And(store.FieldEquals(models.AppointmentEmail, email))
	}
	if date := c.Query("date"); date != "" {
		filter = filter.And(store.FieldEquals(models.AppointmentDate, date))
	}

	var items []models.Appointment
	if err := h.Store.Query(c.Request.Context(), models.Appointments, filter, &items); err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = make([]models.Appointment, 0)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// notifyBooking mails the configured address. A failed settings lookup
// falls back to the default address rather than failing the booking.
func (h *Handler) notifyBooking(ctx context.Context, apt models.AppointmentInput) {
	if h.NotificationSvc == nil {
		return
	}
	recipient := h.opts.DefaultEmail
	settings, found, err := h.loadSettings(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("notification: settings lookup failed, using default email")
	} else if found {
		recipient = settings.NotificationEmail
	}
	h.NotificationSvc.AppointmentBooked(recipient, apt)
}
