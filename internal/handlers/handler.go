package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-portfolio-api/internal/models"
	"github.com/harentsoaR/doctor-portfolio-api/internal/services"
	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

// Options carries the configuration the handlers report or fall back on.
type Options struct {
	DefaultEmail string
	Driver       string
	DatabaseURL  string
	DatabaseName string
}

// Handler serves every route.
type Handler struct {
	Store           store.Gateway
	NotificationSvc services.Notifier // nil disables notifications
	opts            Options
}

func NewHandler(gw store.Gateway, notifier services.Notifier, opts Options) *Handler {
	models.RegisterValidators()
	return &Handler{
		Store:           gw,
		NotificationSvc: notifier,
		opts:            opts,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/test", h.Diagnostics)

	api := r.Group("/api")
	{
		api.GET("/appointments", h.ListAppointments)
		api.POST("/appointments", h.CreateAppointment)

		api.GET("/blogs", h.ListBlogs)
		api.POST("/blogs", h.CreateBlog)

		api.GET("/settings", h.GetSettings)
		api.POST("/settings", h.UpdateSettings)
	}
}

// loadSettings returns the first settings document in store order.
func (h *Handler) loadSettings(ctx context.Context) (models.DoctorSettings, bool, error) {
	var docs []models.DoctorSettings
	if err := h.Store.Query(ctx, models.Settings, store.Filter{}, &docs); err != nil {
		return models.DoctorSettings{}, false, err
	}
	if len(docs) == 0 {
		return models.DoctorSettings{}, false, nil
	}
	return docs[0], true, nil
}
