package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-portfolio-api/internal/models"
)

// GetSettings returns the first stored settings document, or a default
// that is not persisted while none exists.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, found, err := h.loadSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"ok": true, "settings": models.DefaultSettings(h.opts.DefaultEmail)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": settings})
}

// UpdateSettings inserts the first settings document or replaces the fields
// of the first existing one. Nothing serializes concurrent writers: two
// that both see no document will both insert.
func (h *Handler) UpdateSettings(c *gin.Context) {
	req := models.NewDoctorSettingsInput()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.BindError(err))
		return
	}
	req.Normalize()

	ctx := c.Request.Context()
	existing, found, err := h.loadSettings(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	if !found {
		if _, err := h.Store.Insert(ctx, models.Settings, req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "created": true})
		return
	}

	if err := h.Store.ReplaceFields(ctx, models.Settings, existing.ID.Hex(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": true})
}
