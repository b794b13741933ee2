package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-portfolio-api/internal/apperrors"
	"github.com/harentsoaR/doctor-portfolio-api/internal/models"
	"github.com/harentsoaR/doctor-portfolio-api/internal/store"
)

func (h *Handler) CreateBlog(c *gin.Context) {
	req := models.NewBlogPostInput()
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.BindError(err))
		return
	}
	req.Normalize()

	id, err := h.Store.Insert(c.Request.Context(), models.BlogPosts, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// ListBlogs returns every post, or only those whose published flag equals
// the ?published query parameter when one is given.
func (h *Handler) ListBlogs(c *gin.Context) {
	filter := store.Filter{}
	if raw := c.Query("published"); raw != "" {
		published, ok := parseBool(raw)
		if !ok {
			respondError(c, apperrors.NewValidationError("published", "value could not be parsed to a boolean"))
			return
		}
		filter = filter.And(store.FieldEquals(models.BlogPublished, published))
	}

	var items []models.BlogPost
	if err := h.Store.Query(c.Request.Context(), models.BlogPosts, filter, &items); err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = make([]models.BlogPost, 0)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// parseBool accepts the usual spellings of a query-string boolean.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	}
	return false, false
}
