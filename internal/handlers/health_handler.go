package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-portfolio-api/internal/apperrors"
)

const (
	maxCollections   = 10
	maxDiagnosticLen = 80
)

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Doctor Portfolio API is running"})
}

// Diagnostics reports store connectivity. It always answers 200; failures
// show up in the body. connection_status turns Connected once the ping
// succeeds, even if listing collections then fails.
func (h *Handler) Diagnostics(c *gin.Context) {
	resp := gin.H{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"driver":            h.opts.Driver,
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}
	if h.Store == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp["database"] = "✅ Available"
	resp["database_url"] = setFlag(h.opts.DatabaseURL)
	resp["database_name"] = setFlag(h.opts.DatabaseName)

	ctx := c.Request.Context()
	if err := h.Store.Ping(ctx); err != nil {
		resp["database"] = "❌ Error: " + apperrors.Truncate(err.Error(), maxDiagnosticLen)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp["connection_status"] = "Connected"

	names, err := h.Store.CollectionNames(ctx)
	if err != nil {
		resp["database"] = "⚠️ Connected but Error: " + apperrors.Truncate(err.Error(), maxDiagnosticLen)
		c.JSON(http.StatusOK, resp)
		return
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	if names == nil {
		names = []string{}
	}
	resp["collections"] = names
	resp["database"] = "✅ Connected & Working"

	c.JSON(http.StatusOK, resp)
}

func setFlag(v string) string {
	if v != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}
