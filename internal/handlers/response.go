package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-portfolio-api/internal/apperrors"
)

const maxDetailLen = 200

// respondError maps the error taxonomy onto status codes: validation
// failures are 422 with field detail, everything else is an opaque 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verr.Fields})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": apperrors.Truncate(err.Error(), maxDetailLen)})
}
