package controllers

import (
	"errors"
	"net/http"

	"github.com/SOUNDAR42/medicare-backend/models"
	"github.com/gin-gonic/gin"
)

// respondCoreError maps the core failure classes to HTTP status codes so
// every handler reports which precondition was violated.
func respondCoreError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNoAvailableDoctor):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"Status": "Failed", "error": err.Error()})
}
