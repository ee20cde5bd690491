package handlers

import (
	"context"
	"errors"
	"net/http"

	"price-verification-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is the non-standard status nginx logs when the
// client goes away before the response is written.
const statusClientClosedRequest = 499

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Request context done before dispatch
	case errors.Is(err, context.Canceled):
		c.JSON(statusClientClosedRequest, gin.H{"error": "request canceled"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})

	// Not found errors
	case errors.Is(err, domain.ErrUnknownGoodsCode):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
