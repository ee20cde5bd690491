package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"price-verification-service/internal/adapters/primary/http/dto"
	"price-verification-service/internal/core/domain"
)

func (h *Handler) CreateAssessment(c *gin.Context) {
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.assessmentSvc.Assess(c.Request.Context(), req.ToDomain())
	if err != nil {
		entry := log.WithError(err).WithFields(log.Fields{
			"goods_code": req.GoodsCode,
			"request_id": c.GetString("request_id"),
		})
		switch {
		case errors.Is(err, domain.ErrInference):
			entry.Error("price assessment failed")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			entry.Warn("price assessment abandoned")
		}
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAssessmentResponse(result))
}
