package handlers

import (
	"price-verification-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	assessmentSvc *services.PriceAssessmentService
}

func New(assessmentSvc *services.PriceAssessmentService) *Handler {
	return &Handler{assessmentSvc: assessmentSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Price Assessments
	r.POST("/assessments", h.CreateAssessment)

	// Goods
	r.GET("/goods", h.ListGoods)
	r.GET("/goods/:code", h.GetGoods)
}
