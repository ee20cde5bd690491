package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"price-verification-service/internal/adapters/primary/http/dto"
)

func (h *Handler) ListGoods(c *gin.Context) {
	goods := h.assessmentSvc.ListGoods()

	items := make([]dto.GoodsResponse, 0, len(goods))
	for _, g := range goods {
		items = append(items, dto.ToGoodsResponse(g))
	}

	c.JSON(http.StatusOK, dto.ListGoodsResponse{
		Items: items,
		Total: len(items),
	})
}

// GetGoods always answers 200: unknown codes carry the fallback description
// and an empty model list.
func (h *Handler) GetGoods(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToGoodsResponse(h.assessmentSvc.DescribeGoods(c.Param("code"))))
}
