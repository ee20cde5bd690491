package services

import (
	"fmt"

	"price-verification-service/internal/core/domain"
)

// CaveatDeriver turns a point estimate into the expected price range and
// flags categories known to be under-trained.
type CaveatDeriver struct {
	catalog *GoodsCatalogService
}

func NewCaveatDeriver(catalog *GoodsCatalogService) *CaveatDeriver {
	return &CaveatDeriver{catalog: catalog}
}

// Derive applies the fixed ±15% band; the estimate itself is passed through
// untouched.
func (d *CaveatDeriver) Derive(point float64, code string) domain.PredictionResult {
	desc := d.catalog.Describe(code)
	result := domain.PredictionResult{
		GoodsCode:        code,
		GoodsDescription: desc,
		Point:            point,
		Lower:            point * domain.RangeLowerFactor,
		Upper:            point * domain.RangeUpperFactor,
	}

	if domain.IsDataPoor(code) {
		result.Caveat = &domain.Caveat{
			Code:        code,
			Description: desc,
			Message:     fmt.Sprintf("Goods '%s: %s' did not have sufficient data for training.", code, desc),
		}
	}
	return result
}
