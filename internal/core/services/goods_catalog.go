package services

import (
	"context"
	"sort"

	"price-verification-service/internal/core/domain"
	ports "price-verification-service/internal/core/ports/output"
)

// GoodsCatalogService resolves goods codes to descriptions. It starts from
// the built-in table and may be overlaid by an external source once at
// startup; it is read-only afterwards.
type GoodsCatalogService struct {
	descriptions map[string]string
}

func NewGoodsCatalogService(overlay map[string]string) *GoodsCatalogService {
	descriptions := domain.GoodsDescriptions()
	for code, desc := range overlay {
		if code != "" && desc != "" {
			descriptions[code] = desc
		}
	}
	return &GoodsCatalogService{descriptions: descriptions}
}

// LoadGoodsCatalog overlays the descriptions read from source. On a source
// failure it still returns the built-in catalog, alongside a
// *domain.CatalogSourceError for the caller to report.
func LoadGoodsCatalog(ctx context.Context, source ports.GoodsCatalogSource) (*GoodsCatalogService, error) {
	if source == nil {
		return NewGoodsCatalogService(nil), nil
	}
	overlay, err := source.LoadDescriptions(ctx)
	if err != nil {
		return NewGoodsCatalogService(nil), &domain.CatalogSourceError{Source: source.Name(), Err: err}
	}
	return NewGoodsCatalogService(overlay), nil
}

// Describe returns the description for code, or domain.NoDescription.
func (c *GoodsCatalogService) Describe(code string) string {
	if desc, ok := c.descriptions[code]; ok {
		return desc
	}
	return domain.NoDescription
}

func (c *GoodsCatalogService) Codes() []string {
	codes := make([]string, 0, len(c.descriptions))
	for code := range c.descriptions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
