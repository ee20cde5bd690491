package catalogfile

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ports "price-verification-service/internal/core/ports/output"
)

// document is the on-disk layout:
//
//	goods:
//	  "52094200": FABRICS - WOVEN DENIM
type document struct {
	Goods map[string]string `yaml:"goods"`
}

type fileCatalog struct {
	path string
}

// NewGoodsCatalogSource reads goods descriptions from a YAML file.
func NewGoodsCatalogSource(path string) ports.GoodsCatalogSource {
	return &fileCatalog{path: path}
}

func (c *fileCatalog) Name() string { return "file:" + c.path }

func (c *fileCatalog) LoadDescriptions(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	if doc.Goods == nil {
		return nil, fmt.Errorf("parse %s: no goods section", c.path)
	}
	return doc.Goods, nil
}
