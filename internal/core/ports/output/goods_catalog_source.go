package ports

import "context"

// GoodsCatalogSource supplies goods descriptions from outside the binary.
// Sources are read once at startup.
type GoodsCatalogSource interface {
	// Name identifies the source in logs and errors
	Name() string

	// LoadDescriptions returns goods code -> description
	LoadDescriptions(ctx context.Context) (map[string]string, error)
}
