// Package bootstrap assembles the price verification core from configuration.
// It is shared by the HTTP server and the pricecheck CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"price-verification-service/internal/adapters/secondary/artifacts"
	"price-verification-service/internal/adapters/secondary/catalogfile"
	"price-verification-service/internal/adapters/secondary/k8s"
	"price-verification-service/internal/adapters/secondary/postgres"
	"price-verification-service/internal/config"
	ports "price-verification-service/internal/core/ports/output"
	"price-verification-service/internal/core/services"
)

func InitLogger(cfg config.LoggerConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// BuildRegistry loads every artifact under cfg.Dir into an immutable registry.
func BuildRegistry(cfg *config.ArtifactsConfig) (*services.ModelRegistry, error) {
	set, err := artifacts.Load(cfg)
	if err != nil {
		return nil, err
	}

	registry := services.NewModelRegistry(set)
	if registry.Size() == 0 {
		log.WithField("dir", cfg.Dir).Warn("no price models loaded, every assessment will fail with unknown goods code")
	}
	return registry, nil
}

// CatalogSource opens the configured goods catalog source. The returned
// cleanup must be called once descriptions have been read. A nil source
// means the built-in table is used as is.
func CatalogSource(ctx context.Context, cfg *config.Config) (ports.GoodsCatalogSource, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.CatalogSourceStatic, "":
		return nil, noop, nil

	case config.CatalogSourceFile:
		return catalogfile.NewGoodsCatalogSource(cfg.Catalog.File), noop, nil

	case config.CatalogSourcePostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return nil, noop, fmt.Errorf("parse db config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, noop, fmt.Errorf("create db pool: %w", err)
		}
		return postgres.NewGoodsCatalogRepository(pool), pool.Close, nil

	case config.CatalogSourceConfigMap:
		src, err := k8s.NewConfigMapCatalogSource(&cfg.Kubernetes)
		if err != nil {
			return nil, noop, err
		}
		return src, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// LoadCatalog builds the goods catalog. Any failure to reach the configured
// source is logged and the built-in table is used instead.
func LoadCatalog(ctx context.Context, cfg *config.Config) *services.GoodsCatalogService {
	if cfg.Catalog.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
		defer cancel()
	}

	src, cleanup, err := CatalogSource(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("source", cfg.Catalog.Source).Warn("goods catalog source unavailable, using built-in descriptions")
		return services.NewGoodsCatalogService(nil)
	}
	defer cleanup()

	catalog, err := services.LoadGoodsCatalog(ctx, src)
	if err != nil {
		log.WithError(err).Warn("goods catalog load failed, using built-in descriptions")
	}
	log.WithFields(log.Fields{
		"source": cfg.Catalog.Source,
		"codes":  len(catalog.Codes()),
	}).Info("goods catalog loaded")
	return catalog
}
