package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Artifacts  ArtifactsConfig
	Catalog    CatalogConfig
	Database   DatabaseConfig
	Kubernetes KubernetesConfig
	RateLimit  RateLimitConfig
	Assessment AssessmentConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ArtifactsConfig struct {
	Dir         string
	RawExt      string
	PipelineExt string
	SkipInvalid bool
}

// Catalog source kinds
const (
	CatalogSourceStatic    = "static"
	CatalogSourceFile      = "file"
	CatalogSourcePostgres  = "postgres"
	CatalogSourceConfigMap = "configmap"
)

type CatalogConfig struct {
	Source      string
	File        string
	LoadTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type KubernetesConfig struct {
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	ConfigMapName  string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type AssessmentConfig struct {
	MinTradeYear int
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("ARTIFACTS_DIR", "price_models")
	v.SetDefault("ARTIFACTS_RAW_EXT", ".cbm")
	v.SetDefault("ARTIFACTS_PIPELINE_EXT", ".pipeline")
	v.SetDefault("ARTIFACTS_SKIP_INVALID", false)
	v.SetDefault("CATALOG_SOURCE", CatalogSourceStatic)
	v.SetDefault("CATALOG_FILE", "goods_catalog.yaml")
	v.SetDefault("CATALOG_LOAD_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "price_verification")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 4)
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("K8S_IN_CLUSTER", false)
	v.SetDefault("K8S_KUBECONFIG", "")
	v.SetDefault("K8S_NAMESPACE", "price-verification")
	v.SetDefault("K8S_CATALOG_CONFIGMAP", "goods-catalog")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("MIN_TRADE_YEAR", 2022)

	// Env
	v.AutomaticEnv()

	catalogTimeout, err := time.ParseDuration(v.GetString("CATALOG_LOAD_TIMEOUT"))
	if err != nil {
		catalogTimeout = 10 * time.Second
	}
	connLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		connLifetime = 5 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Artifacts: ArtifactsConfig{
			Dir:         v.GetString("ARTIFACTS_DIR"),
			RawExt:      v.GetString("ARTIFACTS_RAW_EXT"),
			PipelineExt: v.GetString("ARTIFACTS_PIPELINE_EXT"),
			SkipInvalid: v.GetBool("ARTIFACTS_SKIP_INVALID"),
		},
		Catalog: CatalogConfig{
			Source:      v.GetString("CATALOG_SOURCE"),
			File:        v.GetString("CATALOG_FILE"),
			LoadTimeout: catalogTimeout,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connLifetime,
		},
		Kubernetes: KubernetesConfig{
			InCluster:      v.GetBool("K8S_IN_CLUSTER"),
			KubeConfigPath: v.GetString("K8S_KUBECONFIG"),
			Namespace:      v.GetString("K8S_NAMESPACE"),
			ConfigMapName:  v.GetString("K8S_CATALOG_CONFIGMAP"),
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
		Assessment: AssessmentConfig{
			MinTradeYear: v.GetInt("MIN_TRADE_YEAR"),
		},
	}

	switch cfg.Catalog.Source {
	case CatalogSourceStatic, CatalogSourceFile, CatalogSourcePostgres, CatalogSourceConfigMap:
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.Catalog.Source)
	}

	return cfg, nil
}
