package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-verification-service/internal/config"
	"price-verification-service/internal/core/domain"
)

const denimPipeline = `{
	"preprocessor": {"passthrough": ["YEAR"]},
	"model": {"oblivious_trees": [{"splits": [], "leaf_values": [3.2]}]}
}`

func TestInitLogger(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	InitLogger(config.LoggerConfig{Level: "debug", Format: "json"})
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	InitLogger(config.LoggerConfig{Level: "nonsense", Format: "text"})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
}

func TestBuildRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "52094200.pipeline"), []byte(denimPipeline), 0o644))

	registry, err := BuildRegistry(&config.ArtifactsConfig{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Size())

	entry, ok := registry.Lookup("52094200")
	require.True(t, ok)
	assert.Equal(t, domain.ModelPathPipeline, entry.Path)
}

func TestBuildRegistry_Empty(t *testing.T) {
	registry, err := BuildRegistry(&config.ArtifactsConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, registry.Size())
}

func TestBuildRegistry_InvalidArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "52094200.cbm"), []byte("{"), 0o644))

	_, err := BuildRegistry(&config.ArtifactsConfig{Dir: dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArtifactLoad))
}

func TestCatalogSource(t *testing.T) {
	ctx := context.Background()

	src, cleanup, err := CatalogSource(ctx, &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogSourceStatic}})
	require.NoError(t, err)
	assert.Nil(t, src)
	cleanup()

	src, cleanup, err = CatalogSource(ctx, &config.Config{Catalog: config.CatalogConfig{Source: config.CatalogSourceFile, File: "goods.yaml"}})
	require.NoError(t, err)
	assert.Equal(t, "file:goods.yaml", src.Name())
	cleanup()

	_, _, err = CatalogSource(ctx, &config.Config{Catalog: config.CatalogConfig{Source: "etcd"}})
	assert.Error(t, err)
}

func TestLoadCatalog_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goods.yaml")
	require.NoError(t, os.WriteFile(path, []byte("goods:\n  \"52094200\": DENIM 14OZ\n  \"11111111\": NEW GOODS\n"), 0o644))

	catalog := LoadCatalog(context.Background(), &config.Config{
		Catalog: config.CatalogConfig{Source: config.CatalogSourceFile, File: path, LoadTimeout: time.Second},
	})

	assert.Equal(t, "DENIM 14OZ", catalog.Describe("52094200"))
	assert.Equal(t, "NEW GOODS", catalog.Describe("11111111"))
	assert.Equal(t, "ACCESSORIES - BADGE LABEL", catalog.Describe("58071000"))
}

func TestLoadCatalog_FallsBackToBuiltIn(t *testing.T) {
	catalog := LoadCatalog(context.Background(), &config.Config{
		Catalog: config.CatalogConfig{Source: config.CatalogSourceFile, File: filepath.Join(t.TempDir(), "missing.yaml")},
	})

	assert.Equal(t, "FABRICS - WOVEN DENIM", catalog.Describe("52094200"))
	assert.Equal(t, domain.NoDescription, catalog.Describe("11111111"))
}
