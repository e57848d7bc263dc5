package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "data/catalog.csv", cfg.Catalog.Path)
	assert.Equal(t, ',', cfg.Catalog.Delimiter)
	assert.Equal(t, "Desks", cfg.Catalog.CategoryNames["DSK"])

	assert.Equal(t, "8080", cfg.Http.Port)
	assert.Equal(t, 3*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, time.Minute, cfg.Cache.SweepInterval)
	assert.Equal(t, 30, cfg.Limiter.MaxCalls)
	assert.Equal(t, time.Minute, cfg.Limiter.Window)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_PATH", "/tmp/products.csv")
	t.Setenv("CATALOG_DELIMITER", ";")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "10s")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "/tmp/products.csv", cfg.Catalog.Path)
	assert.Equal(t, ';', cfg.Catalog.Delimiter)
	assert.Equal(t, "9090", cfg.Http.Port)
	assert.Equal(t, 90*time.Second, cfg.Cache.DefaultTTL)
	assert.Equal(t, 5, cfg.Limiter.MaxCalls)
	assert.Equal(t, 10*time.Second, cfg.Limiter.Window)
}

func TestLoad_MultiCharDelimiterRejected(t *testing.T) {
	t.Setenv("CATALOG_DELIMITER", ",,")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestLoad_InvalidDurationRejected(t *testing.T) {
	t.Setenv("CACHE_TTL", "three minutes")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestParseCategoryTable(t *testing.T) {
	t.Run("empty keeps defaults", func(t *testing.T) {
		names, err := parseCategoryTable("")
		require.NoError(t, err)
		assert.Equal(t, "Chairs", names["CHR"])
		assert.Equal(t, "Accessories", names["ACC"])
	})

	t.Run("pairs extend and override defaults", func(t *testing.T) {
		names, err := parseCategoryTable("MAT:Mats, dsk : Standing Desks")
		require.NoError(t, err)
		assert.Equal(t, "Mats", names["MAT"])
		assert.Equal(t, "Standing Desks", names["DSK"], "prefix is uppercased and overrides the default")
		assert.Equal(t, "Chairs", names["CHR"], "untouched defaults survive")
	})

	t.Run("malformed pair rejected", func(t *testing.T) {
		for _, raw := range []string{"MAT", "MAT:", ":Mats"} {
			_, err := parseCategoryTable(raw)
			assert.Error(t, err, "raw=%q", raw)
		}
	})
}
