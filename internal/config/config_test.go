package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ADDR", "CATALOG_DRIVER", "COMMERCE_API_URL", "COMMERCE_API_TOKEN",
		"COMMERCE_API_TIMEOUT", "DB_DSN", "COOKIE_SECRET",
		"COOKIE_SECURE", "SLIDES_FILE", "REVIEW_LIMIT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("COOKIE_SECRET", testSecret)
}

func TestFromEnv_defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COMMERCE_API_URL", "https://store.example.com/")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DriverAPI, cfg.CatalogDriver)
	assert.Equal(t, "https://store.example.com", cfg.CommerceAPIURL)
	assert.Equal(t, 10*time.Second, cfg.CommerceAPITimeout)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 5, cfg.ReviewLimit)
}

func TestFromEnv_dbDriver(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CATALOG_DRIVER", "DB")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/shop")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverDB, cfg.CatalogDriver)
	assert.True(t, cfg.CookieSecure)
}

func TestFromEnv_reportsAllProblems(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COOKIE_SECRET", "short")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "COMMERCE_API_URL"))
	assert.True(t, strings.Contains(err.Error(), "COOKIE_SECRET"))
}

func TestFromEnv_badDuration(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("COMMERCE_API_URL", "https://store.example.com")
	t.Setenv("COMMERCE_API_TIMEOUT", "soon")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "COMMERCE_API_TIMEOUT")
}

func TestValidate_unknownDriver(t *testing.T) {
	cfg := Config{CatalogDriver: "csv", CookieSecret: []byte(testSecret), ReviewLimit: 1}
	assert.ErrorContains(t, cfg.Validate(), "unknown CATALOG_DRIVER")
}
