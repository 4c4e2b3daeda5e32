package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverAPI = "api"
	DriverDB  = "db"
)

// Config is the storefront runtime configuration, read from the environment.
type Config struct {
	Addr string

	// CatalogDriver selects the commerce backend: the remote GraphQL API or
	// the local gorm catalog.
	CatalogDriver string

	CommerceAPIURL     string
	CommerceAPIToken   string
	CommerceAPITimeout time.Duration

	DBDSN string

	CookieSecret []byte
	CookieSecure bool

	SlidesFile  string
	ReviewLimit int
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	// prod uses real env vars
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          envOr("ADDR", ":8080"),
		CatalogDriver: strings.ToLower(envOr("CATALOG_DRIVER", DriverAPI)),

		CommerceAPIURL:   strings.TrimRight(os.Getenv("COMMERCE_API_URL"), "/"),
		CommerceAPIToken: os.Getenv("COMMERCE_API_TOKEN"),

		DBDSN: os.Getenv("DB_DSN"),

		CookieSecret: []byte(os.Getenv("COOKIE_SECRET")),
		SlidesFile:   os.Getenv("SLIDES_FILE"),
	}

	var err error
	if cfg.CommerceAPITimeout, err = time.ParseDuration(envOr("COMMERCE_API_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("COMMERCE_API_TIMEOUT: %w", err)
	}
	if cfg.CookieSecure, err = strconv.ParseBool(envOr("COOKIE_SECURE", "false")); err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
	}
	if cfg.ReviewLimit, err = strconv.Atoi(envOr("REVIEW_LIMIT", "5")); err != nil {
		return Config{}, fmt.Errorf("REVIEW_LIMIT: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.CatalogDriver {
	case DriverAPI:
		if c.CommerceAPIURL == "" {
			errs = append(errs, errors.New("COMMERCE_API_URL is required when CATALOG_DRIVER=api"))
		}
	case DriverDB:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required when CATALOG_DRIVER=db"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_DRIVER: %s", c.CatalogDriver))
	}

	if len(c.CookieSecret) < 32 {
		errs = append(errs, errors.New("COOKIE_SECRET must be at least 32 bytes"))
	}
	if c.ReviewLimit <= 0 {
		errs = append(errs, errors.New("REVIEW_LIMIT must be positive"))
	}

	return errors.Join(errs...)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
