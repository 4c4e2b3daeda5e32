package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
	// Local is set for the local driver so the router can serve its files.
	Local *Local
}

// FromEnv builds the store named by STORAGE_DRIVER (default local).
func FromEnv(ctx context.Context) (FactoryResult, error) {
	driver := envOr("STORAGE_DRIVER", DriverLocal)

	switch driver {
	case DriverLocal:
		l := NewLocal(envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"), envOr("LOCAL_UPLOAD_URL_PREFIX", "/uploads"))
		return FactoryResult{Driver: DriverLocal, Storage: l, Local: l}, nil

	case DriverS3:
		cfg := S3Config{
			Region:        os.Getenv("S3_REGION"),
			Bucket:        os.Getenv("S3_BUCKET"),
			Prefix:        envOr("S3_PREFIX", "assets"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		}
		if cfg.Region == "" || cfg.Bucket == "" || cfg.PublicBaseURL == "" {
			return FactoryResult{}, errors.New("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		s, err := NewS3(ctx, cfg)
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: DriverS3, Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", driver)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
