package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bcdanielvega/seofficehours/internal/commerce"
	"github.com/bcdanielvega/seofficehours/internal/commerce/graphql"
	"github.com/bcdanielvega/seofficehours/internal/config"
	"github.com/bcdanielvega/seofficehours/internal/database"
	apphttp "github.com/bcdanielvega/seofficehours/internal/http"
	"github.com/bcdanielvega/seofficehours/internal/modules/cart"
	"github.com/bcdanielvega/seofficehours/internal/modules/catalog"
	"github.com/bcdanielvega/seofficehours/internal/modules/marketing"
	"github.com/bcdanielvega/seofficehours/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if err := run(logger); err != nil {
		logger.Error("server_exit", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, carts, err := backend(ctx, cfg, logger)
	if err != nil {
		return err
	}

	assets, err := storage.FromEnv(ctx)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	slides, err := marketing.LoadSlides(cfg.SlidesFile)
	if err != nil {
		return fmt.Errorf("slides: %w", err)
	}

	r := apphttp.NewRouter(apphttp.Deps{
		Logger:       logger,
		Catalog:      cat,
		Carts:        carts,
		Slides:       marketing.NewService(slides, assets.Storage),
		CookieSecret: cfg.CookieSecret,
		CookieSecure: cfg.CookieSecure,
		ReviewLimit:  cfg.ReviewLimit,
		Uploads:      assets.Local,
		StaticDir:    "./static",
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_start",
			slog.String("addr", cfg.Addr),
			slog.String("catalog_driver", cfg.CatalogDriver),
			slog.String("storage_driver", assets.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// backend wires the catalog and carts for the configured driver.
func backend(ctx context.Context, cfg config.Config, logger *slog.Logger) (commerce.Catalog, commerce.Carts, error) {
	switch cfg.CatalogDriver {
	case config.DriverDB:
		db, err := database.OpenMySQL(cfg.DBDSN, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		repo := catalog.NewRepo(db)
		store := cart.NewStore(db, repo)
		if err := store.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("migrate carts: %w", err)
		}
		return repo, store, nil

	default:
		c := graphql.New(cfg.CommerceAPIURL, cfg.CommerceAPIToken, graphql.WithTimeout(cfg.CommerceAPITimeout))
		return c, c, nil
	}
}
