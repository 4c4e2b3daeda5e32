package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/bcdanielvega/seofficehours/internal/database"
	"github.com/bcdanielvega/seofficehours/internal/modules/cart"
	"github.com/bcdanielvega/seofficehours/internal/modules/catalog"
	"github.com/bcdanielvega/seofficehours/internal/storage"
)

var (
	dsn    string
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Manage the local catalog database and storefront assets",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DB_DSN"), "MySQL DSN (default $DB_DSN)")

	root.AddCommand(migrateCmd(), seedCmd(), putAssetCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("--dsn or DB_DSN is required")
	}
	return database.OpenMySQL(dsn, logger)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog and cart tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := catalog.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrate catalog: %w", err)
			}
			if err := cart.NewStore(db, catalog.NewRepo(db)).Migrate(ctx); err != nil {
				return fmt.Errorf("migrate carts: %w", err)
			}
			fmt.Println("Tables are up to date.")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			fx, err := catalog.DecodeFixture(f)
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := catalog.Migrate(ctx, db); err != nil {
				return fmt.Errorf("migrate catalog: %w", err)
			}
			res, err := catalog.Seed(ctx, db, fx)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d categories and %d products.\n", res.Categories, res.Products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "internal/modules/catalog/testdata/catalog.yaml", "fixture path")
	return cmd
}

func putAssetCmd() *cobra.Command {
	var key, file string
	cmd := &cobra.Command{
		Use:     "put-asset",
		Short:   "Upload a file to the configured asset store",
		Example: "  catalogctl put-asset --key slideshow/1.png --file ./slides/1.png",
		RunE: func(cmd *cobra.Command, args []string) error {
			return putAsset(cmd.Context(), key, file)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "object key, for example slideshow/1.png")
	cmd.Flags().StringVar(&file, "file", "", "local file to upload")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func putAsset(ctx context.Context, key, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	res, err := storage.FromEnv(ctx)
	if err != nil {
		return err
	}
	out, err := res.Storage.Put(ctx, f, storage.PutInput{
		Key:         key,
		Filename:    filepath.Base(file),
		ContentType: mime.TypeByExtension(filepath.Ext(file)),
		Size:        st.Size(),
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", out.Key, out.URL)
	return nil
}
