package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/vrikshavalli/storefront/internal/config"
	"github.com/vrikshavalli/storefront/internal/domain"
	pgrepo "github.com/vrikshavalli/storefront/internal/repository/postgres"
	"github.com/vrikshavalli/storefront/internal/seed"
	"github.com/vrikshavalli/storefront/migrations"
	"github.com/vrikshavalli/storefront/pkg/database"
	"github.com/vrikshavalli/storefront/pkg/logger"
)

const (
	seedFlag           = "seed"
	categoryFlag       = "category"
	categoriesOnlyFlag = "categories-only"
	migrateFlag        = "migrate"
	dryRunFlag         = "dry-run"
	timeoutFlag        = "timeout"
)

func main() {
	seedValue := pflag.Uint64P(seedFlag, "s", 1, "generator seed; the same seed yields the same products")
	categories := pflag.StringSliceP(categoryFlag, "c", nil, "categories to seed (repeatable); all when omitted")
	categoriesOnly := pflag.Bool(categoriesOnlyFlag, false, "upsert categories without products")
	migrate := pflag.BoolP(migrateFlag, "m", true, "apply pending migrations first")
	dryRun := pflag.Bool(dryRunFlag, false, "log what would be written without touching the database")
	timeout := pflag.Duration(timeoutFlag, 2*time.Minute, "overall deadline")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("storefront-seed", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	if err := run(ctx, cfg, log, *migrate, seed.Options{
		Seed:           *seedValue,
		Categories:     toSlugs(*categories),
		CategoriesOnly: *categoriesOnly,
		DryRun:         *dryRun,
	}); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, migrate bool, opts seed.Options) error {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrate && !opts.DryRun {
		if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
			return err
		}
	}

	seeder := seed.New(pgrepo.NewCategoryRepository(pool), pgrepo.NewProductRepository(pool), log)
	res, err := seeder.Run(ctx, opts)
	if err != nil {
		return err
	}

	log.Info("seed complete",
		slog.Int("categories", res.Categories),
		slog.Int("inserted", res.Inserted),
		slog.Int("skipped", res.Skipped),
		slog.Bool("dry_run", opts.DryRun),
	)
	return nil
}

func toSlugs(raw []string) []domain.CategorySlug {
	out := make([]domain.CategorySlug, 0, len(raw))
	for _, s := range raw {
		out = append(out, domain.CategorySlug(s))
	}
	return out
}
