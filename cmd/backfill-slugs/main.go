package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/postgres"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx := context.Background()
	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	result, ok, err := service.RunSlugBackfill(ctx, repos, logger)
	if !ok {
		fmt.Fprintln(os.Stderr, "A backfill is already running in this process.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backfill failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scanned: %d  Updated: %d  Failed: %d\n", result.Scanned, result.Updated, result.Failed)
	if result.Failed > 0 {
		os.Exit(2)
	}
}
