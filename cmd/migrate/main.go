package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/postgres"
)

func main() {
	dirFlag := flag.String("dir", "", "Directory holding *.up.sql migrations (default DB_MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	dir := cfg.Database.MigrationsDir
	if *dirFlag != "" {
		dir = *dirFlag
	}

	ctx := context.Background()
	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(ctx, db, dir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed after %d applied: %v\n", applied, err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date.")
		return
	}
	fmt.Printf("Applied %d migration(s).\n", applied)
}
