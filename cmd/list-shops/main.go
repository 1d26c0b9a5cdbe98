package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

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

	shops, err := service.NewShopService(postgres.NewRepositories(db, logger), logger).ListShops(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list shops: %v\n", err)
		os.Exit(1)
	}

	if len(shops) == 0 {
		fmt.Println("No active shops.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tCITY\tPRIORITY")
	for _, s := range shops {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.ShopCode, s.Name, s.City, s.Priority)
	}
	w.Flush()
}
