package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/postgres"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

func main() {
	typeFlag := flag.String("type", string(domain.ExclusionTypeProduct), "Exclusion type: product or category")
	itemFlag := flag.String("item", "", "Catalog item or category id to hide")
	reasonFlag := flag.String("reason", "", "Optional reason recorded with the exclusion")
	byFlag := flag.String("by", "cli", "Recorded as created_by")
	flag.Parse()

	if strings.TrimSpace(*itemFlag) == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/add-exclusion --type product --item <id> [--reason \"...\"]")
		os.Exit(1)
	}

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

	exclusionSvc := service.NewExclusionService(postgres.NewRepositories(db, logger), logger)

	input := service.AddExclusionInput{
		ExclusionType: domain.ExclusionType(strings.ToLower(strings.TrimSpace(*typeFlag))),
		ItemID:        *itemFlag,
		CreatedBy:     byFlag,
	}
	if r := strings.TrimSpace(*reasonFlag); r != "" {
		input.Reason = &r
	}

	exclusion, err := exclusionSvc.AddExclusion(ctx, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to add exclusion: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exclusion %s added: %s %s is hidden from the catalog.\n",
		exclusion.ID.String(), exclusion.ExclusionType, exclusion.ItemID)
}
