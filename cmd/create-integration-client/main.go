package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/postgres"
)

func main() {
	nameFlag := flag.String("name", "", "Client display name, e.g. 1c-sync")
	apiKeyFlag := flag.String("api-key", "", "API key to store (generated when empty; save it, it cannot be retrieved later)")
	flag.Parse()

	name := strings.TrimSpace(*nameFlag)
	if name == "" && flag.NArg() >= 1 {
		name = strings.TrimSpace(flag.Arg(0))
	}
	if name == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/create-integration-client --name \"1c-sync\" [--api-key \"your-api-key\"]")
		os.Exit(1)
	}

	// the server trims the presented key, so the stored hash must match the trimmed form
	apiKey := strings.TrimSpace(*apiKeyFlag)
	if apiKey == "" {
		buf := make([]byte, 24)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate API key: %v\n", err)
			os.Exit(1)
		}
		apiKey = hex.EncodeToString(buf)
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

	hash, err := repository.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)
	client := &domain.IntegrationClient{
		Name:         name,
		APIKeyHash:   hash,
		APIKeyLookup: repository.APIKeyLookup(apiKey),
		IsActive:     true,
	}
	if err := repos.IntegrationClient.Create(ctx, client); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create integration client: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Integration client created.\n\n")
	fmt.Printf("Client ID: %s\n", client.ID.String())
	fmt.Printf("Name:      %s\n", client.Name)
	fmt.Printf("API Key:   %s\n", apiKey)
	fmt.Printf("\nSave this API key now; only its hash is stored.\n")
	fmt.Printf("\nNotify the API after each catalog sync:\n")
	fmt.Printf("  curl -X POST -H \"X-API-Key: %s\" http://localhost:%s/integrations/catalog-sync\n", apiKey, cfg.Port)
}
