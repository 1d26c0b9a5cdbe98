package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type integrationClientRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIntegrationClientRepository creates a new integration client repository
func NewIntegrationClientRepository(db *sql.DB, logger *zap.Logger) *integrationClientRepository {
	return &integrationClientRepository{
		db:     db,
		logger: logger,
	}
}

const integrationClientColumns = `id, name, api_key_hash, api_key_lookup, is_active, created_at, updated_at`

func scanIntegrationClient(row rowScanner) (*domain.IntegrationClient, error) {
	var c domain.IntegrationClient
	if err := row.Scan(&c.ID, &c.Name, &c.APIKeyHash, &c.APIKeyLookup, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByAPIKey finds the active client by the SHA256 lookup column, then verifies the key with bcrypt
func (r *integrationClientRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.IntegrationClient, error) {
	lookupKey := repository.APIKeyLookup(apiKey)
	query := `
		SELECT ` + integrationClientColumns + `
		FROM integration_clients
		WHERE is_active = true AND api_key_lookup = $1
	`
	client, err := scanIntegrationClient(r.db.QueryRowContext(ctx, query, lookupKey))
	if err == sql.ErrNoRows {
		r.logger.Info("API key did not match any integration client",
			zap.Int("api_key_len", len(apiKey)),
			zap.String("lookup_key_prefix", safePrefix(lookupKey, 8)))
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	if err != nil {
		r.logger.Error("Failed to query integration client", zap.Error(err))
		return nil, err
	}

	if !repository.VerifyAPIKey(client.APIKeyHash, apiKey) {
		r.logger.Debug("API key lookup found client but bcrypt verification failed", zap.String("client_id", client.ID.String()))
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	return client, nil
}

func safePrefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (r *integrationClientRepository) List(ctx context.Context) ([]*domain.IntegrationClient, error) {
	query := `SELECT ` + integrationClientColumns + ` FROM integration_clients ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list integration clients", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.IntegrationClient
	for rows.Next() {
		c, err := scanIntegrationClient(rows)
		if err != nil {
			r.logger.Error("Failed to scan integration client", zap.Error(err))
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *integrationClientRepository) Create(ctx context.Context, client *domain.IntegrationClient) error {
	query := `
		INSERT INTO integration_clients (` + integrationClientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	client.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.APIKeyHash,
		client.APIKeyLookup,
		client.IsActive,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &errors.ErrConflict{Message: "integration client with this API key already exists"}
		}
		r.logger.Error("Failed to create integration client", zap.Error(err))
		return err
	}
	return nil
}
