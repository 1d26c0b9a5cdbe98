package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type favoriteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFavoriteRepository creates a new favorites repository
func NewFavoriteRepository(db *sql.DB, logger *zap.Logger) *favoriteRepository {
	return &favoriteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	query := `
		SELECT id, user_id, product_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list favorites", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	favorites := make([]*domain.Favorite, 0)
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt); err != nil {
			r.logger.Error("Failed to scan favorite", zap.Error(err))
			return nil, err
		}
		favorites = append(favorites, &f)
	}
	return favorites, rows.Err()
}

func (r *favoriteRepository) Add(ctx context.Context, f *domain.Favorite) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()

	// the no-op update makes RETURNING yield the existing row on conflict
	query := `
		INSERT INTO favorites (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, product_id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, f.ID, f.UserID, f.ProductID, f.CreatedAt).
		Scan(&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to add favorite", zap.Error(err), zap.String("user_id", f.UserID))
		return err
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error("Failed to remove favorite", zap.Error(err), zap.String("user_id", userID))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "favorite", ID: productID}
	}
	return nil
}
