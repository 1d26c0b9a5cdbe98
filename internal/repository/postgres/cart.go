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

type cartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

const cartColumns = `id, user_id, product_id, shop_code, quantity, created_at, updated_at`

func scanCartItem(row rowScanner) (*domain.CartItem, error) {
	var c domain.CartItem
	if err := row.Scan(&c.ID, &c.UserID, &c.ProductID, &c.ShopCode, &c.Quantity, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list cart items", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		c, err := scanCartItem(rows)
		if err != nil {
			r.logger.Error("Failed to scan cart item", zap.Error(err))
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *cartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id, product_id, shop_code)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		WHERE cart_items.quantity + EXCLUDED.quantity <= $7
		RETURNING ` + cartColumns

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()

	saved, err := scanCartItem(r.db.QueryRowContext(ctx, query,
		item.ID, item.UserID, item.ProductID, item.ShopCode, item.Quantity, now, repository.MaxCartQuantity))
	if err == sql.ErrNoRows {
		// conflict row kept because the merged quantity is over the cap
		return repository.CartQuantityError()
	}
	if err != nil {
		r.logger.Error("Failed to upsert cart item", zap.Error(err), zap.String("user_id", item.UserID))
		return err
	}
	*item = *saved
	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID string, id uuid.UUID, quantity int) (*domain.CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cartColumns
	item, err := scanCartItem(r.db.QueryRowContext(ctx, query, id, userID, quantity))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to update cart item", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return item, nil
}

func (r *cartRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete cart item", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID))
		return err
	}
	return nil
}
