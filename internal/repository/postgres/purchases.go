package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
)

type purchaseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPurchaseRepository creates a new purchase history repository
func NewPurchaseRepository(db *sql.DB, logger *zap.Logger) *purchaseRepository {
	return &purchaseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *purchaseRepository) TopSold(ctx context.Context, since time.Time, limit int) ([]domain.PurchaseStat, error) {
	query := `
		SELECT pi.product_name, pi.category_id,
			SUM(pi.quantity) AS total_quantity,
			COUNT(DISTINCT p.id) AS purchase_count
		FROM purchase_items pi
		JOIN purchases p ON p.id = pi.purchase_id
		WHERE p.purchased_at >= $1
		GROUP BY pi.product_name, pi.category_id
		ORDER BY total_quantity DESC, purchase_count DESC, pi.product_name
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		r.logger.Error("Failed to query best sellers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	stats := make([]domain.PurchaseStat, 0)
	for rows.Next() {
		var s domain.PurchaseStat
		var categoryID sql.NullString
		if err := rows.Scan(&s.ProductName, &categoryID, &s.TotalQuantity, &s.PurchaseCount); err != nil {
			r.logger.Error("Failed to scan best seller", zap.Error(err))
			return nil, err
		}
		if categoryID.Valid {
			s.CategoryID = &categoryID.String
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
