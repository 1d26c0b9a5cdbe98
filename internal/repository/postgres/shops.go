package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type shopRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShopRepository creates a new shop location repository
func NewShopRepository(db *sql.DB, logger *zap.Logger) *shopRepository {
	return &shopRepository{
		db:     db,
		logger: logger,
	}
}

const shopColumns = `shop_code, name, address, city, latitude, longitude, map_links, is_active, priority`

func scanShop(row rowScanner) (*domain.ShopLocation, error) {
	var s domain.ShopLocation
	var lat, lng sql.NullFloat64
	var mapLinksJSON []byte
	if err := row.Scan(&s.ShopCode, &s.Name, &s.Address, &s.City, &lat, &lng, &mapLinksJSON, &s.IsActive, &s.Priority); err != nil {
		return nil, err
	}
	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lng.Valid {
		s.Longitude = &lng.Float64
	}
	if len(mapLinksJSON) > 0 {
		if err := json.Unmarshal(mapLinksJSON, &s.MapLinks); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (r *shopRepository) ListActive(ctx context.Context) ([]*domain.ShopLocation, error) {
	query := `
		SELECT ` + shopColumns + `
		FROM shop_locations
		WHERE is_active = true
		ORDER BY priority, name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list shops", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	shops := make([]*domain.ShopLocation, 0)
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			r.logger.Error("Failed to scan shop", zap.Error(err))
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *shopRepository) GetByCode(ctx context.Context, code string) (*domain.ShopLocation, error) {
	query := `SELECT ` + shopColumns + ` FROM shop_locations WHERE shop_code = $1 AND is_active = true`
	s, err := scanShop(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shop", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get shop", zap.Error(err), zap.String("shop_code", code))
		return nil, err
	}
	return s, nil
}
