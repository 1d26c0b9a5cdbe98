package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type catalogItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogItemRepository creates a new catalog item repository
func NewCatalogItemRepository(db *sql.DB, logger *zap.Logger) *catalogItemRepository {
	return &catalogItemRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCatalogItem(row rowScanner) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	var categoryID, slug sql.NullString
	var characteristicsJSON, modificationsJSON []byte

	err := row.Scan(
		&item.ID,
		&item.ShopCode,
		&categoryID,
		&item.Name,
		&slug,
		&item.Quantity,
		&item.RetailPrice,
		&characteristicsJSON,
		&modificationsJSON,
		&item.IsActive,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		item.CategoryID = &categoryID.String
	}
	if slug.Valid && slug.String != "" {
		item.Slug = &slug.String
	}
	if len(characteristicsJSON) > 0 {
		if err := json.Unmarshal(characteristicsJSON, &item.Characteristics); err != nil {
			return nil, err
		}
	}
	if len(modificationsJSON) > 0 {
		if err := json.Unmarshal(modificationsJSON, &item.Modifications); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

func (r *catalogItemRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.CatalogItem, 0)
	for rows.Next() {
		item, err := scanCatalogItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *catalogItemRepository) List(ctx context.Context, filter domain.CatalogFilter) ([]*domain.CatalogItem, int, error) {
	countQuery, countArgs := buildCatalogCountQuery(filter)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.logger.Error("Failed to count catalog items", zap.Error(err))
		return nil, 0, err
	}

	query, args := buildCatalogListQuery(filter)
	items, err := r.queryItems(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list catalog items", zap.Error(err))
		return nil, 0, err
	}
	return items, total, nil
}

func (r *catalogItemRepository) ListByName(ctx context.Context, name string, excluded domain.ExclusionSet) ([]*domain.CatalogItem, error) {
	b := newWhereBuilder()
	b.add("ci.name = " + b.arg(name))
	b.exclude(excluded)
	query := "SELECT " + catalogItemColumns + " FROM catalog_items ci " + b.sql() + " ORDER BY ci.shop_code, ci.id"

	items, err := r.queryItems(ctx, query, b.args...)
	if err != nil {
		r.logger.Error("Failed to list catalog items by name", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return items, nil
}

func (r *catalogItemRepository) GetByID(ctx context.Context, id string, shopCode *string) (*domain.CatalogItem, error) {
	query := `
		SELECT ` + catalogItemColumns + `
		FROM catalog_items ci
		WHERE ci.id = $1 AND ci.is_active = true AND ($2::text IS NULL OR ci.shop_code = $2)
		ORDER BY ci.shop_code
		LIMIT 1
	`

	item, err := scanCatalogItem(r.db.QueryRowContext(ctx, query, id, shopCode))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get catalog item by ID", zap.Error(err), zap.String("id", id))
		return nil, err
	}
	return item, nil
}

func (r *catalogItemRepository) findOne(ctx context.Context, cond string, value interface{}, excluded domain.ExclusionSet, orderBy, key string) (*domain.CatalogItem, error) {
	query, args := buildSingleItemQuery(cond, value, excluded, orderBy)
	item, err := scanCatalogItem(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: key}
	}
	if err != nil {
		r.logger.Error("Failed to find catalog item", zap.Error(err), zap.String("key", key))
		return nil, err
	}
	return item, nil
}

func (r *catalogItemRepository) FindBySlugExact(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findOne(ctx, "ci.slug = $1", slug, excluded, "ci.shop_code, ci.id", slug)
}

func (r *catalogItemRepository) FindBySlugPrefix(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findOne(ctx, "ci.slug LIKE $1 || '_%'", repository.EscapeLike(slug), excluded, "ci.slug, ci.shop_code", slug)
}

func (r *catalogItemRepository) FindBySlugFuzzy(ctx context.Context, prefix string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findOne(ctx, "ci.slug ILIKE $1 || '%'", repository.EscapeLike(prefix), excluded, "ci.slug, ci.shop_code", prefix)
}

func (r *catalogItemRepository) FindByNameLike(ctx context.Context, name string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findOne(ctx, "ci.name ILIKE '%' || $1 || '%'", repository.EscapeLike(name), excluded, "ci.quantity > 0 DESC, ci.shop_code, ci.id", name)
}

func (r *catalogItemRepository) ListMissingSlugs(ctx context.Context, afterShop, afterID string, limit int) ([]*domain.CatalogItem, error) {
	query := `
		SELECT ` + catalogItemColumns + `
		FROM catalog_items ci
		WHERE (ci.slug IS NULL OR ci.slug = '')
		  AND (ci.shop_code, ci.id) > ($1, $2)
		ORDER BY ci.shop_code, ci.id
		LIMIT $3
	`
	items, err := r.queryItems(ctx, query, afterShop, afterID, limit)
	if err != nil {
		r.logger.Error("Failed to list catalog items without slug", zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (r *catalogItemRepository) UpdateSlug(ctx context.Context, id, shopCode, slug string) error {
	query := `
		UPDATE catalog_items
		SET slug = $3, updated_at = NOW()
		WHERE id = $1 AND shop_code = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, shopCode, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return &errors.ErrConflict{Message: "slug " + slug + " already used in shop " + shopCode}
		}
		r.logger.Error("Failed to update catalog item slug", zap.Error(err), zap.String("id", id))
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return nil
}
