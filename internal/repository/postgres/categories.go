package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type categoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

const categoryColumns = `c.id, c.shop_code, c.name, c.parent_id, c.level, c.full_path, c.sort_order, c.is_active`

func scanCategory(row rowScanner, extra ...interface{}) (*domain.CatalogCategory, error) {
	var c domain.CatalogCategory
	var parentID sql.NullString
	dest := append([]interface{}{
		&c.ID, &c.ShopCode, &c.Name, &parentID, &c.Level, &c.FullPath, &c.SortOrder, &c.IsActive,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.String
	}
	return &c, nil
}

func (r *categoryRepository) ListChildren(ctx context.Context, shopCode, parentID *string) ([]*domain.CatalogCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM catalog_categories c
		WHERE c.is_active = true
		  AND ($1::text IS NULL OR c.shop_code = $1)
		  AND (($2::text IS NULL AND c.parent_id IS NULL) OR c.parent_id = $2)
		ORDER BY c.sort_order, c.name, c.shop_code
	`
	rows, err := r.db.QueryContext(ctx, query, shopCode, parentID)
	if err != nil {
		r.logger.Error("Failed to list categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.CatalogCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			r.logger.Error("Failed to scan category", zap.Error(err))
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) CountProducts(ctx context.Context, categoryID, shopCode string, excluded domain.ExclusionSet) (int, error) {
	b := newWhereBuilder()
	b.add("ci.category_id = " + b.arg(categoryID))
	b.add("ci.shop_code = " + b.arg(shopCode))
	b.exclude(excluded)

	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_items ci "+b.sql(), b.args...).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count category products", zap.Error(err), zap.String("category_id", categoryID))
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) HasChildren(ctx context.Context, categoryID, shopCode string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM catalog_categories
			WHERE parent_id = $1 AND shop_code = $2 AND is_active = true
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, categoryID, shopCode).Scan(&exists); err != nil {
		r.logger.Error("Failed to check subcategories", zap.Error(err), zap.String("category_id", categoryID))
		return false, err
	}
	return exists, nil
}

func (r *categoryRepository) Tree(ctx context.Context, shopCode *string, excluded domain.ExclusionSet) ([]*domain.CategoryNode, error) {
	query := `
		WITH RECURSIVE tree AS (
			SELECT ` + categoryColumns + `
			FROM catalog_categories c
			WHERE c.parent_id IS NULL
			  AND c.is_active = true
			  AND ($1::text IS NULL OR c.shop_code = $1)
			  AND c.id <> ALL($3)
			UNION ALL
			SELECT ` + categoryColumns + `
			FROM catalog_categories c
			JOIN tree t ON c.parent_id = t.id AND c.shop_code = t.shop_code
			WHERE c.is_active = true
			  AND c.id <> ALL($3)
		)
		SELECT c.id, c.shop_code, c.name, c.parent_id, c.level, c.full_path, c.sort_order, c.is_active,
			(
				SELECT COUNT(*) FROM catalog_items ci
				WHERE ci.category_id = c.id AND ci.shop_code = c.shop_code
				  AND ci.is_active = true AND ci.id <> ALL($2)
			) AS product_count
		FROM tree c
		ORDER BY c.level, c.sort_order, c.name
	`
	rows, err := r.db.QueryContext(ctx, query, shopCode, idArray(excluded.ProductIDs), idArray(excluded.CategoryIDs))
	if err != nil {
		r.logger.Error("Failed to load category tree", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	nodes := make([]*domain.CategoryNode, 0)
	for rows.Next() {
		var count int
		c, err := scanCategory(rows, &count)
		if err != nil {
			r.logger.Error("Failed to scan category tree node", zap.Error(err))
			return nil, err
		}
		nodes = append(nodes, &domain.CategoryNode{CatalogCategory: *c, ProductCount: count})
	}
	return nodes, rows.Err()
}

func (r *categoryRepository) Descendants(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	// UNION drops repeated rows, so a parent_id cycle terminates
	query := `
		WITH RECURSIVE sub AS (
			SELECT c.id, c.shop_code
			FROM catalog_categories c
			WHERE c.parent_id = ANY($1)
			UNION
			SELECT c.id, c.shop_code
			FROM catalog_categories c
			JOIN sub s ON c.parent_id = s.id AND c.shop_code = s.shop_code
		)
		SELECT DISTINCT id FROM sub ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, idArray(ids))
	if err != nil {
		r.logger.Error("Failed to load category descendants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id string, shopCode *string) (*domain.CatalogCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM catalog_categories c
		WHERE c.id = $1 AND c.is_active = true AND ($2::text IS NULL OR c.shop_code = $2)
		ORDER BY c.shop_code
		LIMIT 1
	`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id, shopCode))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "category", ID: id}
	}
	if err != nil {
		r.logger.Error("Failed to get category by ID", zap.Error(err), zap.String("id", id))
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) GetByFullPath(ctx context.Context, shopCode, fullPath string) (*domain.CatalogCategory, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM catalog_categories c
		WHERE c.shop_code = $1 AND c.full_path = $2 AND c.is_active = true
		LIMIT 1
	`
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, shopCode, fullPath))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "category", ID: fullPath}
	}
	if err != nil {
		r.logger.Error("Failed to get category by path", zap.Error(err), zap.String("full_path", fullPath))
		return nil, err
	}
	return c, nil
}
