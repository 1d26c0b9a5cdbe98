package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// CatalogItemRepository defines read access to per-shop catalog rows.
// Every lookup only returns active rows and honours the given exclusion set.
type CatalogItemRepository interface {
	// List returns one page of rows matching the filter plus the total match count
	List(ctx context.Context, filter domain.CatalogFilter) ([]*domain.CatalogItem, int, error)
	ListByName(ctx context.Context, name string, excluded domain.ExclusionSet) ([]*domain.CatalogItem, error)
	// GetByID returns the row for id in shopCode, or the first shop carrying id when shopCode is nil
	GetByID(ctx context.Context, id string, shopCode *string) (*domain.CatalogItem, error)

	FindBySlugExact(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
	FindBySlugPrefix(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
	FindBySlugFuzzy(ctx context.Context, prefix string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
	FindByNameLike(ctx context.Context, name string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)

	// ListMissingSlugs pages through rows without a slug in (shop_code, id) order,
	// starting strictly after (afterShop, afterID). Empty strings start from the top.
	ListMissingSlugs(ctx context.Context, afterShop, afterID string, limit int) ([]*domain.CatalogItem, error)
	UpdateSlug(ctx context.Context, id, shopCode, slug string) error
}

// CategoryRepository defines category tree data access methods
type CategoryRepository interface {
	// ListChildren lists active children of parentID, or roots when parentID is nil
	ListChildren(ctx context.Context, shopCode, parentID *string) ([]*domain.CatalogCategory, error)
	CountProducts(ctx context.Context, categoryID, shopCode string, excluded domain.ExclusionSet) (int, error)
	HasChildren(ctx context.Context, categoryID, shopCode string) (bool, error)
	// Tree returns every category reachable from a root, ordered by level, sort order and name,
	// with product counts filled in. Excluded categories and their subtrees are left out.
	Tree(ctx context.Context, shopCode *string, excluded domain.ExclusionSet) ([]*domain.CategoryNode, error)
	GetByID(ctx context.Context, id string, shopCode *string) (*domain.CatalogCategory, error)
	GetByFullPath(ctx context.Context, shopCode, fullPath string) (*domain.CatalogCategory, error)
	// Descendants returns the ids of every category below any of ids, active or not
	Descendants(ctx context.Context, ids []string) ([]string, error)
}

// ExclusionRepository defines catalog exclusion data access methods
type ExclusionRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.CatalogExclusion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CatalogExclusion, error)
	// Create fails with *errors.ErrConflict when an active exclusion for the same type and item exists
	Create(ctx context.Context, exclusion *domain.CatalogExclusion) error
	// Deactivate soft-deletes an active exclusion
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// ShopRepository defines shop location data access methods
type ShopRepository interface {
	ListActive(ctx context.Context) ([]*domain.ShopLocation, error)
	GetByCode(ctx context.Context, code string) (*domain.ShopLocation, error)
}

// PurchaseRepository reads purchase history
type PurchaseRepository interface {
	// TopSold groups purchase lines since the given time by product name and category,
	// ordered by units sold then purchase count, at most limit rows
	TopSold(ctx context.Context, since time.Time, limit int) ([]domain.PurchaseStat, error)
}

// MaxCartQuantity caps a single cart line
const MaxCartQuantity = 999

// CartQuantityError reports a cart line quantity outside 1..MaxCartQuantity
func CartQuantityError() error {
	return &errors.ErrValidation{
		Message: "invalid quantity",
		Fields:  map[string]string{"quantity": "must be between 1 and 999"},
	}
}

// CartRepository defines cart data access methods, always scoped to one user
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error)
	// Upsert inserts the line or adds its quantity to the existing (user, product, shop) line.
	// A merge that would push the line above MaxCartQuantity leaves it unchanged and
	// returns CartQuantityError.
	Upsert(ctx context.Context, item *domain.CartItem) error
	UpdateQuantity(ctx context.Context, userID string, id uuid.UUID, quantity int) (*domain.CartItem, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	Clear(ctx context.Context, userID string) error
}

// FavoriteRepository defines favorites data access methods
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error)
	// Add is idempotent: an existing favorite is returned unchanged
	Add(ctx context.Context, favorite *domain.Favorite) error
	Remove(ctx context.Context, userID, productID string) error
}

// IntegrationClientRepository defines integration client data access methods
type IntegrationClientRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.IntegrationClient, error)
	List(ctx context.Context) ([]*domain.IntegrationClient, error)
	Create(ctx context.Context, client *domain.IntegrationClient) error
}

// Repositories aggregates all repositories
type Repositories struct {
	CatalogItem       CatalogItemRepository
	Category          CategoryRepository
	Exclusion         ExclusionRepository
	Shop              ShopRepository
	Purchase          PurchaseRepository
	Cart              CartRepository
	Favorite          FavoriteRepository
	IntegrationClient IntegrationClientRepository
}
