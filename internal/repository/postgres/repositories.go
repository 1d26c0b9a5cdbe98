package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		CatalogItem:       NewCatalogItemRepository(db, logger),
		Category:          NewCategoryRepository(db, logger),
		Exclusion:         NewExclusionRepository(db, logger),
		Shop:              NewShopRepository(db, logger),
		Purchase:          NewPurchaseRepository(db, logger),
		Cart:              NewCartRepository(db, logger),
		Favorite:          NewFavoriteRepository(db, logger),
		IntegrationClient: NewIntegrationClientRepository(db, logger),
	}
}
