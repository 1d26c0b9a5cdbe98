package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// FavoriteService manages a user's bookmarked products
type FavoriteService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewFavoriteService creates a new favorites service
func NewFavoriteService(repos *repository.Repositories, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		repos:  repos,
		logger: logger,
	}
}

// FavoriteView is a favorite with its product, nil when the product is gone
type FavoriteView struct {
	*domain.Favorite
	Product *domain.CatalogItem `json:"product"`
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]FavoriteView, error) {
	favorites, err := s.repos.Favorite.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]FavoriteView, 0, len(favorites))
	for _, f := range favorites {
		v := FavoriteView{Favorite: f}
		product, err := s.repos.CatalogItem.GetByID(ctx, f.ProductID, nil)
		if err != nil && !errors.IsNotFound(err) {
			return nil, err
		}
		v.Product = product
		views = append(views, v)
	}
	return views, nil
}

// Add bookmarks a product; adding it twice is not an error
func (s *FavoriteService) Add(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, &errors.ErrValidation{Message: "invalid favorite", Fields: map[string]string{"product_id": "is required"}}
	}
	if _, err := s.repos.CatalogItem.GetByID(ctx, productID, nil); err != nil {
		return nil, err
	}

	f := &domain.Favorite{UserID: userID, ProductID: productID}
	if err := s.repos.Favorite.Add(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) error {
	return s.repos.Favorite.Remove(ctx, userID, productID)
}
