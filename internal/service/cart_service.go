package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

const maxCartQuantity = repository.MaxCartQuantity

// CartService manages a user's cart against live catalog rows
type CartService struct {
	repos      *repository.Repositories
	exclusions *ExclusionService
	logger     *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(repos *repository.Repositories, logger *zap.Logger) *CartService {
	return &CartService{
		repos:      repos,
		exclusions: NewExclusionService(repos, logger),
		logger:     logger,
	}
}

// CartLine is a cart item enriched with the product's current name, price and stock.
// Available is false when the product is no longer sold in that shop.
type CartLine struct {
	*domain.CartItem
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	InStock   int             `json:"in_stock"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Available bool            `json:"available"`
}

// CartView is the whole cart with its total over available lines
type CartView struct {
	Items      []CartLine      `json:"items"`
	ItemsCount int             `json:"items_count"`
	Total      decimal.Decimal `json:"total"`
}

// AddCartItemInput is a request to put a product from a given shop into the cart
type AddCartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	ShopCode  string `json:"shop_code" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func validateQuantity(q int) error {
	if q < 1 || q > maxCartQuantity {
		return repository.CartQuantityError()
	}
	return nil
}

// GetCart returns the user's cart priced at current catalog prices
func (s *CartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	items, err := s.repos.Cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartLine, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		line := CartLine{CartItem: it, Price: decimal.Zero, Subtotal: decimal.Zero}
		shop := it.ShopCode
		product, err := s.repos.CatalogItem.GetByID(ctx, it.ProductID, &shop)
		switch {
		case err == nil:
			line.Name = product.Name
			line.Price = product.RetailPrice
			line.InStock = product.Quantity
			line.Available = true
			line.Subtotal = product.RetailPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			view.Total = view.Total.Add(line.Subtotal)
		case errors.IsNotFound(err):
			s.logger.Debug("Cart item references a missing product",
				zap.String("product_id", it.ProductID),
				zap.String("shop_code", it.ShopCode))
		default:
			return nil, err
		}
		view.ItemsCount += it.Quantity
		view.Items = append(view.Items, line)
	}
	return view, nil
}

// AddItem adds quantity of a product to the cart, merging with an existing line
func (s *CartService) AddItem(ctx context.Context, userID string, input AddCartItemInput) (*domain.CartItem, error) {
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	shop := strings.TrimSpace(input.ShopCode)
	product, err := s.repos.CatalogItem.GetByID(ctx, strings.TrimSpace(input.ProductID), &shop)
	if err != nil {
		return nil, err
	}
	if s.exclusions.GetExclusionSet(ctx).Excludes(product) {
		return nil, &errors.ErrNotFound{Resource: "product", ID: product.ID}
	}

	item := &domain.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		ShopCode:  product.ShopCode,
		Quantity:  input.Quantity,
	}
	if err := s.repos.Cart.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem sets the quantity of one of the user's cart lines
func (s *CartService) UpdateItem(ctx context.Context, userID string, id uuid.UUID, quantity int) (*domain.CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	return s.repos.Cart.UpdateQuantity(ctx, userID, id, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repos.Cart.Delete(ctx, userID, id)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.repos.Cart.Clear(ctx, userID)
}
