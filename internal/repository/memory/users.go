package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type cartRepository struct {
	s *Store
}

func (r *cartRepository) ListByUser(_ context.Context, userID string) ([]*domain.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.CartItem, 0)
	for _, c := range r.s.cart {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *cartRepository) Upsert(_ context.Context, item *domain.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for _, c := range r.s.cart {
		if c.UserID == item.UserID && c.ProductID == item.ProductID && c.ShopCode == item.ShopCode {
			if c.Quantity+item.Quantity > repository.MaxCartQuantity {
				return repository.CartQuantityError()
			}
			c.Quantity += item.Quantity
			c.UpdatedAt = now
			*item = *c
			return nil
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	cp := *item
	r.s.cart[item.ID] = &cp
	return nil
}

func (r *cartRepository) UpdateQuantity(_ context.Context, userID string, id uuid.UUID, quantity int) (*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.cart[id]
	if !ok || c.UserID != userID {
		return nil, &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	c.Quantity = quantity
	c.UpdatedAt = time.Now()
	cp := *c
	return &cp, nil
}

func (r *cartRepository) Delete(_ context.Context, userID string, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.cart[id]
	if !ok || c.UserID != userID {
		return &errors.ErrNotFound{Resource: "cart item", ID: id.String()}
	}
	delete(r.s.cart, id)
	return nil
}

func (r *cartRepository) Clear(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.cart {
		if c.UserID == userID {
			delete(r.s.cart, id)
		}
	}
	return nil
}

type favoriteRepository struct {
	s *Store
}

func (r *favoriteRepository) ListByUser(_ context.Context, userID string) ([]*domain.Favorite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Favorite, 0)
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *favoriteRepository) Add(_ context.Context, f *domain.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.favorites {
		if existing.UserID == f.UserID && existing.ProductID == f.ProductID {
			*f = *existing
			return nil
		}
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	cp := *f
	r.s.favorites[f.ID] = &cp
	return nil
}

func (r *favoriteRepository) Remove(_ context.Context, userID, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.favorites {
		if f.UserID == userID && f.ProductID == productID {
			delete(r.s.favorites, id)
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "favorite", ID: productID}
}

type integrationClientRepository struct {
	s *Store
}

func (r *integrationClientRepository) GetByAPIKey(_ context.Context, apiKey string) (*domain.IntegrationClient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lookup := repository.APIKeyLookup(apiKey)
	for _, c := range r.s.clients {
		if c.IsActive && c.APIKeyLookup == lookup && repository.VerifyAPIKey(c.APIKeyHash, apiKey) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *integrationClientRepository) List(_ context.Context) ([]*domain.IntegrationClient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.IntegrationClient, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *integrationClientRepository) Create(_ context.Context, c *domain.IntegrationClient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.clients {
		if existing.APIKeyLookup == c.APIKeyLookup {
			return &errors.ErrConflict{Message: "integration client with this API key already exists"}
		}
	}
	now := time.Now()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}
