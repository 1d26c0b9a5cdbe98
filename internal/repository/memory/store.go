// Package memory implements the repository interfaces over process memory.
// The server falls back to it in development when Postgres is unreachable,
// and the HTTP tests run against it.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
)

// PurchaseLine is one line of a recorded purchase
type PurchaseLine struct {
	ProductName string
	CategoryID  *string
	Quantity    int
}

type purchase struct {
	id          uuid.UUID
	purchasedAt time.Time
	lines       []PurchaseLine
}

type itemKey struct {
	id   string
	shop string
}

// Store holds every table. All repositories created from one store share its data.
type Store struct {
	mu sync.RWMutex

	items      map[itemKey]*domain.CatalogItem
	categories map[itemKey]*domain.CatalogCategory
	exclusions map[uuid.UUID]*domain.CatalogExclusion
	shops      map[string]*domain.ShopLocation
	purchases  []purchase
	cart       map[uuid.UUID]*domain.CartItem
	favorites  map[uuid.UUID]*domain.Favorite
	clients    map[uuid.UUID]*domain.IntegrationClient
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		items:      make(map[itemKey]*domain.CatalogItem),
		categories: make(map[itemKey]*domain.CatalogCategory),
		exclusions: make(map[uuid.UUID]*domain.CatalogExclusion),
		shops:      make(map[string]*domain.ShopLocation),
		cart:       make(map[uuid.UUID]*domain.CartItem),
		favorites:  make(map[uuid.UUID]*domain.Favorite),
		clients:    make(map[uuid.UUID]*domain.IntegrationClient),
	}
}

// NewRepositories wires every repository to the store
func NewRepositories(s *Store) *repository.Repositories {
	return &repository.Repositories{
		CatalogItem:       &catalogItemRepository{s},
		Category:          &categoryRepository{s},
		Exclusion:         &exclusionRepository{s},
		Shop:              &shopRepository{s},
		Purchase:          &purchaseRepository{s},
		Cart:              &cartRepository{s},
		Favorite:          &favoriteRepository{s},
		IntegrationClient: &integrationClientRepository{s},
	}
}

// AddItems inserts or replaces catalog rows, keyed by (id, shop code)
func (s *Store) AddItems(items ...*domain.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, it := range items {
		c := *it
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
		s.items[itemKey{c.ID, c.ShopCode}] = &c
	}
}

// AddCategories inserts or replaces categories, keyed by (id, shop code)
func (s *Store) AddCategories(categories ...*domain.CatalogCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		cp := *c
		s.categories[itemKey{cp.ID, cp.ShopCode}] = &cp
	}
}

// AddShops inserts or replaces shop locations
func (s *Store) AddShops(shops ...*domain.ShopLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range shops {
		cp := *sh
		s.shops[cp.ShopCode] = &cp
	}
}

// AddPurchase records a purchase made at the given time
func (s *Store) AddPurchase(at time.Time, lines ...PurchaseLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases = append(s.purchases, purchase{id: uuid.New(), purchasedAt: at, lines: lines})
}

// sortedItems returns the catalog rows in a stable order: name, shop, id
func (s *Store) sortedItems() []*domain.CatalogItem {
	out := make([]*domain.CatalogItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.ShopCode != b.ShopCode {
			return a.ShopCode < b.ShopCode
		}
		return a.ID < b.ID
	})
	return out
}

// likeMatch evaluates a SQL LIKE pattern: % matches any run, _ any single character,
// and a backslash makes the next character literal. fold makes it behave like ILIKE.
func likeMatch(pattern, s string, fold bool) bool {
	if fold {
		pattern, s = strings.ToLower(pattern), strings.ToLower(s)
	}
	p, str := []rune(pattern), []rune(s)

	// classic two-pointer wildcard match with backtracking to the last %
	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(str) {
		if pi < len(p) && p[pi] == '%' {
			star, mark = pi, si
			pi++
			continue
		}
		if pi < len(p) {
			c, width, literal := p[pi], 1, false
			if c == '\\' && pi+1 < len(p) {
				c, width, literal = p[pi+1], 2, true
			}
			if c == str[si] || (c == '_' && !literal) {
				pi += width
				si++
				continue
			}
		}
		if star < 0 {
			return false
		}
		pi = star + 1
		mark++
		si = mark
	}
	for pi < len(p) && p[pi] == '%' {
		pi++
	}
	return pi == len(p)
}

func copyItem(it *domain.CatalogItem) *domain.CatalogItem {
	c := *it
	return &c
}
