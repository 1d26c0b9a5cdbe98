package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogItem is one product row as carried by one shop. (ID, ShopCode) is unique.
type CatalogItem struct {
	ID              string                 `json:"id"`
	ShopCode        string                 `json:"shop_code"`
	CategoryID      *string                `json:"category_id,omitempty"`
	Name            string                 `json:"name"`
	Slug            *string                `json:"slug,omitempty"`
	Quantity        int                    `json:"quantity"`
	RetailPrice     decimal.Decimal        `json:"retail_price"`
	Characteristics map[string]interface{} `json:"characteristics,omitempty"` // JSONB
	Modifications   []Modification         `json:"modifications,omitempty"`   // JSONB
	IsActive        bool                   `json:"is_active"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// Modification is a product variant (size, flavour, resistance...) with its own price and stock
type Modification struct {
	ID       string           `json:"id,omitempty"`
	Name     string           `json:"name"`
	Value    string           `json:"value,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *int             `json:"quantity,omitempty"`
}

// CatalogCategory is a per-shop category node. ParentID nil means root.
type CatalogCategory struct {
	ID        string  `json:"id"`
	ShopCode  string  `json:"shop_code"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id,omitempty"`
	Level     int     `json:"level"`
	FullPath  string  `json:"full_path"`
	SortOrder int     `json:"sort_order"`
	IsActive  bool    `json:"is_active"`
}

// CategoryNode is a category annotated for listings and trees
type CategoryNode struct {
	CatalogCategory
	ProductCount     int             `json:"product_count"`
	HasSubcategories bool            `json:"has_subcategories"`
	Children         []*CategoryNode `json:"children,omitempty"`
}

// Breadcrumb is one resolved ancestor of a category
type Breadcrumb struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// CatalogExclusion hides a product or category from public catalog views
type CatalogExclusion struct {
	ID            uuid.UUID     `json:"id"`
	ExclusionType ExclusionType `json:"exclusion_type"`
	ItemID        string        `json:"item_id"`
	Reason        *string       `json:"reason,omitempty"`
	IsActive      bool          `json:"is_active"`
	CreatedBy     *string       `json:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ExclusionSet is the active block-list split by kind
type ExclusionSet struct {
	ProductIDs  []string
	CategoryIDs []string
}

// IsEmpty reports whether nothing is excluded
func (s ExclusionSet) IsEmpty() bool {
	return len(s.ProductIDs) == 0 && len(s.CategoryIDs) == 0
}

// Excludes reports whether the item is hidden directly or through its category
func (s ExclusionSet) Excludes(item *CatalogItem) bool {
	for _, id := range s.ProductIDs {
		if id == item.ID {
			return true
		}
	}
	if item.CategoryID == nil {
		return false
	}
	return s.ExcludesCategory(*item.CategoryID)
}

// ExcludesCategory reports whether a category id is on the block-list
func (s ExclusionSet) ExcludesCategory(categoryID string) bool {
	for _, id := range s.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// ShopLocation is a physical store. ShopCode joins it to catalog rows.
type ShopLocation struct {
	ShopCode  string            `json:"shop_code"`
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	City      string            `json:"city"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
	MapLinks  map[string]string `json:"map_links,omitempty"` // JSONB
	IsActive  bool              `json:"is_active"`
	Priority  int               `json:"priority"`
}

// ShopOffer is one shop's price and stock for an aggregated product
type ShopOffer struct {
	ItemID   string          `json:"item_id"`
	ShopCode string          `json:"shop_code"`
	ShopName *string         `json:"shop_name,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// AggregatedProduct groups every catalog row sharing a name. Computed per request, never stored.
type AggregatedProduct struct {
	Name                string                 `json:"name"`
	Slug                *string                `json:"slug,omitempty"`
	CategoryID          *string                `json:"category_id,omitempty"`
	Characteristics     map[string]interface{} `json:"characteristics,omitempty"`
	Modifications       []Modification         `json:"modifications,omitempty"`
	Offers              []ShopOffer            `json:"offers"`
	TotalQuantity       int                    `json:"total_quantity"`
	MinPrice            *decimal.Decimal       `json:"min_price"` // nil when no offer has a positive price
	MaxPrice            decimal.Decimal        `json:"max_price"`
	AvailableShopsCount int                    `json:"available_shops_count"`
}

// PurchaseStat is one best-seller candidate from recent purchase history
type PurchaseStat struct {
	ProductName   string
	CategoryID    *string
	TotalQuantity int
	PurchaseCount int
}

// PopularProduct is a best-seller matched back to a live catalog row
type PopularProduct struct {
	Item          *CatalogItem `json:"product"`
	TotalSold     int          `json:"total_sold"`
	PurchaseCount int          `json:"purchase_count"`
}

// CartItem is one line of a user's cart
type CartItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	ShopCode  string    `json:"shop_code"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Favorite is a product bookmarked by a user
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IntegrationClient is a machine caller (the inventory sync process) authenticated by API key
type IntegrationClient struct {
	ID           uuid.UUID
	Name         string
	APIKeyHash   string
	APIKeyLookup string // SHA256(apiKey) hex for fast lookup
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CatalogFilter is the parsed, validated form of a catalog listing request
type CatalogFilter struct {
	CategoryID     *string
	ShopCode       *string
	SearchVariants []string
	MinPrice       *decimal.Decimal
	MaxPrice       *decimal.Decimal
	InStock        bool
	Sort           SortField
	Order          SortOrder
	Limit          int // 0 means no limit
	Offset         int
	Excluded       ExclusionSet
}
