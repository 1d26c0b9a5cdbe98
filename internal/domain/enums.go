package domain

// ExclusionType is what a catalog exclusion hides: a single product or a whole category
type ExclusionType string

const (
	ExclusionTypeProduct  ExclusionType = "product"
	ExclusionTypeCategory ExclusionType = "category"
)

// IsValid checks if the exclusion type is one of the supported kinds
func (t ExclusionType) IsValid() bool {
	switch t {
	case ExclusionTypeProduct, ExclusionTypeCategory:
		return true
	default:
		return false
	}
}

// SortField is a catalog listing sort key
type SortField string

const (
	SortByName       SortField = "name"
	SortByPrice      SortField = "price"
	SortByCreatedAt  SortField = "created_at"
	SortByPopularity SortField = "popularity"
)

// IsValid checks if the sort field is supported by catalog listings
func (f SortField) IsValid() bool {
	switch f {
	case SortByName, SortByPrice, SortByCreatedAt, SortByPopularity:
		return true
	default:
		return false
	}
}

// SortOrder is the listing direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid checks if the order is asc or desc
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// SlugTier names the resolution step that matched a product slug
type SlugTier string

const (
	// SlugTierExact - slug equals the stored slug
	SlugTierExact SlugTier = "exact"
	// SlugTierPrefix - stored slug starts with the given slug plus a shop suffix (pre-suffix URLs)
	SlugTierPrefix SlugTier = "prefix"
	// SlugTierFuzzy - case-insensitive prefix of the slug with its last two characters cut
	SlugTierFuzzy SlugTier = "fuzzy"
)
