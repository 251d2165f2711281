package models

// AllCategories is the category sentinel meaning "no category constraint".
const AllCategories = "All"

// PriceRange is an inclusive [Min, Max] bound on product price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSpec narrows the catalog. Zero-valued fields impose no constraint.
type FilterSpec struct {
	Search     string      `json:"search,omitempty"`
	Category   string      `json:"category,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Materials  []string    `json:"materials,omitempty"`
	InStock    bool        `json:"inStock,omitempty"`
	Featured   bool        `json:"featured,omitempty"`
}

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)
