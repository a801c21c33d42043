package models

// Product is one catalog entry as served by the catalog source.
// Products are loaded once per request and treated as read-only.
type Product struct {
	ID                 int     `json:"id" bson:"id"`
	Title              string  `json:"title" bson:"title"`
	Description        string  `json:"description" bson:"description"`
	Price              float64 `json:"price" bson:"price"`
	DiscountPercentage float64 `json:"discountPercentage" bson:"discountPercentage"`
	Rating             float64 `json:"rating" bson:"rating"`
	Stock              int     `json:"stock" bson:"stock"`
	Brand              string  `json:"brand,omitempty" bson:"brand,omitempty"`
	Category           string  `json:"category,omitempty" bson:"category,omitempty"`
	Thumbnail          string  `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
}

// ProductFacts is the per-response view of a single resolved product,
// used for templated answers and for building fallback prompts.
type ProductFacts struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	ActualPrice float64
	Rating      float64
	Stock       int
	Brand       string
	Category    string
}

// PriceRange holds an optional lower and upper price bound extracted
// from a message. A nil bound means "unbounded on that side".
type PriceRange struct {
	Low  *float64
	High *float64
}

// SearchFilters are the conjunctive predicates applied over the catalog.
type SearchFilters struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}
