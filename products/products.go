package products

// Category values the storefront recognises.
const (
	CategoryBoys  = "boys"
	CategoryGirls = "girls"
	CategoryToys  = "toys"
)

// Status values for a listed product.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product mirrors the backend's product resource.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	AgeRange    string  `json:"age_range,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Status      string  `json:"status,omitempty"`
	Image       string  `json:"image,omitempty"`
}
