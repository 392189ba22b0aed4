package catalog

import "context"

// ColorOption is a selectable device colour. ID doubles as the display name
// ("Sierra Blue"); ColorValue carries the raw swatch value (typically a hex
// string) passed through to downstream consumers untouched.
type ColorOption struct {
	ID         string `json:"id"`
	ColorValue string `json:"colorValue"`
}

// StorageOption is a selectable capacity tier. SizeValue is unit-less; the
// submission formatter decides how it is displayed.
type StorageOption struct {
	ID        string  `json:"id"`
	SizeValue float64 `json:"sizeValue"`
	Price     float64 `json:"price"`
}

// Product is an externally supplied device model. Option IDs are unique within
// their product only; resolving an option against a different product is a
// programming error the helpers below guard against.
type Product struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	ColorOptions   []ColorOption   `json:"colorOptions"`
	StorageOptions []StorageOption `json:"storageOptions"`
}

// Color resolves an option id against this product's own colour list.
func (p Product) Color(id string) (ColorOption, bool) {
	for _, opt := range p.ColorOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return ColorOption{}, false
}

// Storage resolves an option id against this product's own storage list.
func (p Product) Storage(id string) (StorageOption, bool) {
	for _, opt := range p.StorageOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return StorageOption{}, false
}

// Result is the provider response envelope. Message carries the upstream
// error text when Success is false.
type Result struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data"`
	Message string    `json:"message,omitempty"`
}

// Provider fetches a page of selectable products matching a search query.
// Implementations must treat an empty query as "first page of everything".
type Provider interface {
	FetchProducts(ctx context.Context, query string, page, limit int) (Result, error)
}

// Find returns the product with the given id from a loaded set.
func Find(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
