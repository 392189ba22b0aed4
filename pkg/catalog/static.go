package catalog

import (
	"context"
	"sort"
	"strings"
)

const (
	defaultStaticLimit = 20
	maxStaticLimit     = 100
)

// StaticProvider serves a fixed product set from memory. It backs examples and
// tests, and is handy as a fallback when no catalog endpoint is configured.
type StaticProvider struct {
	products []Product
}

var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider copies the supplied products so later mutation by the
// caller cannot leak into served results.
func NewStaticProvider(products []Product) *StaticProvider {
	return &StaticProvider{products: append([]Product(nil), products...)}
}

// FetchProducts filters the fixed set by a case-insensitive title match,
// ranking prefix matches first, then applies page/limit windowing.
func (p *StaticProvider) FetchProducts(_ context.Context, query string, page, limit int) (Result, error) {
	if p == nil {
		return Result{Success: true, Data: []Product{}}, nil
	}
	if limit <= 0 {
		limit = defaultStaticLimit
	}
	if limit > maxStaticLimit {
		limit = maxStaticLimit
	}
	if page <= 0 {
		page = 1
	}

	matched := p.match(query)

	start := (page - 1) * limit
	if start >= len(matched) {
		return Result{Success: true, Data: []Product{}}, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return Result{Success: true, Data: matched[start:end]}, nil
}

func (p *StaticProvider) match(query string) []Product {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return append([]Product(nil), p.products...)
	}

	type ranked struct {
		product  Product
		isPrefix bool
	}
	matches := make([]ranked, 0, len(p.products))
	for _, product := range p.products {
		title := strings.ToLower(product.Title)
		if !strings.Contains(title, query) {
			continue
		}
		matches = append(matches, ranked{
			product:  product,
			isPrefix: strings.HasPrefix(title, query),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].product.Title < matches[j].product.Title
	})

	out := make([]Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.product)
	}
	return out
}
