// Package intake exposes convenience constructors over the order intake
// packages so embedders can wire a working form without importing each
// package directly.
package intake

import (
	"github.com/goliatone/go-intake/pkg/catalog"
	pkgintake "github.com/goliatone/go-intake/pkg/intake"
)

// NewController constructs an order controller using the internal
// implementation while keeping the package layout out of caller code.
func NewController(options ...pkgintake.OptionFn) (*pkgintake.Controller, error) {
	return pkgintake.New(options...)
}

// DemoProducts returns the built-in demo catalog. It backs the examples and
// the server's static-provider fallback when no catalog endpoint is
// configured.
func DemoProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:    "iphone-13",
			Title: "iPhone 13",
			ColorOptions: []catalog.ColorOption{
				{ID: "Sierra Blue", ColorValue: "#9BB5CE"},
				{ID: "Midnight", ColorValue: "#1C1C1E"},
				{ID: "Starlight", ColorValue: "#FAF6F2"},
				{ID: "Product Red", ColorValue: "#BF0013"},
			},
			StorageOptions: []catalog.StorageOption{
				{ID: "s128", SizeValue: 128, Price: 749},
				{ID: "s256", SizeValue: 256, Price: 849},
				{ID: "s512", SizeValue: 512, Price: 1049},
			},
		},
		{
			ID:    "iphone-13-pro",
			Title: "iPhone 13 Pro",
			ColorOptions: []catalog.ColorOption{
				{ID: "Sierra Blue", ColorValue: "#9BB5CE"},
				{ID: "Graphite", ColorValue: "#54524F"},
				{ID: "Gold", ColorValue: "#F9E5C9"},
			},
			StorageOptions: []catalog.StorageOption{
				{ID: "s128", SizeValue: 128, Price: 949},
				{ID: "s256", SizeValue: 256, Price: 1049},
				{ID: "s1tb", SizeValue: 1, Price: 1449},
			},
		},
		{
			ID:    "pixel-9",
			Title: "Pixel 9",
			ColorOptions: []catalog.ColorOption{
				{ID: "Obsidian", ColorValue: "#1B1B1B"},
				{ID: "Porcelain", ColorValue: "#EFECE6"},
				{ID: "Wintergreen", ColorValue: "#C6D8CF"},
			},
			StorageOptions: []catalog.StorageOption{
				{ID: "s128", SizeValue: 128, Price: 699},
				{ID: "s256", SizeValue: 256, Price: 799},
			},
		},
		{
			ID:    "galaxy-s24",
			Title: "Galaxy S24",
			ColorOptions: []catalog.ColorOption{
				{ID: "Onyx Black", ColorValue: "#14141A"},
				{ID: "Marble Gray", ColorValue: "#B5B8BD"},
				{ID: "Cobalt Violet", ColorValue: "#8E8BC1"},
			},
			StorageOptions: []catalog.StorageOption{
				{ID: "s256", SizeValue: 256, Price: 859},
				{ID: "s512", SizeValue: 512, Price: 979},
				{ID: "s2tb", SizeValue: 2, Price: 1259},
			},
		},
	}
}
