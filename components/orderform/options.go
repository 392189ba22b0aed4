package orderform

import (
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/sheets"
)

// GuardFunc can reject a request before any handling happens. Returning an
// error that implements HTTPError controls the response status.
type GuardFunc func(r *http.Request) error

// Options configure the component.
type Options struct {
	// FormPath, SubmitPath and ProductsPath are mounted relative to the
	// component base path.
	FormPath     string
	SubmitPath   string
	ProductsPath string

	SearchParam string
	PageParam   string
	LimitParam  string

	DefaultLimit int
	MaxLimit     int

	Guard GuardFunc

	Provider catalog.Provider
	Sink     sheets.Sink

	SpreadsheetID string
	SheetRange    string

	Theme *theme.RendererConfig

	// Now supplies the clock used for validation and submission timestamps.
	Now func() time.Time
}

// OptionFn mutates Options before construction.
type OptionFn func(*Options)

// DefaultOptions returns the component defaults. Provider, Sink and
// SpreadsheetID must be supplied by the embedder.
func DefaultOptions() Options {
	return Options{
		FormPath:     "/order",
		SubmitPath:   "/api/orders",
		ProductsPath: "/api/products",
		SearchParam:  "q",
		PageParam:    "page",
		LimitParam:   "limit",
		DefaultLimit: 20,
		MaxLimit:     100,
		Now:          time.Now,
	}
}

// NewOptions applies overrides on top of the defaults and backfills any field
// an override blanked out.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.FormPath == "" {
		opts.FormPath = "/order"
	}
	if opts.SubmitPath == "" {
		opts.SubmitPath = "/api/orders"
	}
	if opts.ProductsPath == "" {
		opts.ProductsPath = "/api/products"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.PageParam == "" {
		opts.PageParam = "page"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 100
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// WithProvider sets the catalog provider backing the device selects.
func WithProvider(provider catalog.Provider) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Provider = provider
	}
}

// WithSink sets the submission sink.
func WithSink(sink sheets.Sink) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sink = sink
	}
}

// WithSpreadsheet addresses the target sheet for appended orders.
func WithSpreadsheet(id, sheetRange string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SpreadsheetID = id
		o.SheetRange = sheetRange
	}
}

// WithFormPath overrides the form page route.
func WithFormPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormPath = path
	}
}

// WithGuard gates every component route.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithTheme applies a resolved theme configuration to the rendered pages.
func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

// WithSearchLimits tunes the product endpoint's default and maximum limits.
func WithSearchLimits(defaultLimit, maxLimit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = defaultLimit
		o.MaxLimit = maxLimit
	}
}

// WithClock overrides the component clock, pinning validation and submission
// timestamps in tests.
func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}

func clampLimit(limit int, opts Options) int {
	if limit <= 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
