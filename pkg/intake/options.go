package intake

import (
	"time"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/sheets"
)

// Options configure a Controller.
type Options struct {
	Provider catalog.Provider
	Sink     sheets.Sink

	// SpreadsheetID and SheetRange address the backing sheet on every append.
	SpreadsheetID string
	SheetRange    string

	// PageSize is the limit passed to catalog fetches.
	PageSize int

	// Now supplies the clock; tests override it to pin submission dates.
	Now func() time.Time
}

// OptionFn mutates Options before construction.
type OptionFn func(*Options)

// DefaultOptions returns controller defaults. Provider, Sink and
// SpreadsheetID have no defaults and must be supplied.
func DefaultOptions() Options {
	return Options{
		SheetRange: "Orders!A:U",
		PageSize:   20,
		Now:        time.Now,
	}
}

// NewOptions applies overrides on top of the defaults and backfills cleared
// fields.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.SheetRange == "" {
		opts.SheetRange = "Orders!A:U"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// WithProvider sets the catalog provider.
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

// WithSpreadsheet addresses the target sheet and range for appends.
func WithSpreadsheet(id, sheetRange string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SpreadsheetID = id
		if sheetRange != "" {
			o.SheetRange = sheetRange
		}
	}
}

// WithPageSize sets the catalog fetch limit.
func WithPageSize(size int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageSize = size
	}
}

// WithClock overrides the controller clock.
func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}
