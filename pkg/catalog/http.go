package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPOptions configure the HTTP provider.
type HTTPOptions struct {
	BaseURL     string
	SearchParam string
	PageParam   string
	LimitParam  string
	Timeout     time.Duration
	Client      *http.Client
}

// HTTPOption mutates HTTPOptions before construction.
type HTTPOption func(*HTTPOptions)

// DefaultHTTPOptions returns the provider defaults.
func DefaultHTTPOptions() HTTPOptions {
	return HTTPOptions{
		SearchParam: "search",
		PageParam:   "page",
		LimitParam:  "limit",
		Timeout:     10 * time.Second,
	}
}

// NewHTTPOptions applies overrides on top of the defaults and backfills any
// field an override blanked out.
func NewHTTPOptions(fns ...HTTPOption) HTTPOptions {
	opts := DefaultHTTPOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "search"
	}
	if opts.PageParam == "" {
		opts.PageParam = "page"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return opts
}

// WithBaseURL sets the catalog endpoint the provider queries.
func WithBaseURL(raw string) HTTPOption {
	return func(o *HTTPOptions) {
		if o == nil {
			return
		}
		o.BaseURL = strings.TrimSpace(raw)
	}
}

// WithHTTPClient overrides the http.Client used for catalog requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(o *HTTPOptions) {
		if o == nil {
			return
		}
		o.Client = client
	}
}

// WithTimeout bounds catalog requests when no custom client is supplied.
func WithTimeout(d time.Duration) HTTPOption {
	return func(o *HTTPOptions) {
		if o == nil {
			return
		}
		o.Timeout = d
	}
}

// WithSearchParam renames the query-string parameter carrying the search term.
func WithSearchParam(name string) HTTPOption {
	return func(o *HTTPOptions) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

// HTTPProvider fetches products from a JSON catalog endpoint. The endpoint is
// expected to answer GET <base>?search=&page=&limit= with a Result envelope.
type HTTPProvider struct {
	opts   HTTPOptions
	client *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider constructs a provider from options. The base URL is
// mandatory; everything else has defaults.
func NewHTTPProvider(fns ...HTTPOption) (*HTTPProvider, error) {
	opts := NewHTTPOptions(fns...)
	if opts.BaseURL == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("catalog: invalid base URL %q: %w", opts.BaseURL, err)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPProvider{opts: opts, client: client}, nil
}

// FetchProducts queries the catalog endpoint. Transport failures and non-2xx
// statuses return an error; an upstream "success=false" envelope is returned
// as-is so callers can surface the message without treating it as fatal.
func (p *HTTPProvider) FetchProducts(ctx context.Context, query string, page, limit int) (Result, error) {
	if p == nil || p.client == nil {
		return Result{}, errors.New("catalog: provider is not initialised")
	}

	endpoint, err := url.Parse(p.opts.BaseURL)
	if err != nil {
		return Result{}, fmt.Errorf("catalog: parse base URL: %w", err)
	}
	values := endpoint.Query()
	if q := strings.TrimSpace(query); q != "" {
		values.Set(p.opts.SearchParam, q)
	}
	if page > 0 {
		values.Set(p.opts.PageParam, strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set(p.opts.LimitParam, strconv.Itoa(limit))
	}
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("catalog: fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("catalog: fetch products: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("catalog: decode response: %w", err)
	}
	return result, nil
}
