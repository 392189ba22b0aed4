// Package sheets is the client side of the spreadsheet-append endpoint that
// durably records submitted orders.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AppendRequest is a single row append. Values carries the ordered scalar
// cells; ColorHex rides alongside for downstream display use.
type AppendRequest struct {
	SpreadsheetID string   `json:"spreadsheetId"`
	Range         string   `json:"range"`
	Values        []string `json:"values"`
	ColorHex      string   `json:"colorHex"`
}

// Sink accepts a normalized submission and records it.
type Sink interface {
	Append(ctx context.Context, req AppendRequest) error
}

// SinkError is returned for non-2xx responses. Message is the backend's own
// error text, surfaced to the customer verbatim when present.
type SinkError struct {
	Status  int
	Message string
}

func (e *SinkError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("sheets: append failed with status %d", e.Status)
}

// Options configure the HTTP sink.
type Options struct {
	Endpoint string
	Timeout  time.Duration
	Client   *http.Client
}

// Option mutates Options before construction.
type Option func(*Options)

// DefaultOptions returns the sink defaults.
func DefaultOptions() Options {
	return Options{Timeout: 15 * time.Second}
}

// NewOptions applies overrides on top of the defaults.
func NewOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return opts
}

// WithEndpoint sets the append endpoint URL.
func WithEndpoint(raw string) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Endpoint = strings.TrimSpace(raw)
	}
}

// WithHTTPClient overrides the http.Client used for append calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Client = client
	}
}

// WithTimeout bounds append calls when no custom client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timeout = d
	}
}

// HTTPSink posts append requests as JSON to a backend endpoint.
type HTTPSink struct {
	opts   Options
	client *http.Client
}

var _ Sink = (*HTTPSink)(nil)

// NewHTTPSink constructs a sink from options. The endpoint is mandatory.
func NewHTTPSink(fns ...Option) (*HTTPSink, error) {
	opts := NewOptions(fns...)
	if opts.Endpoint == "" {
		return nil, errors.New("sheets: endpoint is required")
	}
	if _, err := url.ParseRequestURI(opts.Endpoint); err != nil {
		return nil, fmt.Errorf("sheets: invalid endpoint %q: %w", opts.Endpoint, err)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPSink{opts: opts, client: client}, nil
}

// errorBody is the backend's failure envelope. Both shapes observed in the
// wild are handled: {"message": "..."} and {"error": "..."}.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Append posts the request and treats any 2xx status as success. Non-2xx
// responses produce a *SinkError carrying the backend message when the body
// has one.
func (s *HTTPSink) Append(ctx context.Context, req AppendRequest) error {
	if s == nil || s.client == nil {
		return errors.New("sheets: sink is not initialised")
	}
	if len(req.Values) == 0 {
		return errors.New("sheets: append request has no values")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("sheets: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sheets: append: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	return &SinkError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(raw))
}
