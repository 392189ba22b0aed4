// Package intake implements the order form controller: it owns the draft,
// runs the validation rules, derives dependent field constraints, and hands
// the normalized payload to the submission sink.
package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/draft"
	"github.com/goliatone/go-intake/pkg/payload"
	"github.com/goliatone/go-intake/pkg/sheets"
	"github.com/goliatone/go-intake/pkg/validation"
)

// State is the controller lifecycle phase.
type State string

const (
	// StateEditing accepts field changes; the initial state, re-entered after
	// a failed submission so the customer can correct and retry.
	StateEditing State = "editing"
	// StateSubmitting has a sink call in flight; further submits are rejected.
	StateSubmitting State = "submitting"
	// StateSubmitted is terminal for the session; the draft was discarded.
	StateSubmitted State = "submitted"
)

// NoticeLevel classifies a notice for presentation.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a dismissible, non-fatal message for the customer: catalog load
// failures, submission outcomes, precondition problems.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// ErrSubmitInFlight rejects re-entrant submit attempts. The first submission
// continues untouched; nothing is queued.
var ErrSubmitInFlight = errors.New("intake: a submission is already in flight")

// ValidationError reports the fields that block submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("intake: %d fields failed validation", len(e.Fields))
}

// Controller owns one customer's order draft. All state is private to the
// controller; concurrent access is serialised internally so a controller can
// back an HTTP handler without extra locking.
type Controller struct {
	opts Options

	mu         sync.Mutex
	state      State
	order      draft.Order
	products   []catalog.Product
	active     *catalog.Product
	fieldErrs  map[string]string
	notices    []Notice
	loadSeq    uint64
	appliedSeq uint64
}

// New constructs a controller in the Editing state with an empty draft.
func New(fns ...OptionFn) (*Controller, error) {
	opts := NewOptions(fns...)
	if opts.Provider == nil {
		return nil, errors.New("intake: catalog provider is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("intake: submission sink is required")
	}

	return &Controller{
		opts:      opts,
		state:     StateEditing,
		order:     draft.New(opts.Now()),
		fieldErrs: make(map[string]string),
	}, nil
}

// State reports the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() draft.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// Products returns the last successfully loaded catalog page.
func (c *Controller) Products() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]catalog.Product(nil), c.products...)
}

// ActiveProduct returns the resolved product for the current selection.
func (c *Controller) ActiveProduct() (catalog.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return catalog.Product{}, false
	}
	return *c.active, true
}

// FieldErrors returns a copy of the per-field validation messages recorded by
// eager validation and by the last submit attempt.
func (c *Controller) FieldErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.fieldErrs))
	for k, v := range c.fieldErrs {
		out[k] = v
	}
	return out
}

// TakeNotices drains the pending notices. Draining models dismissal: a notice
// is shown once and not retained.
func (c *Controller) TakeNotices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}

// SetField applies a single user edit. Mobile numbers are normalized before
// storage, product changes clear the dependent colour/storage selections, and
// the changed field is re-validated eagerly. The returned string is the
// field's validation message, "" when it passes.
func (c *Controller) SetField(name, value string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case draft.FieldMobileNumber:
		value = draft.NormalizeMobile(value)
		c.order.MobileNumber = value
	case draft.FieldProduct:
		c.selectProductLocked(value)
	default:
		if !c.order.Set(name, value) {
			return ""
		}
	}

	msg := validation.Field(name, c.order.Get(name), c.opts.Now())
	c.recordFieldError(name, msg)
	return msg
}

// selectProductLocked enforces the dependent-selection invariant: whenever the
// product changes, colour and storage are cleared unconditionally, even when
// the new product happens to reuse an option id of the old one. The active
// product context comes from the currently loaded catalog; an unknown id
// clears it.
func (c *Controller) selectProductLocked(id string) {
	c.order.SelectedProductID = id
	if product, ok := catalog.Find(c.products, id); ok {
		c.active = &product
	} else {
		c.active = nil
	}

	c.order.SelectedColorID = ""
	c.order.SelectedStorageID = ""
	delete(c.fieldErrs, draft.FieldColor)
	delete(c.fieldErrs, draft.FieldStorage)
}

// LoadCatalog fetches a product page. On provider failure or an unsuccessful
// envelope the last-known catalog is kept (empty on first failure) and a
// dismissible notice is recorded; the failure is never fatal. Overlapping
// loads are sequenced: a response belonging to an older request than the
// newest applied one is dropped instead of overwriting fresher data.
func (c *Controller) LoadCatalog(ctx context.Context, query string, page int) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	provider := c.opts.Provider
	limit := c.opts.PageSize
	c.mu.Unlock()

	result, err := provider.FetchProducts(ctx, query, page, limit)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.appliedSeq {
		// A newer load already completed; keep its result.
		return nil
	}
	c.appliedSeq = seq

	if err != nil {
		c.notices = append(c.notices, Notice{Level: NoticeError, Message: "Could not load products. Please try again."})
		return fmt.Errorf("intake: load catalog: %w", err)
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "Could not load products. Please try again."
		}
		c.notices = append(c.notices, Notice{Level: NoticeError, Message: message})
		return nil
	}

	c.products = result.Data
	if c.order.SelectedProductID != "" {
		if product, ok := catalog.Find(c.products, c.order.SelectedProductID); ok {
			c.active = &product
		} else {
			c.active = nil
		}
	}
	return nil
}

// Submit validates the whole draft, formats the payload and appends it to the
// sink. Success discards the draft and moves the controller to Submitted; any
// failure preserves the draft unchanged and returns to Editing. A submit
// while another is in flight returns ErrSubmitInFlight without touching the
// sink. The returned reference identifies the order on success.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return "", ErrSubmitInFlight
	}

	now := c.opts.Now()
	errs := validation.Draft(c.order, now)
	if len(errs) > 0 {
		c.fieldErrs = errs
		c.mu.Unlock()
		return "", &ValidationError{Fields: errs}
	}

	if c.active == nil || c.active.ID != c.order.SelectedProductID {
		c.notices = append(c.notices, Notice{Level: NoticeError, Message: "Selected device could not be resolved. Please choose it again."})
		c.mu.Unlock()
		return "", errors.New("intake: selected product is not resolvable")
	}

	row, err := payload.Build(c.order, *c.active, now)
	if err != nil {
		c.notices = append(c.notices, Notice{Level: NoticeError, Message: "Selected options could not be resolved. Please choose them again."})
		c.mu.Unlock()
		return "", err
	}

	reference := c.order.Reference
	c.state = StateSubmitting
	req := sheets.AppendRequest{
		SpreadsheetID: c.opts.SpreadsheetID,
		Range:         c.opts.SheetRange,
		Values:        row.Values,
		ColorHex:      row.ColorHex,
	}
	sink := c.opts.Sink
	c.mu.Unlock()

	appendErr := sink.Append(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if appendErr != nil {
		c.state = StateEditing
		c.notices = append(c.notices, Notice{Level: NoticeError, Message: submissionFailureMessage(appendErr)})
		return "", fmt.Errorf("intake: submit order: %w", appendErr)
	}

	c.state = StateSubmitted
	c.order = draft.New(c.opts.Now())
	c.fieldErrs = make(map[string]string)
	c.notices = append(c.notices, Notice{Level: NoticeInfo, Message: "Order submitted. Your reference is " + reference + "."})
	return reference, nil
}

// Reset discards the session and returns to Editing with a fresh draft.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateEditing
	c.order = draft.New(c.opts.Now())
	c.active = nil
	c.fieldErrs = make(map[string]string)
	c.notices = nil
}

func (c *Controller) recordFieldError(name, msg string) {
	if msg == "" {
		delete(c.fieldErrs, name)
		return
	}
	c.fieldErrs[name] = msg
}

// submissionFailureMessage prefers the backend's own error text when the
// failure carries one.
func submissionFailureMessage(err error) string {
	var sinkErr *sheets.SinkError
	if errors.As(err, &sinkErr) && sinkErr.Message != "" {
		return sinkErr.Message
	}
	return "Order could not be submitted. Please try again."
}
