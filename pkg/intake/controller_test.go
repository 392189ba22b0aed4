package intake

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/draft"
	"github.com/goliatone/go-intake/pkg/sheets"
)

var testNow = time.Date(2025, time.June, 26, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:    "iphone-13",
			Title: "iPhone 13",
			ColorOptions: []catalog.ColorOption{
				{ID: "Sierra Blue", ColorValue: "#9BB5CE"},
			},
			StorageOptions: []catalog.StorageOption{
				{ID: "s256", SizeValue: 256, Price: 899},
			},
		},
		{
			ID:    "pixel-9",
			Title: "Pixel 9",
			ColorOptions: []catalog.ColorOption{
				{ID: "Sierra Blue", ColorValue: "#7A8B99"},
			},
			StorageOptions: []catalog.StorageOption{
				{ID: "s256", SizeValue: 128, Price: 699},
			},
		},
	}
}

// scriptedProvider returns queued results in order, blocking on demand.
type scriptedProvider struct {
	mu      sync.Mutex
	results []catalog.Result
	errs    []error
	release chan struct{}
}

func (p *scriptedProvider) FetchProducts(context.Context, string, int, int) (catalog.Result, error) {
	if p.release != nil {
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return catalog.Result{Success: true, Data: nil}, nil
	}
	result := p.results[0]
	p.results = p.results[1:]
	var err error
	if len(p.errs) > 0 {
		err = p.errs[0]
		p.errs = p.errs[1:]
	}
	return result, err
}

// recordingSink captures append requests and can block or fail on command.
type recordingSink struct {
	mu       sync.Mutex
	requests []sheets.AppendRequest
	failWith error
	gate     chan struct{}
}

func (s *recordingSink) Append(_ context.Context, req sheets.AppendRequest) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.requests = append(s.requests, req)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func newTestController(t *testing.T, sink sheets.Sink) *Controller {
	t.Helper()
	c, err := New(
		WithProvider(catalog.NewStaticProvider(testProducts())),
		WithSink(sink),
		WithSpreadsheet("sheet-1", "Orders!A:U"),
		WithClock(fixedClock),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.LoadCatalog(context.Background(), "", 1); err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return c
}

func fillValidDraft(c *Controller) {
	c.SetField(draft.FieldProduct, "iphone-13")
	c.SetField(draft.FieldColor, "Sierra Blue")
	c.SetField(draft.FieldStorage, "s256")
	c.SetField(draft.FieldNetwork, "EE")
	c.SetField(draft.FieldFirstName, "Ada")
	c.SetField(draft.FieldLastName, "Lovelace")
	c.SetField(draft.FieldEmail, "ada@example.com")
	c.SetField(draft.FieldMobileNumber, "07123 456 789")
	c.SetField(draft.FieldDateOfBirth, "1990-03-14")
	c.SetField(draft.FieldAddress, "10 Downing Street, London")
	c.SetField(draft.FieldPostCode, "SW1A 2AA")
	c.SetField(draft.FieldHouseNumber, "10")
}

func TestController_StartsEditingWithEmptyDraft(t *testing.T) {
	c := newTestController(t, &recordingSink{})
	if c.State() != StateEditing {
		t.Fatalf("expected initial state %q, got %q", StateEditing, c.State())
	}
	o := c.Draft()
	if o.FirstName != "" || o.SelectedProductID != "" {
		t.Fatalf("expected an empty draft, got %+v", o)
	}
	if o.Reference == "" {
		t.Fatal("expected the draft to carry an order reference")
	}
}

func TestController_MobileNormalizationOnChange(t *testing.T) {
	c := newTestController(t, &recordingSink{})

	c.SetField(draft.FieldMobileNumber, "07123 456 789 999")
	if got := c.Draft().MobileNumber; got != "07123456789" {
		t.Fatalf("expected normalized mobile %q, got %q", "07123456789", got)
	}
	if msg := c.FieldErrors()[draft.FieldMobileNumber]; msg != "" {
		t.Fatalf("expected normalized number to validate, got %q", msg)
	}

	// Short inputs normalize but still fail validation.
	c.SetField(draft.FieldMobileNumber, "071 23")
	if got := c.Draft().MobileNumber; got != "07123" {
		t.Fatalf("expected %q, got %q", "07123", got)
	}
	if msg := c.FieldErrors()[draft.FieldMobileNumber]; msg == "" {
		t.Fatal("expected a validation message for a short number")
	}
}

func TestController_ProductChangeClearsDependents(t *testing.T) {
	c := newTestController(t, &recordingSink{})

	c.SetField(draft.FieldProduct, "iphone-13")
	c.SetField(draft.FieldColor, "Sierra Blue")
	c.SetField(draft.FieldStorage, "s256")

	// pixel-9 reuses both option id strings; the selections must still clear.
	c.SetField(draft.FieldProduct, "pixel-9")

	o := c.Draft()
	if o.SelectedColorID != "" || o.SelectedStorageID != "" {
		t.Fatalf("expected colour/storage cleared, got %q/%q", o.SelectedColorID, o.SelectedStorageID)
	}
	active, ok := c.ActiveProduct()
	if !ok || active.ID != "pixel-9" {
		t.Fatalf("expected active product pixel-9, got %+v ok=%v", active, ok)
	}

	c.SetField(draft.FieldProduct, "nonexistent")
	if _, ok := c.ActiveProduct(); ok {
		t.Fatal("expected no active product for an unknown id")
	}
}

func TestController_SubmitHappyPath(t *testing.T) {
	sink := &recordingSink{}
	c := newTestController(t, sink)
	fillValidDraft(c)

	reference, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reference == "" {
		t.Fatal("expected a non-empty order reference")
	}
	if c.State() != StateSubmitted {
		t.Fatalf("expected state %q, got %q", StateSubmitted, c.State())
	}
	if sink.count() != 1 {
		t.Fatalf("expected exactly one sink call, got %d", sink.count())
	}

	req := sink.requests[0]
	if req.SpreadsheetID != "sheet-1" || req.Range != "Orders!A:U" {
		t.Fatalf("unexpected sheet addressing: %+v", req)
	}
	if len(req.Values) != 21 {
		t.Fatalf("expected 21 values, got %d", len(req.Values))
	}
	if req.ColorHex != "#9BB5CE" {
		t.Fatalf("expected colour hex passthrough, got %q", req.ColorHex)
	}

	wantHead := []string{"Ada", "Lovelace", "07123456789", "14/Mar/1990", "ada@example.com"}
	if diff := cmp.Diff(wantHead, req.Values[:5]); diff != "" {
		t.Fatalf("unexpected leading values (-want +got):\n%s", diff)
	}
	if req.Values[10] != "256 GB" {
		t.Fatalf("expected storage slot %q, got %q", "256 GB", req.Values[10])
	}
	if req.Values[12] != "26/Jun/2025" {
		t.Fatalf("expected submission date slot %q, got %q", "26/Jun/2025", req.Values[12])
	}
	for _, slot := range req.Values[13:] {
		if slot != "N/A" {
			t.Fatalf("expected optional slots to read N/A, got %q", slot)
		}
	}

	// Success discards the draft.
	if got := c.Draft().FirstName; got != "" {
		t.Fatalf("expected draft reset after success, first name still %q", got)
	}
}

func TestController_SubmitBlockedByValidation(t *testing.T) {
	sink := &recordingSink{}
	c := newTestController(t, sink)

	_, err := c.Submit(context.Background())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if len(vErr.Fields) == 0 {
		t.Fatal("expected field errors on an empty draft")
	}
	if sink.count() != 0 {
		t.Fatal("validation failure must not reach the sink")
	}
	if c.State() != StateEditing {
		t.Fatalf("expected state %q, got %q", StateEditing, c.State())
	}
}

func TestController_SubmitPreconditionBlocksBeforeSink(t *testing.T) {
	sink := &recordingSink{}
	c := newTestController(t, sink)
	fillValidDraft(c)
	// Colour set after product selection but pointing nowhere.
	c.SetField(draft.FieldColor, "Rose Gold")

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected a precondition error for a dangling colour")
	}
	if sink.count() != 0 {
		t.Fatal("precondition failure must not reach the sink")
	}

	notices := c.TakeNotices()
	if len(notices) == 0 || notices[0].Level != NoticeError {
		t.Fatalf("expected a blocking error notice, got %v", notices)
	}
}

func TestController_ReentrantSubmitRejected(t *testing.T) {
	sink := &recordingSink{gate: make(chan struct{})}
	c := newTestController(t, sink)
	fillValidDraft(c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	// Wait for the first submission to reach the sink.
	for c.State() != StateSubmitting {
		time.Sleep(time.Millisecond)
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(sink.gate)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if sink.count() != 1 {
		t.Fatalf("expected exactly one sink call, got %d", sink.count())
	}
}

func TestController_FailedSubmitPreservesDraft(t *testing.T) {
	sink := &recordingSink{failWith: &sheets.SinkError{Status: 502, Message: "sheet quota exceeded"}}
	c := newTestController(t, sink)
	fillValidDraft(c)

	before := c.Draft()
	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected the submission to fail")
	}
	if c.State() != StateEditing {
		t.Fatalf("expected a return to %q, got %q", StateEditing, c.State())
	}

	after := c.Draft()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("draft changed across a failed submit (-before +after):\n%s", diff)
	}

	notices := c.TakeNotices()
	if len(notices) != 1 || notices[0].Message != "sheet quota exceeded" {
		t.Fatalf("expected the backend message verbatim, got %v", notices)
	}
	if len(c.TakeNotices()) != 0 {
		t.Fatal("notices should drain on read")
	}
}

func TestController_CatalogFailureKeepsLastKnown(t *testing.T) {
	provider := &scriptedProvider{
		results: []catalog.Result{
			{Success: true, Data: testProducts()},
			{Success: false, Message: "catalog unavailable"},
		},
	}
	c, err := New(
		WithProvider(provider),
		WithSink(&recordingSink{}),
		WithSpreadsheet("sheet-1", ""),
		WithClock(fixedClock),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.LoadCatalog(context.Background(), "", 1); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(c.Products()) != 2 {
		t.Fatalf("expected 2 products, got %d", len(c.Products()))
	}

	if err := c.LoadCatalog(context.Background(), "zz", 1); err != nil {
		t.Fatalf("unsuccessful envelope should not be an error: %v", err)
	}
	if len(c.Products()) != 2 {
		t.Fatal("catalog failure must keep the last-known products")
	}
	notices := c.TakeNotices()
	if len(notices) != 1 || notices[0].Message != "catalog unavailable" {
		t.Fatalf("expected the provider message, got %v", notices)
	}
}

func TestController_CatalogTransportErrorIsNonFatal(t *testing.T) {
	provider := &scriptedProvider{
		results: []catalog.Result{{}},
		errs:    []error{errors.New("connection refused")},
	}
	c, err := New(
		WithProvider(provider),
		WithSink(&recordingSink{}),
		WithSpreadsheet("sheet-1", ""),
		WithClock(fixedClock),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.LoadCatalog(context.Background(), "", 1); err == nil {
		t.Fatal("expected the transport error to propagate")
	}
	if len(c.Products()) != 0 {
		t.Fatal("expected an empty catalog after a first-load failure")
	}
	if len(c.TakeNotices()) != 1 {
		t.Fatal("expected a dismissible notice")
	}
	if c.State() != StateEditing {
		t.Fatal("catalog failures must not leave the editing state")
	}
}

func TestController_ResetReturnsToEditing(t *testing.T) {
	sink := &recordingSink{}
	c := newTestController(t, sink)
	fillValidDraft(c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.State() != StateSubmitted {
		t.Fatalf("expected %q, got %q", StateSubmitted, c.State())
	}

	c.Reset()
	if c.State() != StateEditing {
		t.Fatalf("expected %q after reset, got %q", StateEditing, c.State())
	}
	if len(c.Products()) == 0 {
		t.Fatal("reset should not drop the loaded catalog")
	}
}
