package render

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/draft"
	"github.com/goliatone/go-intake/pkg/form"
)

func testDefinition(t *testing.T) form.Definition {
	t.Helper()
	def, err := form.Load(context.Background())
	if err != nil {
		t.Fatalf("form.Load: %v", err)
	}
	return def
}

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
				{ID: "s1", SizeValue: 1, Price: 1299},
			},
		},
	}
}

func TestRenderPage_SectionsAndFields(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := r.RenderPage(testDefinition(t), PageData{Products: testProducts()})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	page := string(out)

	for _, heading := range []string{
		"Device Information", "Personal Information", "Billing Address",
		"Banking Details", "Card Details",
	} {
		if !strings.Contains(page, heading) {
			t.Fatalf("page is missing section heading %q", heading)
		}
	}
	for _, name := range draft.Fields {
		if !strings.Contains(page, `name="`+name+`"`) {
			t.Fatalf("page is missing control for %s", name)
		}
	}
	if !strings.Contains(page, `action="/api/orders"`) {
		t.Fatal("form action should target the submit endpoint")
	}
	if !strings.Contains(page, "iPhone 13") {
		t.Fatal("product options should list catalog titles")
	}
}

func TestRenderPage_StickyValuesAndErrors(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	products := testProducts()
	data := PageData{
		Values: map[string]string{
			draft.FieldFirstName: "Ada",
			draft.FieldProduct:   "iphone-13",
			draft.FieldStorage:   "s256",
		},
		Errors: map[string]string{
			draft.FieldEmail: "Email is required",
		},
		Notices:  []Notice{{Level: "error", Message: "Could not load products."}},
		Products: products,
		Active:   &products[0],
	}

	out, err := r.RenderPage(testDefinition(t), data)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, `value="Ada"`) {
		t.Fatal("expected sticky first name value")
	}
	if !strings.Contains(page, "Email is required") {
		t.Fatal("expected the inline email error")
	}
	if !strings.Contains(page, "Could not load products.") {
		t.Fatal("expected the page notice")
	}
	if !strings.Contains(page, "256 GB") || !strings.Contains(page, "1 TB") {
		t.Fatal("expected formatted storage option labels")
	}
	if !strings.Contains(page, "Sierra Blue") {
		t.Fatal("expected colour options from the active product")
	}
}

func TestRenderPage_SanitizesCatalogStrings(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	products := []catalog.Product{{
		ID:    "evil",
		Title: `Phone <script>alert("x")</script>`,
	}}
	out, err := r.RenderPage(testDefinition(t), PageData{Products: products})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatal("catalog markup must not survive sanitation")
	}
}

func TestRenderSuccess_CarriesReference(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "default",
		Variant: "light",
		Tokens:  map[string]string{"page": "intake-page"},
		CSSVars: map[string]string{"--intake-accent": "#0055aa"},
	}
	r, err := New(WithTheme(cfg))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := r.RenderSuccess(testDefinition(t), "ref-1234", "/order")
	if err != nil {
		t.Fatalf("RenderSuccess: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "ref-1234") {
		t.Fatal("success page must show the order reference")
	}
	if !strings.Contains(page, `href="/order"`) {
		t.Fatal("success page should link back to the form")
	}
	if !strings.Contains(page, "--intake-accent: #0055aa;") {
		t.Fatal("theme CSS vars should be embedded")
	}
	if !strings.Contains(page, "intake-page") {
		t.Fatal("theme tokens should drive page classes")
	}
}
