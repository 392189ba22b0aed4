// Package render produces the server-rendered HTML pages of the order intake
// form: the five-section form itself and the post-submission success page.
package render

import (
	"embed"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-intake/internal/template"
	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/draft"
	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/payload"
)

//go:embed templates
var templatesFS embed.FS

const (
	pageTemplate    = "templates/intake.html"
	successTemplate = "templates/success.html"
)

// Notice is a dismissible page-level message with a severity level.
type Notice struct {
	Level   string
	Message string
}

// PageData carries everything one render of the form page needs. Values and
// Errors are keyed by canonical field name; Products is the loaded catalog;
// Active is the resolved product for the current selection, nil when none.
type PageData struct {
	Values  map[string]string
	Errors  map[string]string
	Notices []Notice

	Products []catalog.Product
	Active   *catalog.Product
}

// Options configure a PageRenderer.
type Options struct {
	Engine *template.Engine
	Theme  *theme.RendererConfig
}

// Option mutates Options before construction.
type Option func(*Options)

// WithEngine injects a custom template engine, e.g. one loading overridden
// templates from disk.
func WithEngine(engine *template.Engine) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Engine = engine
	}
}

// WithTheme applies a resolved go-theme renderer configuration to both pages.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

// PageRenderer renders the intake pages from the embedded template bundle.
type PageRenderer struct {
	engine *template.Engine
	theme  themeContext
}

// New constructs a renderer, defaulting to the embedded templates.
func New(fns ...Option) (*PageRenderer, error) {
	var opts Options
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}

	engine := opts.Engine
	if engine == nil {
		var err error
		engine, err = template.New(template.WithFS(templatesFS))
		if err != nil {
			return nil, fmt.Errorf("render: build engine: %w", err)
		}
	}

	return &PageRenderer{
		engine: engine,
		theme:  buildThemeContext(opts.Theme),
	}, nil
}

// RenderPage renders the full form. Catalog-supplied display strings are
// sanitized before they reach the template.
func (r *PageRenderer) RenderPage(def form.Definition, data PageData) ([]byte, error) {
	if r == nil || r.engine == nil {
		return nil, fmt.Errorf("render: renderer is not initialised")
	}

	sections := make([]map[string]any, 0, len(def.Sections))
	for _, section := range def.Sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			fields = append(fields, r.fieldContext(field, data))
		}
		sections = append(sections, map[string]any{
			"id":     section.ID,
			"title":  section.Title,
			"fields": fields,
		})
	}

	notices := make([]map[string]any, 0, len(data.Notices))
	for _, notice := range data.Notices {
		notices = append(notices, map[string]any{
			"level":   notice.Level,
			"message": notice.Message,
		})
	}

	out, err := r.engine.RenderTemplate(pageTemplate, map[string]any{
		"title":    def.Title,
		"endpoint": def.Endpoint,
		"method":   def.Method,
		"sections": sections,
		"notices":  notices,
		"theme":    r.theme.asMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("render: form page: %w", err)
	}
	return []byte(out), nil
}

// RenderSuccess renders the post-submission page carrying the order reference.
func (r *PageRenderer) RenderSuccess(def form.Definition, reference, formPath string) ([]byte, error) {
	if r == nil || r.engine == nil {
		return nil, fmt.Errorf("render: renderer is not initialised")
	}
	out, err := r.engine.RenderTemplate(successTemplate, map[string]any{
		"title":     def.Title,
		"reference": reference,
		"form_path": formPath,
		"theme":     r.theme.asMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("render: success page: %w", err)
	}
	return []byte(out), nil
}

// fieldContext builds the template view of one field, resolving the dependent
// device selects against the loaded catalog.
func (r *PageRenderer) fieldContext(field form.Field, data PageData) map[string]any {
	value := data.Values[field.Name]

	options := fieldOptions(field, data)
	optionMaps := make([]map[string]any, 0, len(options))
	for _, opt := range options {
		optionMaps = append(optionMaps, map[string]any{
			"value":    opt.Value,
			"label":    opt.Label,
			"selected": opt.Value == value && value != "",
		})
	}

	return map[string]any{
		"name":        field.Name,
		"label":       field.Label,
		"control":     string(field.Control),
		"required":    field.Required,
		"placeholder": field.Placeholder,
		"minlength":   field.MinLength,
		"maxlength":   field.MaxLength,
		"pattern":     field.Pattern,
		"value":       value,
		"error":       data.Errors[field.Name],
		"options":     optionMaps,
	}
}

// fieldOptions returns the selectable choices for a field. The device selects
// derive theirs from the catalog: products for the model field, the active
// product's own option lists for colour and storage. Everything else uses the
// options declared in the form definition.
func fieldOptions(field form.Field, data PageData) []form.Option {
	switch field.Name {
	case draft.FieldProduct:
		out := make([]form.Option, 0, len(data.Products))
		for _, product := range data.Products {
			out = append(out, form.Option{Value: product.ID, Label: sanitizeLabel(product.Title)})
		}
		return out
	case draft.FieldColor:
		if data.Active == nil {
			return nil
		}
		out := make([]form.Option, 0, len(data.Active.ColorOptions))
		for _, color := range data.Active.ColorOptions {
			out = append(out, form.Option{Value: color.ID, Label: sanitizeLabel(color.ID)})
		}
		return out
	case draft.FieldStorage:
		if data.Active == nil {
			return nil
		}
		out := make([]form.Option, 0, len(data.Active.StorageOptions))
		for _, storage := range data.Active.StorageOptions {
			out = append(out, form.Option{
				Value: storage.ID,
				Label: payload.FormatStorage(storage.SizeValue),
			})
		}
		return out
	default:
		return field.Options
	}
}
