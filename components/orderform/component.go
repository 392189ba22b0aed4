package orderform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/render"
)

// Component bundles the form page, the product search endpoint and the
// submission endpoint behind one set of options.
type Component struct {
	opts       Options
	definition form.Definition
	renderer   *render.PageRenderer

	formPath string
}

// New builds a component rooted at "/": the form at FormPath, the search API
// at ProductsPath and submissions at SubmitPath.
func New(fns ...OptionFn) (*Component, error) {
	return newComponent("", NewOptions(fns...))
}

func newComponent(basePath string, opts Options) (*Component, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Provider == nil {
		return nil, fmt.Errorf("orderform: missing catalog provider")
	}
	if opts.Sink == nil {
		return nil, fmt.Errorf("orderform: missing submission sink")
	}
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("orderform: missing spreadsheet id")
	}

	definition, err := form.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("orderform: load form definition: %w", err)
	}
	definition.Endpoint = mountPath(basePath, opts.SubmitPath)

	renderer, err := render.New(render.WithTheme(opts.Theme))
	if err != nil {
		return nil, fmt.Errorf("orderform: build renderer: %w", err)
	}

	return &Component{
		opts:       opts,
		definition: definition,
		renderer:   renderer,
		formPath:   mountPath(basePath, opts.FormPath),
	}, nil
}

// FormPath returns the resolved form page path.
func (c *Component) FormPath() string { return c.formPath }

// Definition returns the form definition the component renders.
func (c *Component) Definition() form.Definition { return c.definition }
