package orderform

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-intake/pkg/catalog"
	"github.com/goliatone/go-intake/pkg/draft"
	"github.com/goliatone/go-intake/pkg/intake"
	"github.com/goliatone/go-intake/pkg/render"
)

// HTTPError lets a guard control the response status of a rejection.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// formHandler renders the order form page. Each request gets its own
// controller; the catalog is loaded fresh and a load failure degrades to a
// dismissible notice on the page.
func (c *Component) formHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if !c.passGuard(w, r) {
			return
		}

		ctrl, err := c.newController()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		_ = ctrl.LoadCatalog(r.Context(), "", 1)

		page, err := c.renderer.RenderPage(c.definition, render.PageData{
			Values:   ctrl.Draft().Values(),
			Notices:  pageNotices(ctrl.TakeNotices()),
			Products: ctrl.Products(),
		})
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeHTML(w, r, http.StatusOK, page)
	})
}

// productsHandler proxies product search for the device select. Responses use
// the catalog envelope so the page script can surface backend messages.
func (c *Component) productsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if !c.passGuard(w, r) {
			return
		}

		query := r.URL.Query().Get(c.opts.SearchParam)
		page := parseInt(r.URL.Query().Get(c.opts.PageParam))
		if page <= 0 {
			page = 1
		}
		limit := clampLimit(parseInt(r.URL.Query().Get(c.opts.LimitParam)), c.opts)

		result, err := c.opts.Provider.FetchProducts(r.Context(), query, page, limit)
		status := http.StatusOK
		if err != nil {
			status = http.StatusBadGateway
			result = catalog.Result{Message: "could not load products"}
		}
		if result.Data == nil {
			result.Data = []catalog.Product{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if r.Method == http.MethodHead {
			return
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(result)
	})
}

// submitHandler accepts the posted form. Fields are applied in canonical
// order so the product selection lands before its dependent colour and
// storage values; a validation failure re-renders the page with sticky values
// and per-field messages, a sink failure re-renders with the backend's notice,
// and success renders the confirmation page.
func (c *Component) submitHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if !c.passGuard(w, r) {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		ctrl, err := c.newController()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		loadErr := ctrl.LoadCatalog(r.Context(), "", 1)

		for _, name := range draft.Fields {
			if values, ok := r.PostForm[name]; ok && len(values) > 0 {
				ctrl.SetField(name, values[0])
			}
		}
		if loadErr != nil {
			c.renderEditing(w, r, ctrl, http.StatusBadGateway)
			return
		}

		reference, err := ctrl.Submit(r.Context())
		if err != nil {
			c.renderEditing(w, r, ctrl, statusForSubmitError(err))
			return
		}

		page, err := c.renderer.RenderSuccess(c.definition, reference, c.formPath)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		writeHTML(w, r, http.StatusOK, page)
	})
}

// renderEditing re-renders the form page with the draft's current values,
// field errors and pending notices.
func (c *Component) renderEditing(w http.ResponseWriter, r *http.Request, ctrl *intake.Controller, status int) {
	data := render.PageData{
		Values:   ctrl.Draft().Values(),
		Errors:   ctrl.FieldErrors(),
		Notices:  pageNotices(ctrl.TakeNotices()),
		Products: ctrl.Products(),
	}
	if active, ok := ctrl.ActiveProduct(); ok {
		data.Active = &active
	}

	page, err := c.renderer.RenderPage(c.definition, data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, r, status, page)
}

func (c *Component) newController() (*intake.Controller, error) {
	return intake.New(
		intake.WithProvider(c.opts.Provider),
		intake.WithSink(c.opts.Sink),
		intake.WithSpreadsheet(c.opts.SpreadsheetID, c.opts.SheetRange),
		intake.WithPageSize(c.opts.MaxLimit),
		intake.WithClock(c.opts.Now),
	)
}

func (c *Component) passGuard(w http.ResponseWriter, r *http.Request) bool {
	if c.opts.Guard == nil {
		return true
	}
	if err := c.opts.Guard(r); err != nil {
		writeGuardError(w, err)
		return false
	}
	return true
}

func statusForSubmitError(err error) int {
	var validationErr *intake.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, intake.ErrSubmitInFlight):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func pageNotices(notices []intake.Notice) []render.Notice {
	if len(notices) == 0 {
		return nil
	}
	out := make([]render.Notice, 0, len(notices))
	for _, n := range notices {
		out = append(out, render.Notice{Level: string(n.Level), Message: n.Message})
	}
	return out
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
