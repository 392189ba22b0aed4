package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// themeContext is the template-facing projection of a go-theme renderer
// configuration: class tokens plus a ready-to-embed CSS custom-property block.
type themeContext struct {
	Name         string
	Variant      string
	Tokens       map[string]string
	CSSVarsStyle string
	Stylesheet   string
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	ctx := themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
	}
	ctx.CSSVarsStyle = cssVarsStyle(cfg.CSSVars)
	if cfg.AssetURL != nil {
		ctx.Stylesheet = strings.TrimSpace(cfg.AssetURL("intake.stylesheet"))
	}
	return ctx
}

func (t themeContext) asMap() map[string]any {
	tokens := make(map[string]any, len(t.Tokens))
	for key, value := range t.Tokens {
		tokens[key] = value
	}
	return map[string]any{
		"name":           t.Name,
		"variant":        t.Variant,
		"tokens":         tokens,
		"css_vars_style": t.CSSVarsStyle,
		"stylesheet":     t.Stylesheet,
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
