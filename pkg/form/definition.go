// Package form builds the render-side definition of the intake form from an
// embedded OpenAPI document: section grouping, labels, control types and the
// HTML-level constraints for each field.
package form

// Control is the simplified enum of form control kinds the renderer supports.
type Control string

const (
	ControlText   Control = "text"
	ControlEmail  Control = "email"
	ControlTel    Control = "tel"
	ControlDate   Control = "date"
	ControlNumber Control = "number"
	ControlSelect Control = "select"
)

// Option is a fixed choice for select controls.
type Option struct {
	Value string
	Label string
}

// Field is a single input on the rendered form.
type Field struct {
	Name        string
	Label       string
	Control     Control
	Required    bool
	Placeholder string
	Options     []Option
	MinLength   int
	MaxLength   int
	Pattern     string

	// Section and Order place the field on the page; both come from the
	// document's x-intake extensions.
	Section string
	Order   int
}

// Section is an ordered group of fields under a heading.
type Section struct {
	ID     string
	Title  string
	Fields []Field
}

// Definition is the complete intake form: where it submits and what it shows.
type Definition struct {
	Title    string
	Endpoint string
	Method   string
	Sections []Section
}

// Field looks a field up by name across all sections.
func (d Definition) Field(name string) (Field, bool) {
	for _, section := range d.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// FieldNames lists every field in page order.
func (d Definition) FieldNames() []string {
	var out []string
	for _, section := range d.Sections {
		for _, field := range section.Fields {
			out = append(out, field.Name)
		}
	}
	return out
}
