package form

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi/intake.yaml
var documentFS embed.FS

const (
	documentPath = "openapi/intake.yaml"

	// Namespaced extensions carrying presentation metadata, mirroring the
	// x-endpoint style used across our form tooling.
	sectionsExtensionKey = "x-intake-sections"
	fieldExtensionKey    = "x-intake"

	operationID = "submitOrder"
)

// Load parses the embedded intake document into a Definition.
func Load(ctx context.Context) (Definition, error) {
	raw, err := documentFS.ReadFile(documentPath)
	if err != nil {
		return Definition{}, fmt.Errorf("form: read embedded document: %w", err)
	}
	return build(ctx, raw)
}

// MustLoad panics when the embedded document cannot be parsed. The document
// ships with the binary, so a failure here is a build defect.
func MustLoad(ctx context.Context) Definition {
	def, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return def
}

func build(ctx context.Context, raw []byte) (Definition, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("form: load document: %w", err)
	}

	path, op := findOperation(doc, operationID)
	if op == nil {
		return Definition{}, fmt.Errorf("form: operation %q not found", operationID)
	}

	def := Definition{
		Title:    doc.Info.Title,
		Endpoint: path,
		Method:   "POST",
	}

	sections, err := sectionsFromExtension(op.Extensions[sectionsExtensionKey])
	if err != nil {
		return Definition{}, err
	}

	schema := requestSchema(op)
	if schema == nil {
		return Definition{}, errors.New("form: operation has no request schema")
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	bySection := make(map[string][]Field)
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		field := fieldFromSchema(name, ref.Value, required[name])
		bySection[field.Section] = append(bySection[field.Section], field)
	}

	for i := range sections {
		fields := bySection[sections[i].ID]
		sort.SliceStable(fields, func(a, b int) bool {
			if fields[a].Order != fields[b].Order {
				return fields[a].Order < fields[b].Order
			}
			return fields[a].Name < fields[b].Name
		})
		sections[i].Fields = fields
	}
	def.Sections = sections
	return def, nil
}

func findOperation(doc *openapi3.T, id string) (string, *openapi3.Operation) {
	if doc.Paths == nil {
		return "", nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{item.Get, item.Post, item.Put, item.Patch, item.Delete} {
			if op != nil && op.OperationID == id {
				return path, op
			}
		}
	}
	return "", nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "application/json"} {
		if mt, ok := op.RequestBody.Value.Content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range op.RequestBody.Value.Content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool) Field {
	field := Field{
		Name:     name,
		Label:    name,
		Control:  ControlText,
		Required: required,
		Pattern:  schema.Pattern,
	}
	if schema.MinLength > 0 {
		field.MinLength = int(schema.MinLength)
	}
	if schema.MaxLength != nil {
		field.MaxLength = int(*schema.MaxLength)
	}
	for _, raw := range schema.Enum {
		if value, ok := raw.(string); ok {
			field.Options = append(field.Options, Option{Value: value, Label: value})
		}
	}

	applyIntakeExtension(&field, schema.Extensions[fieldExtensionKey])
	return field
}

func applyIntakeExtension(field *Field, raw any) {
	ext, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if v, ok := stringValue(ext["section"]); ok {
		field.Section = v
	}
	if v, ok := stringValue(ext["label"]); ok {
		field.Label = v
	}
	if v, ok := stringValue(ext["placeholder"]); ok {
		field.Placeholder = v
	}
	if v, ok := stringValue(ext["control"]); ok {
		field.Control = Control(v)
	}
	if v, ok := intValue(ext["order"]); ok {
		field.Order = v
	}
}

func sectionsFromExtension(raw any) ([]Section, error) {
	entries, ok := raw.([]any)
	if !ok || len(entries) == 0 {
		return nil, errors.New("form: document is missing the x-intake-sections extension")
	}

	sections := make([]Section, 0, len(entries))
	for _, entry := range entries {
		attrs, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		var section Section
		if v, ok := stringValue(attrs["id"]); ok {
			section.ID = v
		}
		if v, ok := stringValue(attrs["title"]); ok {
			section.Title = v
		}
		if section.ID == "" {
			return nil, errors.New("form: section entry without an id")
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func stringValue(raw any) (string, bool) {
	v, ok := raw.(string)
	return v, ok && v != ""
}

func intValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(v)
		return parsed, err == nil
	default:
		return 0, false
	}
}
