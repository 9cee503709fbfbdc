package vanilla

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-crudfields/pkg/fields"
	"github.com/goliatone/go-crudfields/pkg/render"
)

// fieldContext flattens a field descriptor plus per-request state into the
// map the field templates consume.
func (r *Renderer) fieldContext(field fields.Field, options render.Options) map[string]any {
	value, _ := options.Value(field.Name)
	errs := options.FieldErrors(field.Name)

	ctx := map[string]any{
		"name":       field.Name,
		"id":         controlID(field.Name),
		"type":       field.Type,
		"input_type": inputType(field.Type),
		"label":      field.Label,
		"value":      valueString(value),
		"checked":    truthy(value),
		"errors":     errs,
		"invalid":    len(errs) > 0,
		"required":   attrBool(field, "required"),
		"attrs":      field.Attributes,
	}

	if placeholder, ok := field.Attr("placeholder"); ok {
		ctx["placeholder"] = valueString(placeholder)
	}
	if hint, ok := field.Attr("hint"); ok {
		ctx["hint"] = r.sanitizeHTML(valueString(hint))
	}

	switch field.Type {
	case fields.TypeSelect:
		ctx["options"] = selectOptions(field, value)
		ctx["multiple"] = attrBool(field, "multiple")
	case fields.TypeTextarea:
		ctx["rows"] = attrString(field, "rows", "5")
	case fields.TypeNumber:
		ctx["step"] = attrString(field, "step", "")
		ctx["min"] = attrString(field, "min", "")
		ctx["max"] = attrString(field, "max", "")
	case fields.TypeUpload:
		ctx["accept"] = attrString(field, "accept", "")
		ctx["multiple"] = attrBool(field, "multiple")
	case fields.TypeJSON:
		ctx["value"] = jsonValue(value)
	}

	return ctx
}

func (r *Renderer) sanitizeHTML(markup string) string {
	if r.sanitizer == nil || markup == "" {
		return markup
	}
	return r.sanitizer.Sanitize(markup)
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + trimmed
}

// inputType maps schema-flavored field types onto HTML input types. Types
// with dedicated templates never reach the text fallback, so only the
// text-like variants matter here.
func inputType(fieldType string) string {
	switch fieldType {
	case "email":
		return "email"
	case "password":
		return "password"
	case "url":
		return "url"
	case "date":
		return "date"
	case "datetime":
		return "datetime-local"
	default:
		return "text"
	}
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		// Request decoding yields float64 for every JSON number; render
		// integral values without the trailing ".0" noise.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonValue renders structured values as indented JSON for the json control's
// textarea. Strings pass through as-is so already-encoded payloads keep their
// formatting.
func jsonValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return valueString(v)
		}
		return string(encoded)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on", "yes":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func attrBool(field fields.Field, key string) bool {
	raw, ok := field.Attr(key)
	if !ok {
		return false
	}
	return truthy(raw)
}

func attrString(field fields.Field, key, fallback string) string {
	raw, ok := field.Attr(key)
	if !ok {
		return fallback
	}
	if s := valueString(raw); s != "" {
		return s
	}
	return fallback
}

// selectOptions normalises the "options" attribute into value/label pairs.
// Supported shapes: a list of strings, a list of {value,label} maps, or a
// value->label map (rendered in sorted value order).
func selectOptions(field fields.Field, selected any) []map[string]any {
	raw, ok := field.Attr("options")
	if !ok {
		return nil
	}
	current := valueString(selected)

	switch shaped := raw.(type) {
	case []string:
		out := make([]map[string]any, 0, len(shaped))
		for _, entry := range shaped {
			out = append(out, selectOption(entry, entry, current))
		}
		return out
	case []any:
		out := make([]map[string]any, 0, len(shaped))
		for _, entry := range shaped {
			switch item := entry.(type) {
			case map[string]any:
				value := valueString(item["value"])
				label := valueString(item["label"])
				if label == "" {
					label = value
				}
				out = append(out, selectOption(value, label, current))
			default:
				value := valueString(item)
				out = append(out, selectOption(value, value, current))
			}
		}
		return out
	case map[string]any:
		values := make([]string, 0, len(shaped))
		for value := range shaped {
			values = append(values, value)
		}
		sort.Strings(values)
		out := make([]map[string]any, 0, len(values))
		for _, value := range values {
			out = append(out, selectOption(value, valueString(shaped[value]), current))
		}
		return out
	case map[string]string:
		values := make([]string, 0, len(shaped))
		for value := range shaped {
			values = append(values, value)
		}
		sort.Strings(values)
		out := make([]map[string]any, 0, len(values))
		for _, value := range values {
			out = append(out, selectOption(value, shaped[value], current))
		}
		return out
	default:
		return nil
	}
}

func selectOption(value, label, current string) map[string]any {
	return map[string]any{
		"value":    value,
		"label":    label,
		"selected": current != "" && value == current,
	}
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

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
