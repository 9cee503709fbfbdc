package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-crudfields/pkg/assets"
)

// Options describe per-request data renderers can use to customise their
// output without mutating the field registry.
type Options struct {
	// Method overrides the HTTP method declared by the form. Renderers are
	// responsible for translating unsupported verbs (PATCH/PUT/DELETE) into
	// browser-friendly POST submissions plus a hidden _method input.
	Method string

	// Values pre-populates rendered controls keyed by field name, typically
	// the attributes of the record being edited.
	Values map[string]any

	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string][]string

	// Hidden lists extra hidden inputs (CSRF tokens, version fields) emitted
	// alongside the visible fields. See the HiddenField helpers.
	Hidden map[string]string

	// Theme carries resolved go-theme configuration (CSS variables, partial
	// overrides, asset URLs). Nil renders with the built-in styling.
	Theme *theme.RendererConfig

	// Assets tracks which field-type assets have already been emitted on the
	// page, so repeated controls include their CSS/JS once. Nil means the
	// renderer starts from an empty tracker for this render.
	Assets *assets.Tracker
}

// Value reads a prefilled value for a field, returning false when absent.
func (o Options) Value(name string) (any, bool) {
	if len(o.Values) == 0 {
		return nil, false
	}
	value, ok := o.Values[name]
	return value, ok
}

// FieldErrors returns the server-side messages recorded for a field.
func (o Options) FieldErrors(name string) []string {
	if len(o.Errors) == 0 {
		return nil
	}
	return o.Errors[name]
}
