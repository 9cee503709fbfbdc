package render

import (
	"context"
	"strings"

	"github.com/goliatone/go-crudfields/pkg/fields"
)

// Form is the unit renderers consume: one operation's ordered field list plus
// the submission target.
type Form struct {
	// Operation names the registry context this form was built from (create,
	// update, ...).
	Operation string

	// Title is the human heading for the form; optional.
	Title string

	// Action is the submission URL.
	Action string

	// Method is the HTTP verb declared for the save request. Renderers
	// translate non-browser verbs into POST plus a hidden _method input.
	Method string

	// Fields lists the descriptors in registry order.
	Fields []fields.Field
}

// Renderer converts a Form into a byte representation (HTML by default).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options Options) ([]byte, error)
}

// EffectiveMethod resolves the verb a renderer should submit with, preferring
// the per-request override and defaulting to POST.
func EffectiveMethod(form Form, options Options) string {
	if method := strings.TrimSpace(options.Method); method != "" {
		return strings.ToUpper(method)
	}
	if method := strings.TrimSpace(form.Method); method != "" {
		return strings.ToUpper(method)
	}
	return "POST"
}
