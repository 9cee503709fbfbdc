// Package template defines the template-engine seam renderers rely on,
// mirroring the github.com/goliatone/go-template engine contract so engines
// can be swapped without touching renderer code.
package template

import "io"

// TemplateRenderer mirrors the go-template engine contract.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
