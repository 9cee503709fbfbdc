package crudfields

import (
	"io/fs"

	vanilla "github.com/goliatone/go-crudfields/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the built-in CSS/JS bundle the vanilla renderer
// links, ready to mount behind an http.FileServer.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
