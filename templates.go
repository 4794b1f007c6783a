package fileview

import (
	"io/fs"

	"github.com/goliatone/go-fileview/pkg/icons"
	"github.com/goliatone/go-fileview/pkg/renderers/listing"
)

// EmbeddedTemplates exposes the built-in listing and form templates so
// callers can reuse or extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return listing.TemplatesFS()
}

// DefaultIcons returns the embedded file type icon set.
func DefaultIcons() *icons.Set {
	return icons.Default()
}
