package listing

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Template names inside the bundle.
const (
	ListingTemplate = "templates/listing"
	FormTemplate    = "templates/form"
)

// TemplatesFS exposes the embedded template bundle. Overrides passed to
// WithTemplatesFS must use the same layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
