// Package pollbooth provides embedded assets for production builds.
package pollbooth

import (
	"embed"
	"io/fs"
)

//go:embed all:web/templates
var templateFS embed.FS

// TemplateFS returns the embedded template tree rooted at web/templates.
func TemplateFS() fs.FS {
	sub, err := fs.Sub(templateFS, "web/templates")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
