// Package kwamugisha bundles the site's templates, dictionaries, static
// assets, catalog and markdown content into the binary.
package kwamugisha

import (
	"embed"
	"io/fs"
)

//go:embed templates locales public catalog content
var files embed.FS

// FS returns the embedded site files rooted at the repository root.
func FS() fs.FS { return files }
