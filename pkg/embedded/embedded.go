// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
	"io/fs"
)

// CatalogFile is the path of the bundled product catalog inside Files
const CatalogFile = "catalog/catalog.json"

// Files contains all files embedded in the Go binary:
// - catalog/catalog.json - the product catalog used when no CATALOG_PATH is configured
//
//go:embed catalog
var Files embed.FS

// Catalog returns the bundled product catalog
func Catalog() ([]byte, error) {
	return fs.ReadFile(Files, CatalogFile)
}
