// Package templates renders the HTML served by the web package.
//
// The .templ files are the sources; the _templ.go files next to them are
// generated with go generate and committed.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

// IndexData is the state shown on the upload page.
type IndexData struct {
	Version        string
	MaxFileSizeMB  int64
	Active         int
	MaxConcurrent  int
	ArchiveEnabled bool
}
