// Package web holds the static landing page served at /.
package web

import (
	_ "embed"
)

//go:embed static/index.html
var indexHTML []byte

// IndexHTML returns the landing page.
func IndexHTML() []byte {
	return indexHTML
}
