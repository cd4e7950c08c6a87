// Package assets embeds the stylesheet of the web front end.
package assets

import (
	_ "embed"
)

//go:embed static/styles.css
var embeddedCSS string

// GetEmbeddedCSS returns the embedded CSS content
func GetEmbeddedCSS() string {
	return embeddedCSS
}
