// Package web embeds the single-page prototype builder UI.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
