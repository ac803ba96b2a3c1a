// Package web holds the embedded dashboard assets served under /app.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Assets returns the static asset tree rooted at its own directory, so
// /app/index.html maps to static/index.html.
func Assets() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
