package server

import (
	"embed"
	"io/fs"
)

//go:embed static/index.html static/app.js
var staticFiles embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
