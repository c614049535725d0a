package api

import (
	"embed"
	"io/fs"
)

// dashboardStatic holds the embedded ops console assets.
//
//go:embed static
var dashboardStatic embed.FS

// dashboardFS is rooted at static/ so handlers address assets by name.
var dashboardFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(dashboardStatic, "static")
	if err != nil {
		return dashboardStatic
	}
	return sub
}()
