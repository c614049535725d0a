// Package site serves the embedded arena console, the single page UI
// for picking contenders, submitting a prompt and reading the outcome.
package site

import (
	"context"
	"net/http"
)

// Register attaches the console routes to mux. The console owns the
// root path; more specific routes registered on the same mux still win.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/", http.FileServer(FS()))
}
