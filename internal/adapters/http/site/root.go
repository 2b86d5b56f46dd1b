// Package site serves the embedded portfolio pages.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// pages maps clean URLs onto embedded page files.
var pages = map[string]string{
	"/":         "index.html",
	"/cv":       "cv.html",
	"/projects": "projects.html",
	"/blogs":    "blogs.html",
	"/contact":  "contact.html",
	"/hidden":   "hidden.html",
}

// Register attaches the portfolio page routes to mux. Pages are addressed
// without extensions; unknown paths under / fall through to 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, pageFS, page)
	})

	// Shared page assets (stylesheet etc.) live next to the pages.
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(pageFS))))
}
