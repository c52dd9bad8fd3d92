// Package web serves the embedded single-page client.
package web

import (
	"embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed index.html app.js style.css
var assets embed.FS

// Mount registers the static client on the router. Unknown paths fall
// back to index.html so client-side navigation keeps working; API routes
// registered on the same router always win.
func Mount(r chi.Router) {
	fileServer := http.FileServer(http.FS(assets))

	r.Get("/", serveIndex)
	r.Get("/app.js", fileServer.ServeHTTP)
	r.Get("/style.css", fileServer.ServeHTTP)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			serveIndex(w, req)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	index, err := assets.ReadFile("index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}
