package handlers

import (
	"net/http"
	"strings"
)

// Static serves files under root without directory listings.
func Static(prefix, root string) http.Handler {
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
