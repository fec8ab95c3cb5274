package apiconnect

import "net/http"

// route mounts per-procedure handlers under "/<service>/".
func route(service string, handlers map[string]http.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
