package middleware

import "net/http"

// Envelope presets the response headers every API response carries, leaving
// alone any header an earlier middleware already set.
func Envelope(headers map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				if h.Get(k) == "" {
					h.Set(k, v)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
