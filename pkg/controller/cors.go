package controller

import (
	"net/http"
	"slices"
)

// wildcardOrigin allows any origin.
const wildcardOrigin = "*"

// WithCORS returns a middleware that sets CORS headers on every response and
// short-circuits OPTIONS preflight requests with 204 No Content.
//
// An empty origin list, or one containing "*", allows any origin. Otherwise the
// request's Origin is echoed back only when it is listed; unlisted origins get
// no Access-Control-Allow-Origin header and browsers block the response.
func WithCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, wildcardOrigin)
	origins := slices.Clone(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			switch origin := r.Header.Get("Origin"); {
			case allowAny:
				h.Set("Access-Control-Allow-Origin", wildcardOrigin)
			case origin != "" && slices.Contains(origins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Request-Id")
			h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

			// handle preflight requests quickly
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
