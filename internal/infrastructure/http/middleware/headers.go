package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// APIHeaders sets X-API-Version and Cache-Control: no-store on every response it wraps.
func APIHeaders(version string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-API-Version", version)
			h.Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds the response headers a JSON API needs. HSTS is only sent on
// requests that arrived over TLS, directly or via X-Forwarded-Proto.
func SecurityHeaders(isDevelopment bool) func(next http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return s.Handler
}
