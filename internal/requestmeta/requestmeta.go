// Package requestmeta provides request metadata helpers shared by the cookie writers.
package requestmeta

import (
	"net/http"
	"strings"
)

// IsHTTPS reports whether the request arrived over TLS, directly or behind a
// proxy that sets X-Forwarded-Proto.
func IsHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
