package middleware

import (
	"net"
	"net/http"
	"strings"
)

// HSTS adds Strict-Transport-Security so browsers pin HTTPS for a year.
func HSTS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// IsHostAllowed validates a Host header value against the allowed hosts
// list. An empty list allows every host. Ports are ignored on both sides.
func IsHostAllowed(host string, allowedHosts []string) bool {
	if len(allowedHosts) == 0 {
		return true
	}

	hostname := canonicalHost(host)
	for _, allowed := range allowedHosts {
		if a := canonicalHost(allowed); a != "" && a == hostname {
			return true
		}
	}

	return false
}

// canonicalHost lowercases, trims, and strips any port and IPv6 brackets.
func canonicalHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.Trim(host, "[]")
}
