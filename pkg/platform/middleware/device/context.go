// Package device derives a readable device name from the User-Agent header
// and carries it on the request context for log lines.
package device

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyDisplayName struct{}

// Middleware parses the User-Agent once per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithDisplayName(r.Context(), ParseUserAgent(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDisplayName retrieves the device display name from the context.
func GetDisplayName(ctx context.Context) string {
	if name, ok := ctx.Value(contextKeyDisplayName{}).(string); ok {
		return name
	}
	return ""
}

// WithDisplayName injects a device display name into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithDisplayName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKeyDisplayName{}, name)
}

// ParseUserAgent renders a user agent as "<browser> on <platform>".
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}
	ua := useragent.New(raw)

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	platform := ua.OS()
	if platform == "" {
		platform = ua.Platform()
	}
	if platform == "" {
		platform = "Unknown OS"
	}

	return strings.TrimSpace(browser) + " on " + strings.TrimSpace(platform)
}
