package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns header options for a JSON-only API: responses are
// never rendered in a browser, so framing and all content sources are
// denied outright.
func SecureOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	}
}

// NewSecure returns a middleware that adds the security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}
