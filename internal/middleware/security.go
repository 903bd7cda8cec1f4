package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hairstudio/salon/internal/ctxkeys"
)

// SecurityHeaders sets the Content-Security-Policy and the usual hardening headers.
// Scripts need the per-request nonce; Instagram is the only allowed frame source.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(r))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(r *http.Request) string {
	scriptSrc := "'self'"
	if nonce := GetNonce(r.Context()); nonce != "" {
		scriptSrc += fmt.Sprintf(" 'nonce-%s'", nonce)
	}

	imgSrc := "'self' data:"
	if origin := imageOrigin(r); origin != "" {
		imgSrc += " " + origin
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + scriptSrc,
		"style-src 'self'",
		"img-src " + imgSrc,
		"frame-src https://www.instagram.com",
		"form-action 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"object-src 'none'",
	}
	return strings.Join(directives, "; ")
}

// imageOrigin is the object storage origin images are served from, if any
func imageOrigin(r *http.Request) string {
	cfg := ctxkeys.Config(r.Context())
	if cfg == nil || cfg.StorageDriver != "s3" {
		return ""
	}
	if cfg.S3Endpoint != "" {
		return strings.TrimSuffix(cfg.S3Endpoint, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
}
