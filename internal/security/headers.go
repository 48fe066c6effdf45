// Package security provides security middleware for the AML API surface.
package security

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeadersMiddleware adds security headers to all responses
func HeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")

		// Enable XSS filter
		c.Header("X-XSS-Protection", "1; mode=block")

		// Referrer policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Content Security Policy
		// JSON-only API: nothing to load, nothing to frame
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// Permissions Policy
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}

// OriginGuard rejects browser requests from unexpected origins. MCP clients
// over HTTP do not send an Origin header, so requests without one pass
// through; requests carrying one must match localhost or an explicitly
// allowed host. This blocks DNS-rebinding attacks against locally deployed
// servers.
func OriginGuard(allowedHosts ...string) gin.HandlerFunc {
	allowed := map[string]bool{
		"localhost": true,
		"127.0.0.1": true,
		"::1":       true,
	}
	for _, h := range allowedHosts {
		allowed[strings.ToLower(h)] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		u, err := url.Parse(origin)
		if err != nil || !allowed[strings.ToLower(u.Hostname())] {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "origin_not_allowed",
				"message": "Origin " + origin + " is not allowed",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
