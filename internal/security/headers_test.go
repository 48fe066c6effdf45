package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(HeadersMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(200, "ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Check security headers
	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}

	for header, expected := range headers {
		if got := w.Header().Get(header); got != expected {
			t.Errorf("%s = %q, want %q", header, got, expected)
		}
	}
}

func TestOriginGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		allowedHosts  []string
		requestOrigin string
		wantStatus    int
	}{
		{
			name:          "no origin header passes",
			requestOrigin: "",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "localhost passes",
			requestOrigin: "http://localhost:3000",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "loopback IP passes",
			requestOrigin: "http://127.0.0.1:8080",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "allowed host passes",
			allowedHosts:  []string{"app.example.com"},
			requestOrigin: "https://app.example.com",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "allowed host is case insensitive",
			allowedHosts:  []string{"App.Example.com"},
			requestOrigin: "https://app.example.com",
			wantStatus:    http.StatusOK,
		},
		{
			name:          "unknown origin rejected",
			requestOrigin: "https://evil.example.net",
			wantStatus:    http.StatusForbidden,
		},
		{
			name:          "unparseable origin rejected",
			requestOrigin: "http://[::1",
			wantStatus:    http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(OriginGuard(tc.allowedHosts...))
			router.GET("/test", func(c *gin.Context) {
				c.String(200, "ok")
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tc.requestOrigin != "" {
				req.Header.Set("Origin", tc.requestOrigin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestOriginGuardRejectionBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(OriginGuard())
	router.GET("/test", func(c *gin.Context) {
		c.String(200, "ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	body := w.Body.String()
	if !strings.Contains(body, "origin_not_allowed") {
		t.Errorf("body %q missing origin_not_allowed", body)
	}
}
