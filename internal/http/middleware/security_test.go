package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func secured(opt SecurityOptions, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(pre...)
	r.Use(SecurityHeaders(opt))
	r.NoRoute(func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	r := secured(SecurityOptions{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/faq", nil))

	h := w.Header()
	for k, want := range map[string]string{
		"X-Content-Type-Options":        "nosniff",
		"X-Frame-Options":               "DENY",
		"Referrer-Policy":               "no-referrer",
		"Access-Control-Expose-Headers": "X-Request-ID, ETag, Idempotency-Replayed",
		"Permissions-Policy":            "",
		"Cache-Control":                 "",
		"Strict-Transport-Security":     "",
		"Cross-Origin-Resource-Policy":  "",
	} {
		if got := h.Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestSecurityHeaders_ExposeMergesWithoutDuplicates(t *testing.T) {
	r := secured(SecurityOptions{Expose: []string{"X-Chatbot-Fallback", "etag"}},
		func(c *gin.Context) {
			c.Header("Access-Control-Expose-Headers", "Content-Length, etag")
			c.Next()
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	want := "Content-Length, etag, X-Request-ID, Idempotency-Replayed, X-Chatbot-Fallback"
	if got := w.Header().Get("Access-Control-Expose-Headers"); got != want {
		t.Fatalf("expose = %q, want %q", got, want)
	}
}

func TestSecurityHeaders_NoStoreOnlyOnListedPaths(t *testing.T) {
	r := secured(SecurityOptions{NoStorePaths: []string{"/api/login", "/api/register/"}})

	for path, want := range map[string]string{
		"/api/login":        "no-store",
		"/api/register":     "no-store",
		"/api/login/extra":  "no-store",
		"/api/loginx":       "",
		"/api/gallery":      "",
		"/uploads/gallery/": "",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if got := w.Header().Get("Cache-Control"); got != want {
			t.Errorf("%s: Cache-Control = %q, want %q", path, got, want)
		}
	}
}

func TestSecurityHeaders_PolicyAndHSTS(t *testing.T) {
	r := secured(SecurityOptions{EnableHSTS: true, HSTSMaxAge: 24 * time.Hour, EnablePolicy: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("HSTS over plain HTTP: %q", got)
	}
	if w.Header().Get("Permissions-Policy") == "" || w.Header().Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("policy headers missing: %v", w.Header())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "HTTPS")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Strict-Transport-Security"); got != "max-age=86400; includeSubDomains" {
		t.Fatalf("forwarded https HSTS = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	w = httptest.NewRecorder()
	secured(SecurityOptions{EnableHSTS: true}).ServeHTTP(w, req)
	if got := w.Header().Get("Strict-Transport-Security"); got != "max-age=15552000; includeSubDomains" {
		t.Fatalf("default HSTS = %q", got)
	}
}
