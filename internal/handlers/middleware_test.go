package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blynk_bridge/internal/models"
	"blynk_bridge/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, secret string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(b)
}

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{}, opts, nil)
	r.POST("/secure", h.sharedSecretMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSharedSecretMiddleware_Errors(t *testing.T) {
	hash := mustHash(t, "s3cret")
	cases := []struct {
		name   string
		header string
		errMsg string
	}{
		{"missing header", "", "missing Authorization header"},
		{"invalid scheme", "Token abc", "invalid Authorization header format"},
		{"bearer without token", "Bearer", "invalid Authorization header format"},
		{"wrong secret", "Bearer nope", "invalid shared secret"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newMiddlewareOnlyRouter(Options{SharedSecretHash: hash})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.errMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.errMsg)
			}
		})
	}
}

func TestSharedSecretMiddleware_Passes(t *testing.T) {
	hash := mustHash(t, "s3cret")
	for name, tc := range map[string]struct {
		opts   Options
		header http.Header
	}{
		"no secret configured": {Options{}, http.Header{}},
		"correct secret":       {Options{SharedSecretHash: hash}, authHeader("s3cret")},
	} {
		t.Run(name, func(t *testing.T) {
			r := newMiddlewareOnlyRouter(tc.opts)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/secure", nil)
			req.Header = tc.header
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSharedSecret_OnlyGuardsWrites(t *testing.T) {
	s := &service.Service{
		Status:   &mockStatus{},
		Commands: &mockCommands{result: models.CommandResult{Success: true}},
	}
	r := newTestRouter(s, Options{SharedSecretHash: mustHash(t, "s3cret")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("read endpoint must stay open, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/trigger/smoke", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/trigger/smoke", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d", w.Code)
	}
}
