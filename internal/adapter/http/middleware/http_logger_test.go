package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aq2208/pokedex-api/internal/logging"
	"github.com/gin-gonic/gin"
)

func TestRedactJSON(t *testing.T) {
	in := []byte(`{"token":"abc","nested":{"Authorization":"Bearer x","ok":1},"list":[{"secret":"s"}]}`)
	out := string(redactJSON(in))
	for _, leaked := range []string{"abc", "Bearer x", `"s"`} {
		if strings.Contains(out, leaked) {
			t.Errorf("redacted output still contains %s: %s", leaked, out)
		}
	}
	if !strings.Contains(out, `"ok":1`) {
		t.Errorf("non-secret field lost: %s", out)
	}
	if got := string(redactJSON([]byte("Hello, Pokemon"))); got != "Hello, Pokemon" {
		t.Errorf("non-JSON body should pass through, got %q", got)
	}
}

func TestAuthScheme(t *testing.T) {
	tests := map[string]string{
		"":                   "none",
		"Bearer secret123":   "Bearer",
		"secret123":          "malformed",
		"Bearer":             "malformed",
		"Basic dXNlcjpwdw==": "Basic",
	}
	for in, want := range tests {
		if got := authScheme(in); got != want {
			t.Errorf("authScheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoggingNeverRecordsCredential(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Logging(logging.NewLogger(&buf, "debug")), NewAuthz(testSecret).Require())
	r.GET("/types", func(c *gin.Context) { c.JSON(http.StatusOK, []string{"Bug"}) })

	for _, h := range []string{"Bearer secret123", "Bearer wrongtoken", "secret123", "wrongtoken"} {
		req := httptest.NewRequest(http.MethodGet, "/types", nil)
		req.Header.Set("Authorization", h)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	logs := buf.String()
	if strings.Contains(logs, testSecret) || strings.Contains(logs, "wrongtoken") {
		t.Errorf("credential leaked into logs: %s", logs)
	}
	if !strings.Contains(logs, `"auth_scheme":"Bearer"`) {
		t.Errorf("expected auth scheme in logs: %s", logs)
	}
	if !strings.Contains(logs, `"auth_scheme":"malformed"`) {
		t.Errorf("expected bare token to be logged as malformed: %s", logs)
	}
	if !strings.Contains(logs, `"status":401`) || !strings.Contains(logs, `"status":200`) {
		t.Errorf("expected both statuses logged: %s", logs)
	}
}

func TestLoggingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Logging(logging.NewLogger(&buf, "info")))
	r.GET("/pokemon", func(c *gin.Context) { c.String(http.StatusOK, "hi") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pokemon", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/pokemon", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id: got %q, want %q", got, "abc-123")
	}
}
