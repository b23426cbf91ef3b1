package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRequest(t *testing.T, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, "/api/public/barbearia-x", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	c.Request = req

	CORSMiddleware()(c)
	return w
}

func TestCORSEchoesOrigin(t *testing.T) {
	w := corsRequest(t, http.MethodGet, "https://painel.trimly.app")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://painel.trimly.app" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := corsRequest(t, http.MethodOptions, "https://painel.trimly.app")

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != corsAllowMethods {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != corsMaxAge {
		t.Errorf("Max-Age = %q", got)
	}
}

func TestCORSWithoutOriginAddsNothing(t *testing.T) {
	w := corsRequest(t, http.MethodGet, "")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty", got)
	}
}
