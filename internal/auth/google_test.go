package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/users"
)

func TestStateStoreConsumeOnce(t *testing.T) {
	store := newStateStore()
	store.put("s1", time.Now().Add(time.Minute))

	if !store.consume("s1") {
		t.Fatal("first consume must succeed")
	}
	if store.consume("s1") {
		t.Fatal("second consume must fail")
	}
}

func TestStateStoreExpired(t *testing.T) {
	store := newStateStore()
	store.put("s1", time.Now().Add(-time.Second))

	if store.consume("s1") {
		t.Fatal("expired state must be rejected")
	}
}

func TestAppendToken(t *testing.T) {
	out, err := appendToken("https://app.example.com/auth?next=%2Fdashboard", "tok123")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if !strings.Contains(out, "token=tok123") {
		t.Fatalf("token missing from %q", out)
	}
	if !strings.Contains(out, "next=%2Fdashboard") {
		t.Fatalf("existing query must survive: %q", out)
	}

	if _, err := appendToken("", "tok"); err == nil {
		t.Fatal("empty redirect url must error")
	}
}

func TestStartRejectsUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("", "", "", "", users.NewMemoryRepo())

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestCallbackRejectsMissingParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewGoogleService("id", "secret", "http://localhost/cb", "http://localhost/ui", users.NewMemoryRepo())

	router := gin.New()
	svc.RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
