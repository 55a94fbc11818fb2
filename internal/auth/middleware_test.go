package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type staticVerifier struct {
	uid      string
	lastSeen string
}

func (v *staticVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	v.lastSeen = idToken
	if v.uid == "" {
		return "", errors.New("verify id token: token is invalid")
	}
	return v.uid, nil
}

func newMiddlewareRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", Middleware(verifier), func(c *gin.Context) {
		uid, _ := UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})
	return router
}

func TestMiddlewareMissingHeader(t *testing.T) {
	verifier := &staticVerifier{uid: "u1"}
	router := newMiddlewareRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if verifier.lastSeen != "" {
		t.Fatalf("verifier consulted despite missing header")
	}
}

func TestMiddlewareStripsBearerPrefix(t *testing.T) {
	verifier := &staticVerifier{uid: "u1"}
	router := newMiddlewareRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if verifier.lastSeen != "abc123" {
		t.Fatalf("token seen by verifier = %q", verifier.lastSeen)
	}
}

func TestMiddlewareInvalidToken(t *testing.T) {
	router := newMiddlewareRouter(&staticVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
