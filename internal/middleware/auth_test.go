package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/auth"
)

const testSecret = "test-secret"

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthGuard(testSecret), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	r.GET("/admin-only", AdminGuard(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func mustToken(t *testing.T, isAdmin bool, ttl time.Duration) string {
	t.Helper()
	token, err := auth.IssueToken(primitive.NewObjectID(), "someone@example.com", isAdmin, testSecret, ttl)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	return token
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthGuardMissingHeader(t *testing.T) {
	w := doRequest(testRouter(), "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", w.Code)
	}
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	for _, header := range []string{"garbage", "Basic abc", "Bearer"} {
		w := doRequest(testRouter(), header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for header %q, got %d", header, w.Code)
		}
	}
}

func TestAuthGuardInvalidToken(t *testing.T) {
	w := doRequest(testRouter(), "Bearer not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestAuthGuardExpiredToken(t *testing.T) {
	token := mustToken(t, false, -time.Minute)
	w := doRequest(testRouter(), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthGuardValidToken(t *testing.T) {
	token := mustToken(t, false, time.Hour)
	w := doRequest(testRouter(), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid token, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAdminGuardForbidsNonAdmin(t *testing.T) {
	token := mustToken(t, false, time.Hour)
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin on admin route, got %d", w.Code)
	}
}

func TestAdminGuardAllowsAdmin(t *testing.T) {
	token := mustToken(t, true, time.Hour)
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin on admin route, got %d", w.Code)
	}
}

func TestAdminGuardRejectsMissingTokenBeforeRoleCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/admin-only", nil)
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 (not 403) without a token, got %d", w.Code)
	}
}
