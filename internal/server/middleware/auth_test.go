package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/rolegate/internal/auth/authctx"
	"github.com/skillsenselab/rolegate/internal/server/middleware"
	"github.com/skillsenselab/rolegate/internal/token"
)

func newCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec(&token.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

// countingVerifier wraps a codec and records whether Verify was called.
type countingVerifier struct {
	codec *token.Codec
	calls int
}

func (v *countingVerifier) Verify(tokenString string) (*token.Claims, error) {
	v.calls++
	return v.codec.Verify(tokenString)
}

func newProtectedRouter(verifier middleware.TokenVerifier, handlerRan *bool, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	handlers := append([]gin.HandlerFunc{middleware.Restricted(verifier)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		*handlerRan = true
		claims, _ := authctx.Get(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})

	r.GET("/protected", handlers...)
	return r
}

func do(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return body["message"]
}

func TestRestricted_MissingTokenSkipsVerify(t *testing.T) {
	verifier := &countingVerifier{codec: newCodec(t)}
	handlerRan := false
	r := newProtectedRouter(verifier, &handlerRan)

	rr := do(r, nil)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := messageOf(t, rr); msg != "Token required" {
		t.Errorf("message: expected %q, got %q", "Token required", msg)
	}
	if verifier.calls != 0 {
		t.Errorf("Verify was called %d times for a missing token", verifier.calls)
	}
	if handlerRan {
		t.Error("handler ran despite missing token")
	}
}

func TestRestricted_GarbledTokenShortCircuits(t *testing.T) {
	verifier := &countingVerifier{codec: newCodec(t)}
	handlerRan := false
	r := newProtectedRouter(verifier, &handlerRan)

	rr := do(r, map[string]string{middleware.TokenHeader: "not.a.token"})

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := messageOf(t, rr); msg != "Token Invalid" {
		t.Errorf("message: expected %q, got %q", "Token Invalid", msg)
	}
	if handlerRan {
		t.Error("handler ran despite failed verification")
	}
}

func TestRestricted_ExpiredToken(t *testing.T) {
	codec := newCodec(t)
	handlerRan := false
	r := newProtectedRouter(codec, &handlerRan)

	past := time.Now().Add(-time.Hour)
	expired, err := codec.Sign(&token.Claims{
		Subject:  1,
		Username: "sue",
		RoleName: "student",
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(past),
		},
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	rr := do(r, map[string]string{middleware.TokenHeader: expired})

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if msg := messageOf(t, rr); msg != "Token Invalid" {
		t.Errorf("message: expected %q, got %q", "Token Invalid", msg)
	}
	if handlerRan {
		t.Error("handler ran on an expired token")
	}
}

func TestRestricted_ValidTokenAttachesClaims(t *testing.T) {
	codec := newCodec(t)
	handlerRan := false
	r := newProtectedRouter(codec, &handlerRan)

	signed, err := codec.Issue(7, "sue", "student")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rr := do(r, map[string]string{middleware.TokenHeader: signed})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !handlerRan {
		t.Fatal("handler did not run for a valid token")
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["username"] != "sue" {
		t.Errorf("claims not attached to context: %v", body)
	}
}

func TestOnly_RoleMismatch(t *testing.T) {
	codec := newCodec(t)
	handlerRan := false
	r := newProtectedRouter(codec, &handlerRan, middleware.Only("admin"))

	signed, err := codec.Issue(7, "sue", "student")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rr := do(r, map[string]string{middleware.TokenHeader: signed})

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if msg := messageOf(t, rr); msg != "This is not for you" {
		t.Errorf("message: expected %q, got %q", "This is not for you", msg)
	}
	if handlerRan {
		t.Error("handler ran despite role mismatch")
	}
}

func TestOnly_MatchingRoleProceeds(t *testing.T) {
	codec := newCodec(t)
	handlerRan := false
	r := newProtectedRouter(codec, &handlerRan, middleware.Only("student"))

	signed, err := codec.Issue(7, "sue", "student")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rr := do(r, map[string]string{middleware.TokenHeader: signed})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !handlerRan {
		t.Fatal("handler did not run for matching role")
	}
}

// The same token must pass one route's gate and fail another's.
func TestOnly_SameTokenDifferentRoutes(t *testing.T) {
	codec := newCodec(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/student", middleware.Restricted(codec), middleware.Only("student"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/admin", middleware.Restricted(codec), middleware.Only("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	signed, err := codec.Issue(7, "sue", "student")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for path, want := range map[string]int{"/student": http.StatusOK, "/admin": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		req.Header.Set(middleware.TokenHeader, signed)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, rr.Code)
		}
	}
}

func TestOnly_WithoutRestrictedRefuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlerRan := false
	r.GET("/misconfigured", middleware.Only("student"), func(c *gin.Context) {
		handlerRan = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/misconfigured", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if handlerRan {
		t.Error("handler ran without authentication stage")
	}
}
