package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret, issuer string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "user-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newAuthTestServer(issuer string) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	var seenUserID string
	engine.POST("/protected", AuthMiddleware(testSecret, issuer), func(c *gin.Context) {
		seenUserID = c.GetString("user_id")
		c.Status(http.StatusNoContent)
	})
	return engine, &seenUserID
}

func doAuthRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	engine, userID := newAuthTestServer("")

	w := doAuthRequest(engine, signToken(t, testSecret, ""))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if *userID != "user-7" {
		t.Errorf("user_id = %q, want user-7", *userID)
	}
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	engine, _ := newAuthTestServer("")

	if w := doAuthRequest(engine, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", w.Code)
	}
	if w := doAuthRequest(engine, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}
	if w := doAuthRequest(engine, signToken(t, "other-secret", "")); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewarePinsIssuer(t *testing.T) {
	engine, _ := newAuthTestServer("video-hosting-service")

	if w := doAuthRequest(engine, signToken(t, testSecret, "video-hosting-service")); w.Code != http.StatusNoContent {
		t.Errorf("matching issuer: status = %d, want 204", w.Code)
	}
	if w := doAuthRequest(engine, signToken(t, testSecret, "someone-else")); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign issuer: status = %d, want 401", w.Code)
	}
	if w := doAuthRequest(engine, signToken(t, testSecret, "")); w.Code != http.StatusUnauthorized {
		t.Errorf("missing issuer claim: status = %d, want 401", w.Code)
	}
}
