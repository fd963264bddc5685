package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cetime-core/internal/app/config"
)

const testSecret = "secret-de-test"

func signTestToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}
	middleware := NewJWTMiddleware(cfg)

	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.Handler()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": CurrentUserID(c),
			"role":    CurrentUserRole(c),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	r := newTestRouter()
	token := signTestToken(t, testSecret, Claims{
		UserID: 42,
		Role:   "agent",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Le rôle est normalisé en majuscules dans le contexte
	assert.Contains(t, w.Body.String(), `"role":"AGENT"`)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_MISSING")

	w = doRequest(r, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_MISSING")
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	r := newTestRouter()

	token := signTestToken(t, "autre-secret", Claims{UserID: 1, Role: "CLIENT"})
	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	r := newTestRouter()
	token := signTestToken(t, testSecret, Claims{
		UserID: 1,
		Role:   "CLIENT",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name    string
		guard   gin.HandlerFunc
		role    string
		allowed bool
	}{
		{"admin sur RequireAdmin", RequireAdmin(), "ADMIN", true},
		{"agent sur RequireAdmin", RequireAdmin(), "AGENT", false},
		{"agent sur RequireAgent", RequireAgent(), "AGENT", true},
		{"alias employee sur RequireAgent", RequireAgent(), "EMPLOYEE", true},
		{"client sur RequireAgent", RequireAgent(), "CLIENT", false},
		{"admin sur RequireAgentOrAdmin", RequireAgentOrAdmin(), "ADMIN", true},
		{"client sur RequireClient", RequireClient(), "CLIENT", true},
		{"admin sur RequireClient", RequireClient(), "ADMIN", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.guard)
			token := signTestToken(t, testSecret, Claims{
				UserID: 1,
				Role:   tt.role,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			})

			w := doRequest(r, "Bearer "+token)
			if tt.allowed {
				assert.Equal(t, http.StatusOK, w.Code)
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code)
				assert.Contains(t, w.Body.String(), "FORBIDDEN_ROLE")
			}
		})
	}
}
