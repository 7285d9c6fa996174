package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(secret string) *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireJWT(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("user")})
	})
	return r
}

func signToken(t *testing.T, secret, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func getWithAuth(r *gin.Engine, url, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireJWT(t *testing.T) {
	const secret = "test-secret"
	r := protectedRouter(secret)

	t.Run("valid token passes and exposes subject", func(t *testing.T) {
		w := getWithAuth(r, "/protected", "Bearer "+signToken(t, secret, "alice"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := getWithAuth(r, "/protected", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		w := getWithAuth(r, "/protected", "Bearer "+signToken(t, "other-secret", "alice"))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		w := getWithAuth(r, "/protected", "Bearer "+signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty secret disables auth", func(t *testing.T) {
		open := protectedRouter("")
		w := getWithAuth(open, "/protected", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireVerificationToken(t *testing.T) {
	r := gin.New()
	r.POST("/overland", RequireVerificationToken("overlandtoken"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"result": "ok"})
	})

	post := func(authorization string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/overland", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, post("Bearer overlandtoken").Code)
	assert.Equal(t, http.StatusUnauthorized, post("Bearer wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, post("").Code)
	assert.Equal(t, http.StatusUnauthorized, post("overlandtoken").Code, "scheme prefix is required")
}
