package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"wayfinder/pkg/response"
)

// RequireJWT validates a Bearer JWT (HS256) on the read API. With an
// empty secret authentication is disabled and the middleware is a no-op.
func RequireJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token", err)
			c.Abort()
			return
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Set("user", sub)
		}
		c.Next()
	}
}

// RequireVerificationToken guards the Overland ingest endpoint with the
// static verification token configured in the app.
func RequireVerificationToken(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearerToken(c) != expected {
			response.Error(c, http.StatusUnauthorized, "token not valid", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}
