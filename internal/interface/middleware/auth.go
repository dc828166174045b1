package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homechores/chorelog/pkg/helpers"
	"github.com/homechores/chorelog/pkg/response"
)

// Gin context keys for the authenticated identity.
const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userUsername"
	CtxEmailKey    = "userEmail"
)

// Auth is the single checkpoint run before every protected operation. It
// reads the token from the Authorization header (X-Auth-Token as a fallback),
// strips an optional "Bearer " prefix, verifies it, and attaches the decoded
// identity to the request context. Absent or invalid tokens abort with 401
// before anything downstream executes.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token = c.GetHeader("X-Auth-Token")
		}
		if token == "" {
			response.AbortMessage(c, http.StatusUnauthorized, "no token, authorization denied")
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortMessage(c, http.StatusUnauthorized, "token is not valid")
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}
