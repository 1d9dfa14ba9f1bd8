// Package middlewares holds the gin middleware that authenticates
// requests with a session token before any protocol logic runs.
package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"custodyserver/auth"
	"custodyserver/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userIDKey = "userID"

// SessionAuth verifies the session token and stores the subject user
// id in the request context. The token is read from the
// Authorization header (Bearer prefix optional); GET requests may
// carry it as ?token= instead. Other methods have no query fallback.
func SessionAuth(sessions *auth.SessionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if strings.HasPrefix(tokenString, "Bearer ") {
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		}
		if tokenString == "" && c.Request.Method == http.MethodGet {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "a valid token is missing",
			})
			return
		}

		userID, err := sessions.Verify(tokenString)
		if err != nil {
			kind := "unauthorized"
			if errors.Is(err, common.ErrTokenExpired) {
				kind = "token_expired"
			}
			logger.Warn("session verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   kind,
				"message": err.Error(),
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by SessionAuth.
func UserID(c *gin.Context) uint {
	v, _ := c.Get(userIDKey)
	id, _ := v.(uint)
	return id
}
