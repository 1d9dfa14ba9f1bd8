package handlers

import (
	"net/http"

	"custodyserver/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListUsers returns the registered user names. Password hashes are
// deliberately not part of the response shape.
func ListUsers(c *gin.Context, st store.Store, logger *zap.Logger) {
	users, err := st.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, logger, err)
		return
	}

	result := make([]gin.H, 0, len(users))
	for _, user := range users {
		result = append(result, gin.H{"name": user.Name})
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}
