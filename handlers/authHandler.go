package handlers

import (
	"errors"
	"net/http"

	"custodyserver/auth"
	"custodyserver/common"
	"custodyserver/models"
	"custodyserver/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the user registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user with a bcrypt-hashed password. The
// duplicate-name check is the store's unique constraint, so two
// concurrent registrations with the same name yield one user.
func Register(c *gin.Context, st store.Store, logger *zap.Logger) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		malformed(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, logger, err)
		return
	}

	user := &models.User{Name: req.Name, PasswordHash: string(hash)}
	if err := st.CreateUser(c.Request.Context(), user); err != nil {
		fail(c, logger, err)
		return
	}

	logger.Info("user registered", zap.String("name", user.Name), zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{"message": "registered successfully"})
}

// Login authenticates with HTTP Basic credentials and returns a
// session token. Unknown user and wrong password produce the same
// 401 response.
func Login(c *gin.Context, st store.Store, sessions *auth.SessionService, logger *zap.Logger) {
	name, password, ok := c.Request.BasicAuth()
	if !ok || name == "" || password == "" {
		c.Header("WWW-Authenticate", `Basic realm="login required"`)
		fail(c, logger, common.ErrUnauthorized)
		return
	}

	user, err := st.FindUserByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.Header("WWW-Authenticate", `Basic realm="login required"`)
			fail(c, logger, common.ErrUnauthorized)
			return
		}
		fail(c, logger, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		c.Header("WWW-Authenticate", `Basic realm="login required"`)
		fail(c, logger, common.ErrUnauthorized)
		return
	}

	token, err := sessions.Issue(user.ID)
	if err != nil {
		fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
