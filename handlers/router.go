package handlers

import (
	"time"

	"custodyserver/auth"
	"custodyserver/middlewares"
	"custodyserver/store"
	"custodyserver/transfer"
	"custodyserver/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every route. Shared by main and the handler tests.
func NewRouter(st store.Store, sessions *auth.SessionService, svc *transfer.Service, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middlewares.SessionAuth(sessions, logger)

	router.POST("/api/register", func(c *gin.Context) {
		Register(c, st, logger)
	})
	router.POST("/api/login", func(c *gin.Context) {
		Login(c, st, sessions, logger)
	})
	router.GET("/api/users", func(c *gin.Context) {
		ListUsers(c, st, logger)
	})
	router.GET("/api/items", authRequired, func(c *gin.Context) {
		ListItems(c, st, logger)
	})
	router.POST("/api/item", authRequired, func(c *gin.Context) {
		CreateItem(c, st, logger)
	})
	router.DELETE("/api/itemdel", authRequired, func(c *gin.Context) {
		DeleteItem(c, st, logger)
	})
	router.POST("/api/send", authRequired, func(c *gin.Context) {
		SendItem(c, svc, logger)
	})
	router.POST("/api/receive", authRequired, func(c *gin.Context) {
		ReceiveItem(c, svc, logger)
	})
	router.GET("/api/receive", authRequired, func(c *gin.Context) {
		ReceiveItem(c, svc, logger)
	})

	return router
}
