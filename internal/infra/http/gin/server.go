package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"findmeroom/internal/infra/config"
	"findmeroom/internal/infra/obs"
)

// Handlers groups the HTTP surfaces wired into the router.
type Handlers struct {
	Auth           AuthHTTP
	Property       PropertyHTTP
	Chat           ChatHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Property != nil {
		api.GET("/properties", h.Property.Search)
		api.GET("/properties/:id", h.Property.Get)
		api.POST("/properties", h.Property.Create)
		api.PUT("/properties/:id", h.Property.Update)
		api.DELETE("/properties/:id", h.Property.Delete)
		api.POST("/properties/:id/photos", h.Property.UploadPhoto)
		api.GET("/my-properties", h.Property.Mine)
	}
	if h.Chat != nil {
		api.POST("/chat", h.Chat.SendMessage)
		api.GET("/chat/conversations", h.Chat.ListConversations)
		api.GET("/chat/unread-count", h.Chat.UnreadCount)
		api.POST("/chat/mark-read", h.Chat.MarkRead)
		api.GET("/chat/:property_id", h.Chat.Thread)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
