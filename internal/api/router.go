package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RouterConfig задаёт зависимости маршрутизатора.
type RouterConfig struct {
	Handler      *Handler
	Logger       *log.Entry
	AllowOrigins []string
}

// NewRouter собирает HTTP маршруты сервиса.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(cfg.Logger))

	// Cors
	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", HeaderRequestID},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.POST("/clients", cfg.Handler.CreateClient)
		api.GET("/clients", cfg.Handler.ListClients)

		api.POST("/products", cfg.Handler.CreateProduct)
		api.GET("/products", cfg.Handler.ListProducts)

		api.POST("/orders", cfg.Handler.CreateOrder)
		api.POST("/orders/by-name", cfg.Handler.CreateOrderByNames)
		api.GET("/orders", cfg.Handler.ListOrders)

		api.GET("/reports/top-clients", cfg.Handler.TopClients)
		api.GET("/reports/cities", cfg.Handler.ClientsByCity)
	}

	return router
}
