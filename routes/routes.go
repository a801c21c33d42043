package routes

import (
	"github.com/gin-gonic/gin"

	"product-chatbot-backend/config"
	"product-chatbot-backend/controllers"
	"product-chatbot-backend/database"
	"product-chatbot-backend/middleware"
	"product-chatbot-backend/services"
)

// SetupRoutes wires services, controllers and routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	// Initialize services
	aiService := services.NewAIService(cfg.AI)

	var source services.CatalogProvider
	switch cfg.Catalog.Source {
	case "mongodb":
		source = services.NewMongoCatalogProvider(database.GetMongoDB())
	default:
		source = services.NewHTTPCatalogProvider(cfg.Catalog)
	}
	catalog := services.NewCachedCatalogProvider(source, cfg.Catalog.CacheTTL)

	chatbotService := services.NewChatbotService(aiService, catalog)

	// Initialize controllers
	chatbotController := controllers.NewChatbotController(chatbotService, catalog)
	wsController := controllers.NewWebSocketController(chatbotService)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	public.Use(middleware.RequestID())
	{
		public.POST("/chat", chatbotController.HandleChat)
		public.GET("/products", chatbotController.GetProducts)
		public.GET("/intents", chatbotController.GetSupportedIntents)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}
