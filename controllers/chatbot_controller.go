package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-chatbot-backend/models"
	"product-chatbot-backend/services"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
	catalog        services.CatalogProvider
}

func NewChatbotController(chatbotService *services.ChatbotService, catalog services.CatalogProvider) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
		catalog:        catalog,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if req.Channel == "" {
		req.Channel = models.ChannelWeb
	}

	response := cc.chatbotService.ProcessMessage(c.Request.Context(), req)
	c.JSON(http.StatusOK, response)
}

// GetProducts returns the current catalog snapshot
func (cc *ChatbotController) GetProducts(c *gin.Context) {
	products, err := cc.catalog.FetchProducts(c.Request.Context())
	if err != nil || len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No products found",
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetSupportedIntents returns list of supported intents
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	intents := []map[string]interface{}{
		{
			"intent":      "product_query",
			"description": "Questions about a single product's price, stock, rating or details",
			"examples": []string{
				"What's the price of Kiwi?",
				"Is the iPhone 9 in stock?",
				"Tell me about Kiwis",
			},
		},
		{
			"intent":      "category_listing",
			"description": "Which product categories exist",
			"examples": []string{
				"What categories do you have?",
				"What types of products do you sell?",
			},
		},
		{
			"intent":      "category_filter",
			"description": "Products within a named category",
			"examples": []string{
				"Show me groceries",
				"Any laptops?",
			},
		},
		{
			"intent":      "numeric_filter",
			"description": "Products filtered by price range or rating",
			"examples": []string{
				"Products under 20",
				"Something between 10 and 50",
				"Ratings above 4",
			},
		},
		{
			"intent":      "greeting",
			"description": "Small talk openings",
			"examples": []string{
				"hi", "hello", "good morning",
			},
		},
		{
			"intent":      "farewell",
			"description": "Small talk closings",
			"examples": []string{
				"bye", "see you",
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
	})
}
