package models

type MessageIntent string

const (
	IntentGreeting        MessageIntent = "greeting"
	IntentFarewell        MessageIntent = "farewell"
	IntentProductQuery    MessageIntent = "product_query"
	IntentCategoryListing MessageIntent = "category_listing"
	IntentCategoryFilter  MessageIntent = "category_filter"
	IntentNumericFilter   MessageIntent = "numeric_filter"
	IntentFallback        MessageIntent = "fallback"
)

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb       MessageChannel = "web"
	ChannelWebSocket MessageChannel = "websocket"
)

type ChatRequest struct {
	Message   string         `json:"message" binding:"required"`
	SessionID string         `json:"session_id,omitempty"`
	Channel   MessageChannel `json:"channel,omitempty"`
}

type ChatResponse struct {
	Response string        `json:"response"`
	Intent   MessageIntent `json:"intent"`
}

// NewTextResponse creates a plain text response for the given intent.
func NewTextResponse(text string, intent MessageIntent) *ChatResponse {
	return &ChatResponse{
		Response: text,
		Intent:   intent,
	}
}
