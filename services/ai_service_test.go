package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"product-chatbot-backend/config"
)

func testAIConfig(url string, retries int) config.AIConfig {
	return config.AIConfig{
		APIKey:      "test-key",
		APIURL:      url,
		Model:       "test-model",
		MaxTokens:   64,
		Temperature: 0.7,
		MaxRetries:  retries,
		Timeout:     2 * time.Second,
	}
}

func completionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(completionBody("  Kiwi is a great choice!  "))
	}))
	defer srv.Close()

	s := NewAIService(testAIConfig(srv.URL, 3))
	got := s.Complete(context.Background(), "tell me about kiwi")

	if got != "Kiwi is a great choice!" {
		t.Errorf("Complete = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "tell me about kiwi" {
		t.Errorf("unexpected request payload: %+v", gotReq)
	}
}

func TestCompleteRetriesThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(completionBody("recovered"))
	}))
	defer srv.Close()

	s := NewAIService(testAIConfig(srv.URL, 3))
	if got := s.Complete(context.Background(), "p"); got != "recovered" {
		t.Errorf("Complete = %q, want recovered", got)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestCompleteReturnsSentinelOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewAIService(testAIConfig(srv.URL, 1))
	got := s.Complete(context.Background(), "p")

	if got != FallbackSentinel {
		t.Errorf("Complete = %q, want sentinel", got)
	}
	if !IsFallbackSentinel(got) {
		t.Error("IsFallbackSentinel(sentinel) = false")
	}
}

func TestCompleteEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionBody("   "))
	}))
	defer srv.Close()

	s := NewAIService(testAIConfig(srv.URL, 1))
	got := s.Complete(context.Background(), "p")

	if got != "Sorry — the AI returned an empty response." {
		t.Errorf("Complete = %q", got)
	}
}

func TestIsFallbackSentinel(t *testing.T) {
	if IsFallbackSentinel("Kiwi is nice") {
		t.Error("regular reply flagged as sentinel")
	}
	if !IsFallbackSentinel("Sorry — I couldn't reach the AI service right now.") {
		t.Error("prefix variant not flagged as sentinel")
	}
}
