package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persx/persx-sub000/internal/platform/logger"
)

func TestGenerateTextSendsCapsAndReturnsContent(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"cmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  Weekly Personalization Roundup  "}}],
			"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}
		}`))
	}))
	defer server.Close()

	c := New(logger.Nop(), Config{APIKey: "test-key", BaseURL: server.URL})
	require.NotNil(t, c)

	out, err := c.GenerateText(context.Background(), TextRequest{System: "sys", User: "user", MaxTokens: 100, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "Weekly Personalization Roundup", out)
	assert.EqualValues(t, 100, payload["max_tokens"])
	assert.Equal(t, "gpt-4o-mini", payload["model"])
	msgs, _ := payload["messages"].([]any)
	assert.Len(t, msgs, 2)
}

func TestGenerateTextMapsAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	c := New(logger.Nop(), Config{APIKey: "bad", BaseURL: server.URL, MaxRetries: 0})
	_, err := c.GenerateText(context.Background(), TextRequest{System: "s", User: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewWithoutKeyIsNil(t *testing.T) {
	assert.Nil(t, New(logger.Nop(), Config{}))
}
