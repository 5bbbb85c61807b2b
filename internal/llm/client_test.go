package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pennywise/pennywise-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		assert.Len(t, body.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream broke","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]interface{}{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
}

func testConfig(url string) config.AssistantConfig {
	return config.AssistantConfig{APIKey: "test-key", BaseURL: url, Model: "test-model"}
}

func TestOpenAIClient_Complete(t *testing.T) {
	srv := fakeCompletionServer(t, "  You spent 40.00 on food.  ", http.StatusOK)
	defer srv.Close()

	answer, err := NewOpenAIClient(testConfig(srv.URL)).Complete(context.Background(), "system", "question")

	require.NoError(t, err)
	assert.Equal(t, "You spent 40.00 on food.", answer)
}

func TestOpenAIClient_EmptyCompletion(t *testing.T) {
	srv := fakeCompletionServer(t, "   ", http.StatusOK)
	defer srv.Close()

	_, err := NewOpenAIClient(testConfig(srv.URL)).Complete(context.Background(), "system", "question")

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIClient_UpstreamError(t *testing.T) {
	srv := fakeCompletionServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	_, err := NewOpenAIClient(testConfig(srv.URL)).Complete(context.Background(), "system", "question")

	assert.Error(t, err)
}
