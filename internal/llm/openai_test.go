package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/internal/llm"
)

func TestSanitize(t *testing.T) {
	p := bluemonday.StrictPolicy()
	cases := map[string]string{
		"plain":                            "plain",
		"  padded \n":                      "padded",
		"<b>Bold</b> claim":                "Bold claim",
		"Fish &amp; Chips":                 "Fish & Chips",
		"Tom & Jerry":                      "Tom & Jerry",
		"<script>alert(1)</script>Welcome": "Welcome",
		`<a href="javascript:x">Click</a>`: "Click",
	}
	for in, want := range cases {
		assert.Equal(t, want, llm.Sanitize(p, in), in)
	}
}

func TestNewOpenAIGenerator_RequiresKey(t *testing.T) {
	_, err := llm.NewOpenAIGenerator(llm.Options{APIKey: "  "})
	assert.ErrorIs(t, err, llm.ErrNoAPIKey)
}

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content any    `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		if assert.Len(t, body.Messages, 2) {
			assert.Equal(t, "user", body.Messages[1].Role)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "<p>Summer <em>deals</em> &amp; more</p>")
	g, err := llm.NewOpenAIGenerator(llm.Options{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Model: "test-model"})
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), "Write a tagline")
	require.NoError(t, err)
	assert.Equal(t, "Summer deals & more", out)
}

func TestOpenAIGenerator_ServerError(t *testing.T) {
	srv := chatServer(t, http.StatusInternalServerError, "")
	g, err := llm.NewOpenAIGenerator(llm.Options{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Model: "test-model"})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "Write a tagline")
	assert.Error(t, err)
}

func TestOpenAIGenerator_EmptyReply(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "<script>only()</script>")
	g, err := llm.NewOpenAIGenerator(llm.Options{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Model: "test-model"})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "Write a tagline")
	assert.Error(t, err)
}
