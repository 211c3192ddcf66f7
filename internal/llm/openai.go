// Package llm generates text for AI action properties.
package llm

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("openai: api key not configured")

const systemPrompt = "You write short marketing copy for web pages. " +
	"Answer with plain text only: no markdown, no HTML, no surrounding quotes."

// OpenAIGenerator generates page copy through an OpenAI-compatible
// chat completions endpoint.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
	policy  *bluemonday.Policy
}

// Options configure an OpenAIGenerator. BaseURL may point at any
// OpenAI-compatible server; empty means the provider default.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

func NewOpenAIGenerator(o Options) (*OpenAIGenerator, error) {
	key := strings.TrimSpace(o.APIKey)
	if key == "" {
		return nil, ErrNoAPIKey
	}
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(o.MaxRetries),
	}
	if base := strings.TrimSpace(o.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	model := strings.TrimSpace(o.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
		policy:  bluemonday.StrictPolicy(),
	}, nil
}

// Generate sends prompt as a single user message and returns the sanitized reply.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	out := Sanitize(g.policy, resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return out, nil
}

// Sanitize strips markup from model output and decodes the entities the
// policy escaped, leaving plain text for a textarea property.
func Sanitize(p *bluemonday.Policy, s string) string {
	if p == nil {
		p = bluemonday.StrictPolicy()
	}
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}
