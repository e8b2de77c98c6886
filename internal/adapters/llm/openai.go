package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/Lakshya-Patwari/Search-O-Bar/internal/domain"
)

// Client implements domain.Generator against any OpenAI-compatible chat
// endpoint. The default target is a local Ollama server's /v1 API, so no
// API key is required unless the endpoint demands one.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	options := []option.RequestOption{
		option.WithBaseURL(baseURL),
	}
	if apiKey != "" {
		options = append(options, option.WithAPIKey(apiKey))
	}

	return &Client{
		api:     openai.NewClient(options...),
		model:   model,
		timeout: timeout,
	}
}

func (c *Client) Grounded(ctx context.Context, query string, sources []domain.Source) (domain.Answer, error) {
	user, ok := buildGroundedPrompt(query, sources)
	if !ok {
		// nothing usable to ground on, skip the model call entirely
		return domain.InsufficientAnswer(), nil
	}

	out, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(groundedSystemPrompt),
		openai.UserMessage(user),
	})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("grounded completion: %w", err)
	}
	return decodeGrounded(out), nil
}

func (c *Client) General(ctx context.Context, query string) (string, error) {
	out, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(generalSystemPrompt),
		openai.UserMessage(query),
	})
	if err != nil {
		return "", fmt.Errorf("general completion: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "I couldn't generate an answer.", nil
	}
	return out, nil
}

func (c *Client) Chat(ctx context.Context, messages []domain.Message) (string, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if len(messages) == 0 || messages[0].Role != domain.RoleSystem {
		params = append(params, openai.SystemMessage(chatSystemPrompt))
	}
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case domain.RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}

	out, err := c.complete(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(800),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}
