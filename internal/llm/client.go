package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Client wraps the Anthropic API client
type Client struct {
	client      anthropic.Client
	mu          sync.RWMutex
	model       string
	temperature float64
	maxTokens   int64
}

// NewClient creates a new Anthropic client
func NewClient(apiKey string) *Client {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client:      client,
		model:       "claude-sonnet-4-20250514",
		temperature: 0.7,
		maxTokens:   2048,
	}
}

// Name returns "anthropic"
func (c *Client) Name() string { return "anthropic" }

// Model returns the current model name
func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the model for subsequent requests
func (c *Client) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Temperature returns the current temperature
func (c *Client) Temperature() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.temperature
}

// SetTemperature sets the temperature for subsequent requests
func (c *Client) SetTemperature(temp float64) error {
	if !validTemperature(temp) {
		return fmt.Errorf("temperature must be between 0.0 and 2.0")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temperature = temp
	return nil
}

// buildParams converts a Request into Messages API parameters.
func (c *Client) buildParams(req Request) anthropic.MessageNewParams {
	c.mu.RLock()
	model := modelFor(req, c.model)
	temp := c.temperature
	maxTokens := c.maxTokens
	c.mu.RUnlock()

	apiMessages := make([]anthropic.MessageParam, 0, len(req.History)+1)
	var systemBlocks []anthropic.TextBlockParam

	if req.System != "" {
		systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
			Text: req.System,
		})
	}

	for _, msg := range req.History {
		switch msg.Role {
		case "system":
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
				Text: msg.Content,
			})
		case "user":
			apiMessages = append(apiMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		case "assistant":
			apiMessages = append(apiMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}
	apiMessages = append(apiMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)))

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Messages:    apiMessages,
		Temperature: anthropic.Float(temp),
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	return params
}

// Generate sends a request to the Messages API
func (c *Client) Generate(ctx context.Context, req Request) (Response, error) {
	response, err := c.client.Messages.New(ctx, c.buildParams(req))
	if err != nil {
		return Response{}, fmt.Errorf("API error: %w", err)
	}

	var text string
	for _, block := range response.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return Response{
		Text:   text,
		Tokens: int(response.Usage.InputTokens + response.Usage.OutputTokens),
	}, nil
}
