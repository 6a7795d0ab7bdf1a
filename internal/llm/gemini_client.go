// Gemini backend via the Google GenAI SDK.
package llm

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient wraps the Google GenAI client.
type GeminiClient struct {
	client      *genai.Client
	mu          sync.RWMutex
	model       string
	temperature float64
}

// NewGeminiClient creates a Gemini client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       "gemini-2.5-flash",
		temperature: 0.7,
	}, nil
}

// Name returns "gemini"
func (c *GeminiClient) Name() string { return "gemini" }

// Model returns the current model name
func (c *GeminiClient) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the model for subsequent requests
func (c *GeminiClient) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Temperature returns the current temperature
func (c *GeminiClient) Temperature() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.temperature
}

// SetTemperature sets the temperature for subsequent requests
func (c *GeminiClient) SetTemperature(temp float64) error {
	if !validTemperature(temp) {
		return fmt.Errorf("temperature must be between 0.0 and 2.0")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temperature = temp
	return nil
}

// buildGeminiContents maps history and prompt to GenAI contents.
// Gemini calls the assistant role "model"; system turns are folded into
// the system instruction by buildGeminiConfig.
func buildGeminiContents(req Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, msg := range req.History {
		switch msg.Role {
		case "user":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case "assistant":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}
	return append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))
}

func buildGeminiConfig(req Request, temp float64) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temp)),
	}
	system := req.System
	for _, msg := range req.History {
		if msg.Role == "system" {
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content
		}
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return cfg
}

// Generate calls models.generateContent.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	c.mu.RLock()
	model := modelFor(req, c.model)
	temp := c.temperature
	c.mu.RUnlock()

	result, err := c.client.Models.GenerateContent(ctx, model, buildGeminiContents(req), buildGeminiConfig(req, temp))
	if err != nil {
		return Response{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	var tokens int
	if result.UsageMetadata != nil {
		tokens = int(result.UsageMetadata.TotalTokenCount)
	}
	return Response{Text: result.Text(), Tokens: tokens}, nil
}
