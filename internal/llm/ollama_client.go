// Ollama backend for local LLM inference.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OllamaClient uses the Ollama HTTP API for LLM requests.
type OllamaClient struct {
	mu          sync.RWMutex
	baseURL     string
	httpClient  *http.Client
	model       string
	temperature float64
}

// ollamaChatRequest represents a request to /api/chat
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

// ollamaMessage represents a message in the Ollama format
type ollamaMessage struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// ollamaOptions represents generation options
type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
}

// ollamaChatResponse represents a response from /api/chat
type ollamaChatResponse struct {
	Model           string        `json:"model"`
	CreatedAt       string        `json:"created_at"`
	Message         ollamaMessage `json:"message"`
	Done            bool          `json:"done"`
	PromptEvalCount int           `json:"prompt_eval_count,omitempty"`
	EvalCount       int           `json:"eval_count,omitempty"`
}

// NewOllamaClient creates a new Ollama-based LLM client
func NewOllamaClient(baseURL string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	// Remove trailing slash
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &OllamaClient{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 2 * time.Minute},
		model:       "llama3.2",
		temperature: 0.7,
	}
}

// Name returns "ollama"
func (c *OllamaClient) Name() string { return "ollama" }

// Model returns the current model name
func (c *OllamaClient) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel sets the model for subsequent requests
func (c *OllamaClient) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Temperature returns the current temperature
func (c *OllamaClient) Temperature() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.temperature
}

// SetTemperature sets the temperature for subsequent requests
func (c *OllamaClient) SetTemperature(temp float64) error {
	if !validTemperature(temp) {
		return fmt.Errorf("temperature must be between 0.0 and 2.0")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temperature = temp
	return nil
}

// buildOllamaMessages converts a request to Ollama format
func buildOllamaMessages(req Request) []ollamaMessage {
	var msgs []ollamaMessage

	if req.System != "" {
		msgs = append(msgs, ollamaMessage{Role: "system", Content: req.System})
	}

	for _, msg := range req.History {
		switch msg.Role {
		case "system", "user", "assistant":
			msgs = append(msgs, ollamaMessage{Role: msg.Role, Content: msg.Content})
		}
	}

	return append(msgs, ollamaMessage{Role: "user", Content: req.Prompt})
}

// Generate sends a request to /api/chat without streaming.
func (c *OllamaClient) Generate(ctx context.Context, req Request) (Response, error) {
	c.mu.RLock()
	model := modelFor(req, c.model)
	temp := c.temperature
	c.mu.RUnlock()

	body := ollamaChatRequest{
		Model:    model,
		Messages: buildOllamaMessages(req),
		Stream:   false,
		Options:  &ollamaOptions{Temperature: temp},
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(reqBody))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("Ollama API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return Response{}, fmt.Errorf("Ollama API error: HTTP %d: %s", resp.StatusCode, string(b))
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Response{
		Text:   chatResp.Message.Content,
		Tokens: chatResp.PromptEvalCount + chatResp.EvalCount,
	}, nil
}
