// Package llm provides text-generation backends for the terminal's uplink.
package llm

import "context"

// Message represents a single message in a conversation
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

// Request is one generation call.
type Request struct {
	// Model overrides the backend's current model when non-empty
	Model string
	// System is the system instruction, if any
	System string
	// History holds prior turns, oldest first
	History []Message
	// Prompt is the new user turn
	Prompt string
}

// Response is the result of a generation call.
type Response struct {
	Text   string
	Tokens int
}

// Backend defines the interface for text-generation backends.
type Backend interface {
	// Name identifies the backend in logs ("gemini", "anthropic", ...)
	Name() string
	// Model returns the current model name
	Model() string
	// SetModel sets the model for subsequent requests
	SetModel(model string)
	// Temperature returns the current temperature
	Temperature() float64
	// SetTemperature sets the temperature (0.0-2.0)
	SetTemperature(temp float64) error
	// Generate sends a request and returns the response (blocking)
	Generate(ctx context.Context, req Request) (Response, error)
}

// Verify that all clients implement Backend
var _ Backend = (*Client)(nil)
var _ Backend = (*OllamaClient)(nil)
var _ Backend = (*GeminiClient)(nil)
var _ Backend = Offline{}

// validTemperature is shared by every backend's SetTemperature.
func validTemperature(temp float64) bool {
	return temp >= 0.0 && temp <= 2.0
}

func modelFor(req Request, current string) string {
	if req.Model != "" {
		return req.Model
	}
	return current
}
