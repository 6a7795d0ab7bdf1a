package llm

import (
	"context"
	"errors"
	"testing"
)

func TestClientTemperature(t *testing.T) {
	c := NewClient("dummy-key")

	// Default temperature
	if got := c.Temperature(); got != 0.7 {
		t.Errorf("Temperature() = %f, want 0.7", got)
	}

	// Valid temperature
	if err := c.SetTemperature(1.5); err != nil {
		t.Errorf("SetTemperature(1.5) error: %v", err)
	}
	if got := c.Temperature(); got != 1.5 {
		t.Errorf("Temperature() = %f, want 1.5", got)
	}

	// Invalid temperature - too low
	if err := c.SetTemperature(-0.1); err == nil {
		t.Error("SetTemperature(-0.1) should return error")
	}

	// Invalid temperature - too high
	if err := c.SetTemperature(2.1); err == nil {
		t.Error("SetTemperature(2.1) should return error")
	}
}

func TestClientModel(t *testing.T) {
	c := NewClient("dummy-key")
	if c.Name() != "anthropic" {
		t.Errorf("Name() = %q, want anthropic", c.Name())
	}
	c.SetModel("claude-3-haiku-20240307")
	if got := c.Model(); got != "claude-3-haiku-20240307" {
		t.Errorf("Model() = %q", got)
	}
}

func TestClientBuildParams(t *testing.T) {
	c := NewClient("dummy-key")

	params := c.buildParams(Request{
		System: "persona",
		History: []Message{
			{Role: "system", Content: "extra"},
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "tool", Content: "ignored"},
		},
		Prompt: "next",
	})

	if string(params.Model) != "claude-sonnet-4-20250514" {
		t.Errorf("Model = %q, want default", params.Model)
	}
	if len(params.System) != 2 {
		t.Fatalf("System blocks = %d, want 2", len(params.System))
	}
	if params.System[0].Text != "persona" || params.System[1].Text != "extra" {
		t.Errorf("System = %+v", params.System)
	}
	if len(params.Messages) != 3 {
		t.Errorf("Messages = %d, want 3 (user, assistant, prompt)", len(params.Messages))
	}

	params = c.buildParams(Request{Model: "claude-3-opus-20240229", Prompt: "x"})
	if string(params.Model) != "claude-3-opus-20240229" {
		t.Errorf("Model override = %q", params.Model)
	}
	if len(params.System) != 0 {
		t.Errorf("System should be empty, got %d blocks", len(params.System))
	}
}

func TestOffline(t *testing.T) {
	var b Backend = Offline{}
	_, err := b.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrOffline) {
		t.Errorf("Generate() error = %v, want ErrOffline", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Generate(ctx, Request{Prompt: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() on cancelled ctx = %v, want context.Canceled", err)
	}
}
