// Package uplink is the terminal's text-generation collaborator. It owns the
// prompts and the profile text and turns them into backend requests.
package uplink

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NERVsystems/nathterm/internal/llm"
)

// ErrEmptyReply is returned when the backend answers with no text.
var ErrEmptyReply = errors.New("empty reply")

// Client builds prompts and sends them through a backend.
type Client struct {
	backend   llm.Backend
	chats     *llm.ConversationManager
	log       *zap.Logger
	profile   string
	fastModel string
	chatModel string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithProfile sets the résumé text used by AnalyzeProfile and Chat.
func WithProfile(text string) Option {
	return func(c *Client) { c.profile = text }
}

// WithModels sets the model for one-shot calls and the model for chat.
// Empty values keep the backend's current model.
func WithModels(fast, chat string) Option {
	return func(c *Client) {
		c.fastModel = fast
		c.chatModel = chat
	}
}

// WithTimeout bounds every call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client over backend.
func New(backend llm.Backend, opts ...Option) *Client {
	c := &Client{
		backend: backend,
		chats:   llm.NewConversationManager(backend),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExplainConcept asks the mentor persona to explain topic.
func (c *Client) ExplainConcept(ctx context.Context, topic string) (string, error) {
	return c.generate(ctx, "explain", llm.Request{
		Model:  c.fastModel,
		Prompt: fmt.Sprintf(explainPrompt, topic),
	})
}

// AnalyzeProfile produces a diagnostic report over the profile text.
func (c *Client) AnalyzeProfile(ctx context.Context) (string, error) {
	return c.generate(ctx, "analyze", llm.Request{
		Model:  c.fastModel,
		Prompt: fmt.Sprintf(analyzePrompt, c.profile),
	})
}

// Chat sends message in the named conversation. Successful exchanges are
// kept as history for the next call with the same conversation.
func (c *Client) Chat(ctx context.Context, conversation, message string) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.chats.Ask(ctx, conversation, llm.Request{
		Model:  c.chatModel,
		System: fmt.Sprintf(personaPrompt, c.profile),
		Prompt: message,
	})
	text, err := c.finish("chat", start, resp, err)
	if err != nil {
		return "", err
	}
	if conv := c.chats.Get(conversation); conv != nil {
		c.log.Debug("chat history",
			zap.String("conversation", conversation),
			zap.Int("messages", len(conv.Messages())),
			zap.Int("total_tokens", conv.TotalTokens()))
	}
	return text, nil
}

// Forget drops the history of a conversation.
func (c *Client) Forget(conversation string) {
	c.chats.Remove(conversation)
}

func (c *Client) generate(ctx context.Context, op string, req llm.Request) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	start := time.Now()
	resp, err := c.backend.Generate(ctx, req)
	return c.finish(op, start, resp, err)
}

func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) finish(op string, start time.Time, resp llm.Response, err error) (string, error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("backend", c.backend.Name()),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		c.log.Warn("uplink call failed", append(fields, zap.Error(err))...)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		c.log.Warn("uplink returned empty reply", fields...)
		return "", fmt.Errorf("%s: %w", op, ErrEmptyReply)
	}
	c.log.Debug("uplink call", append(fields, zap.Int("tokens", resp.Tokens))...)
	return text, nil
}
