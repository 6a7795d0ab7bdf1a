package uplink

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/NERVsystems/nathterm/internal/llm"
)

type recordingBackend struct {
	mu    sync.Mutex
	reply string
	err   error
	delay time.Duration
	reqs  []llm.Request
}

func (b *recordingBackend) Name() string                 { return "recording" }
func (b *recordingBackend) Model() string                { return "rec" }
func (b *recordingBackend) SetModel(string)              {}
func (b *recordingBackend) Temperature() float64         { return 0 }
func (b *recordingBackend) SetTemperature(float64) error { return nil }

func (b *recordingBackend) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	b.mu.Lock()
	b.reqs = append(b.reqs, req)
	b.mu.Unlock()
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return llm.Response{}, ctx.Err()
		}
	}
	if b.err != nil {
		return llm.Response{}, b.err
	}
	return llm.Response{Text: b.reply, Tokens: 1}, nil
}

var _ llm.Backend = (*recordingBackend)(nil)

func TestExplainConcept(t *testing.T) {
	b := &recordingBackend{reply: "  XSS is...  \n"}
	c := New(b, WithModels("fast-model", "chat-model"))

	text, err := c.ExplainConcept(context.Background(), "xss")
	require.NoError(t, err)
	assert.Equal(t, "XSS is...", text)

	require.Len(t, b.reqs, 1)
	assert.Equal(t, "fast-model", b.reqs[0].Model)
	assert.Contains(t, b.reqs[0].Prompt, `explain the concept: "xss"`)
}

func TestAnalyzeProfileIncludesProfile(t *testing.T) {
	b := &recordingBackend{reply: "report"}
	c := New(b, WithProfile("PROFILE-TEXT"))

	_, err := c.AnalyzeProfile(context.Background())
	require.NoError(t, err)
	assert.Contains(t, b.reqs[0].Prompt, "PROFILE-TEXT")
	assert.Contains(t, b.reqs[0].Prompt, "out of 100%")
}

func TestEmptyReply(t *testing.T) {
	c := New(&recordingBackend{reply: "   "})
	_, err := c.ExplainConcept(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestBackendError(t *testing.T) {
	cause := errors.New("quota exceeded")
	c := New(&recordingBackend{err: cause})
	_, err := c.AnalyzeProfile(context.Background())
	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.HasPrefix(err.Error(), "analyze:"))
}

func TestTimeout(t *testing.T) {
	c := New(&recordingBackend{reply: "late", delay: time.Second}, WithTimeout(10*time.Millisecond))
	_, err := c.ExplainConcept(context.Background(), "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChatKeepsHistoryPerConversation(t *testing.T) {
	b := &recordingBackend{reply: "Query resolved."}
	c := New(b, WithProfile("RESUME"), WithModels("", "chat-model"))

	_, err := c.Chat(context.Background(), "one", "skills?")
	require.NoError(t, err)
	_, err = c.Chat(context.Background(), "one", "projects?")
	require.NoError(t, err)
	_, err = c.Chat(context.Background(), "two", "hello")
	require.NoError(t, err)

	require.Len(t, b.reqs, 3)
	assert.Contains(t, b.reqs[0].System, "NATH-OS")
	assert.Contains(t, b.reqs[0].System, "RESUME")
	assert.Equal(t, "chat-model", b.reqs[0].Model)
	assert.Len(t, b.reqs[1].History, 2)
	assert.Empty(t, b.reqs[2].History)

	c.Forget("one")
	_, err = c.Chat(context.Background(), "one", "again")
	require.NoError(t, err)
	assert.Empty(t, b.reqs[3].History)
}

func TestChatLogsConversationTokens(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := &recordingBackend{reply: "Query resolved."}
	c := New(b, WithLogger(zap.New(core)))

	_, err := c.Chat(context.Background(), "one", "skills?")
	require.NoError(t, err)
	_, err = c.Chat(context.Background(), "one", "projects?")
	require.NoError(t, err)

	entries := logs.FilterMessage("chat history").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "one", fields["conversation"])
	assert.EqualValues(t, 4, fields["messages"])
	assert.EqualValues(t, 2, fields["total_tokens"])
}

func TestOfflineBackend(t *testing.T) {
	c := New(llm.Offline{})
	_, err := c.Chat(context.Background(), "s", "hi")
	assert.ErrorIs(t, err, llm.ErrOffline)
}
