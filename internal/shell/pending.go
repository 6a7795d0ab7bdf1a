package shell

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/NERVsystems/nathterm/internal/uplink"
)

// Query describes a delegating command's outbound request.
type Query struct {
	Header      string
	Placeholder string
	Fetch       func(ctx context.Context) (string, error)
	// OnError replaces the reply when Fetch fails.
	OnError string
	// OnEmpty replaces a blank reply.
	OnEmpty string
}

// Pending is the placeholder for an outstanding query. It always settles
// to the reply or to one of the query's fallback strings.
type Pending struct {
	Header string

	q   Query
	log *zap.Logger

	mu      sync.Mutex
	text    string
	settled bool
	done    chan struct{}
	once    sync.Once
}

// NewPending wraps q.
func NewPending(q Query, log *zap.Logger) *Pending {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pending{Header: q.Header, q: q, log: log, done: make(chan struct{})}
}

// Run performs the query and settles the content.
func (p *Pending) Run(ctx context.Context, _ float64) {
	defer p.once.Do(func() { close(p.done) })
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("query panicked", zap.Any("panic", r), zap.Stack("stack"))
			p.settle(p.q.OnError)
		}
	}()

	text, err := p.q.Fetch(ctx)
	switch {
	case errors.Is(err, uplink.ErrEmptyReply):
		text = p.q.OnEmpty
	case err != nil:
		if ctx.Err() == nil {
			p.log.Debug("query fell back", zap.Error(err))
		}
		text = p.q.OnError
	case strings.TrimSpace(text) == "":
		text = p.q.OnEmpty
	}
	p.settle(text)
}

func (p *Pending) settle(text string) {
	p.mu.Lock()
	p.text = text
	p.settled = true
	p.mu.Unlock()
}

// Done is closed once the reply or fallback is in place.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Reply returns the settled text and whether the query has settled.
func (p *Pending) Reply() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text, p.settled
}

// Placeholder returns the text shown while the query is outstanding.
func (p *Pending) Placeholder() string { return p.q.Placeholder }

func (p *Pending) String() string {
	body, ok := p.Reply()
	if !ok {
		body = p.q.Placeholder
	}
	if p.Header == "" {
		return body
	}
	return p.Header + "\n" + body
}
