// Package shell implements the simulated command shell: per-session state,
// the command dispatcher, and the built-in command handlers.
package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NERVsystems/nathterm/internal/vfs"
)

// ChainMode controls where the outputs of chained sub-commands go.
type ChainMode int

const (
	// ChainSplit attaches the first output to the echoed line and gives
	// every later non-empty output its own entry.
	ChainSplit ChainMode = iota
	// ChainLastWins attaches every output to the last entry, so only the
	// final output of a chain stays visible.
	ChainLastWins
)

// ParseChainMode maps "split" and "last" to a ChainMode.
func ParseChainMode(s string) (ChainMode, error) {
	switch strings.ToLower(s) {
	case "", "split":
		return ChainSplit, nil
	case "last":
		return ChainLastWins, nil
	default:
		return 0, fmt.Errorf("unknown chain mode %q", s)
	}
}

func (m ChainMode) String() string {
	if m == ChainLastWins {
		return "last"
	}
	return "split"
}

// DefaultBanner is shown at the top of every new session.
var DefaultBanner = []string{
	"US-CYBERCOM TERMINAL ACCESS [UNCLASSIFIED]",
	`Type "help" for command list or "training" for learning modules.`,
}

// Options configure a session.
type Options struct {
	User      string
	Host      string
	Home      string
	ChainMode ChainMode
	// TimeScale multiplies every simulation delay. 1 is real time.
	TimeScale float64
	Banner    []string
	Now       func() time.Time
}

func (o *Options) setDefaults() {
	if o.User == "" {
		o.User = "guest"
	}
	if o.Host == "" {
		o.Host = "US-CYBERCOM"
	}
	if o.Home == "" {
		o.Home = "/home/guest"
	}
	if o.TimeScale <= 0 {
		o.TimeScale = 1
	}
	if o.Banner == nil {
		o.Banner = DefaultBanner
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Entry is one scrollback record. Output-only entries have no Prompt.
type Entry struct {
	Prompt string
	Input  string
	Output Content
}

// Session is the mutable state of one mounted shell: working path,
// scrollback and the processing flag. Only the dispatcher and the handlers
// it invokes mutate it; views read snapshots.
type Session struct {
	ID   string
	fs   *vfs.FS
	opts Options
	log  *zap.Logger

	mu         sync.Mutex
	cwd        vfs.Path
	scrollback []Entry
	processing bool
	live       []Live
	flags      map[string]bool
	closers    []func()
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession creates a session over fsys starting in opts.Home.
func NewSession(fsys *vfs.FS, opts Options, log *zap.Logger) (*Session, error) {
	opts.setDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	home, _, err := fsys.ResolveDir(opts.Home, fsys.RootPath())
	if err != nil {
		return nil, fmt.Errorf("home %s: %w", opts.Home, err)
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:     id,
		fs:     fsys,
		opts:   opts,
		log:    log.With(zap.String("session", id)),
		cwd:    home,
		flags:  make(map[string]bool),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, line := range opts.Banner {
		s.scrollback = append(s.scrollback, Entry{Output: Text(line)})
	}
	s.log.Info("session started", zap.String("home", home.String()))
	return s, nil
}

// FS returns the session's file tree.
func (s *Session) FS() *vfs.FS { return s.fs }

// Now returns the session clock's current time.
func (s *Session) Now() time.Time { return s.opts.Now() }

// Cwd returns a copy of the current working path.
func (s *Session) Cwd() vfs.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd.Clone()
}

func (s *Session) setCwd(p vfs.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cwd = p.Clone()
}

// Prompt renders the input prefix for the current working path.
func (s *Session) Prompt() string {
	return fmt.Sprintf("[%s@%s] %s$ ", s.opts.User, s.opts.Host, s.Cwd().Base())
}

// Scrollback returns a copy of the scrollback.
func (s *Session) Scrollback() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Entry, len(s.scrollback))
	copy(result, s.scrollback)
	return result
}

// Processing reports whether a line is being dispatched.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Session) setProcessing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = v
}

func (s *Session) appendEntry(e Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback = append(s.scrollback, e)
	return len(s.scrollback) - 1
}

func (s *Session) setOutput(i int, c Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= 0 && i < len(s.scrollback) {
		s.scrollback[i].Output = c
	}
}

// setLastOutput replaces the output of the last entry, appending an
// output-only entry when the scrollback is empty.
func (s *Session) setLastOutput(c Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.scrollback) == 0 {
		s.scrollback = append(s.scrollback, Entry{Output: c})
		return
	}
	s.scrollback[len(s.scrollback)-1].Output = c
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollback = nil
}

// flag reports whether key was already set, setting it.
func (s *Session) flag(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.flags[key]
	s.flags[key] = true
	return was
}

// OnClose registers fn to run when the session closes. On a session that
// is already closed fn runs at once.
func (s *Session) OnClose(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.closers = append(s.closers, fn)
	s.mu.Unlock()
}

// start runs sim for the lifetime of the session. After Close, sim runs
// synchronously with a cancelled context so it settles immediately.
func (s *Session) start(sim Simulation) {
	s.mu.Lock()
	live := s.live[:0]
	for _, l := range s.live {
		select {
		case <-l.Done():
		default:
			live = append(live, l)
		}
	}
	s.live = append(live, sim)
	if s.closed {
		s.mu.Unlock()
		s.run(sim)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.run(sim)
	}()
}

// run contains a panicking simulation so it cannot take the process down.
// The simulation's own Done still closes through its deferred settle.
func (s *Session) run(sim Simulation) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("simulation panicked",
				zap.String("content", fmt.Sprintf("%T", sim)),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	sim.Run(s.ctx, s.opts.TimeScale)
}

// Settled reports whether every live content has stopped changing.
func (s *Session) Settled() bool {
	s.mu.Lock()
	live := append([]Live(nil), s.live...)
	s.mu.Unlock()
	for _, l := range live {
		select {
		case <-l.Done():
		default:
			return false
		}
	}
	return true
}

// Wait blocks until every live content has settled or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	live := append([]Live(nil), s.live...)
	s.mu.Unlock()
	for _, l := range live {
		select {
		case <-l.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close cancels every running simulation and query and waits for them to
// stop. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	for _, fn := range closers {
		fn()
	}
	s.log.Info("session closed")
}
