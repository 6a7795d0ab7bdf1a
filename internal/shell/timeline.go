package shell

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Simulation is live content driven by its own clock. Run blocks until the
// simulation completes or ctx is cancelled, and closes Done either way.
type Simulation interface {
	Live
	Run(ctx context.Context, scale float64)
}

// Event reveals Line once At has elapsed since the simulation started.
type Event struct {
	At   time.Duration
	Line string
}

// Timeline is an ordered list of events.
type Timeline []Event

// Every spaces lines step apart, starting at offset.
func Every(offset, step time.Duration, lines ...string) Timeline {
	tl := make(Timeline, len(lines))
	for i, line := range lines {
		tl[i] = Event{At: offset + time.Duration(i)*step, Line: line}
	}
	return tl
}

func scaleDuration(d time.Duration, scale float64) time.Duration {
	return time.Duration(float64(d) * scale)
}

// Stream reveals a timeline line by line. The placeholder shows until the
// first line arrives and the final line appears once every line is out.
type Stream struct {
	Title       string
	Placeholder string
	Footer      string
	Final       string

	timeline Timeline

	mu       sync.Mutex
	lines    []string
	complete bool
	done     chan struct{}
	once     sync.Once
}

// NewStream creates a stream over tl.
func NewStream(tl Timeline) *Stream {
	events := append(Timeline(nil), tl...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return &Stream{timeline: events, done: make(chan struct{})}
}

// Run plays the timeline on a single timer.
func (s *Stream) Run(ctx context.Context, scale float64) {
	defer s.once.Do(func() { close(s.done) })

	start := time.Now()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for _, ev := range s.timeline {
		if wait := scaleDuration(ev.At, scale) - time.Since(start); wait > 0 {
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}
		s.mu.Lock()
		s.lines = append(s.lines, ev.Line)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.complete = true
	s.mu.Unlock()
}

// Done is closed when the stream stops changing.
func (s *Stream) Done() <-chan struct{} { return s.done }

// Lines returns the lines revealed so far.
func (s *Stream) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Complete reports whether every line was revealed.
func (s *Stream) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

func (s *Stream) String() string {
	lines := s.Lines()
	complete := s.Complete()

	var out []string
	if s.Title != "" {
		out = append(out, s.Title)
	}
	if len(lines) == 0 && s.Placeholder != "" {
		out = append(out, s.Placeholder)
	}
	out = append(out, lines...)
	if complete {
		if s.Footer != "" {
			out = append(out, s.Footer)
		}
		if s.Final != "" {
			out = append(out, s.Final)
		}
	}
	return strings.Join(out, "\n")
}
