package shell

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

var chainSep = regexp.MustCompile(`&&|;`)

// SplitChain splits a line on "&&" and ";" into trimmed sub-commands.
// Empty sub-commands are kept, one per separator.
func SplitChain(line string) []string {
	parts := chainSep.Split(line, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Dispatcher runs input lines against sessions.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Run echoes line into the scrollback and executes each chained
// sub-command in order. Staged and delegating handlers return at once;
// their content keeps updating in the background. A whitespace-only line
// is ignored.
func (d *Dispatcher) Run(ctx context.Context, s *Session, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	s.setProcessing(true)
	defer s.setProcessing(false)

	echo := s.appendEntry(Entry{Prompt: s.Prompt(), Input: line})
	echoFree := true

	for _, sub := range SplitChain(line) {
		if ctx.Err() != nil {
			s.log.Debug("dispatch cancelled", zap.String("line", line))
			return
		}
		if sub == "" {
			continue
		}
		if isClear(sub) {
			s.clear()
			echoFree = false
			continue
		}

		out := d.execute(s, sub)
		if out == nil {
			continue
		}
		if t, ok := out.(Text); ok && t == "" {
			continue
		}

		switch {
		case s.opts.ChainMode == ChainLastWins:
			s.setLastOutput(out)
		case echoFree:
			s.setOutput(echo, out)
			echoFree = false
		default:
			s.appendEntry(Entry{Output: out})
		}
	}
}

func isClear(sub string) bool {
	fields := strings.Fields(sub)
	return len(fields) == 1 && strings.EqualFold(fields[0], "clear")
}

func (d *Dispatcher) execute(s *Session, sub string) (out Content) {
	fields := strings.Fields(sub)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		s.log.Debug("unknown command", zap.String("command", name))
		return Text("ERR: Command not recognized: " + name)
	}
	if len(args) < cmd.MinArgs {
		return Text(cmd.usage())
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("command panicked",
				zap.String("command", name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			out = Text(fmt.Sprintf("ERR: %s: internal fault", name))
			return
		}
		s.log.Debug("command executed",
			zap.String("command", name),
			zap.Stringer("kind", cmd.Kind),
			zap.Int("args", len(args)),
			zap.Duration("duration", time.Since(start)))
	}()

	call := &Call{Name: name, Args: args, Session: s}
	switch cmd.Kind {
	case KindStaged:
		sim := cmd.Staged(call)
		s.start(sim)
		return sim
	case KindDelegating:
		p := NewPending(cmd.Delegate(call), s.log.With(zap.String("command", name)))
		s.start(p)
		return p
	default:
		return cmd.Sync(call)
	}
}
