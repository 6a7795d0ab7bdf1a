package shell

import (
	"context"
	"fmt"
	"strings"
)

// Kind is the execution shape of a command.
type Kind int

const (
	// KindSync handlers return their content immediately.
	KindSync Kind = iota
	// KindStaged handlers return a simulation that reveals itself over time.
	KindStaged
	// KindDelegating handlers return a query answered by the uplink.
	KindDelegating
)

func (k Kind) String() string {
	switch k {
	case KindSync:
		return "sync"
	case KindStaged:
		return "staged"
	case KindDelegating:
		return "delegating"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Category groups commands in the help table.
type Category string

const (
	CategorySystem     Category = "SYSTEM"
	CategoryNetworking Category = "NETWORKING"
	CategoryPentesting Category = "PENTESTING & EDUCATION"
)

// Categories lists help groups in display order.
var Categories = []Category{CategorySystem, CategoryNetworking, CategoryPentesting}

// Call is one invocation of a command.
type Call struct {
	Name    string
	Args    []string
	Session *Session
}

// Arg returns the i-th argument or "".
func (c *Call) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}

// Rest joins the arguments from i on with single spaces.
func (c *Call) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[i:], " ")
}

// Command is a registry entry. Exactly one of Sync, Staged or Delegate is
// set, matching Kind.
type Command struct {
	Name     string
	Synopsis string
	Summary  string
	Category Category
	// Usage is printed as "usage: <Usage>" when fewer than MinArgs
	// arguments are given. Synopsis is used when empty.
	Usage   string
	MinArgs int
	Kind    Kind

	Sync     func(c *Call) Content
	Staged   func(c *Call) Simulation
	Delegate func(c *Call) Query
}

func (cmd *Command) usage() string {
	if cmd.Usage != "" {
		return "usage: " + cmd.Usage
	}
	return "usage: " + cmd.Synopsis
}

func (cmd *Command) validate() error {
	if cmd.Name == "" || cmd.Name != strings.ToLower(cmd.Name) || strings.ContainsAny(cmd.Name, " \t;&") {
		return fmt.Errorf("invalid command name %q", cmd.Name)
	}
	var ok bool
	switch cmd.Kind {
	case KindSync:
		ok = cmd.Sync != nil && cmd.Staged == nil && cmd.Delegate == nil
	case KindStaged:
		ok = cmd.Staged != nil && cmd.Sync == nil && cmd.Delegate == nil
	case KindDelegating:
		ok = cmd.Delegate != nil && cmd.Sync == nil && cmd.Staged == nil
	}
	if !ok {
		return fmt.Errorf("command %s: handler does not match kind %s", cmd.Name, cmd.Kind)
	}
	return nil
}

// Registry maps command names to handlers.
type Registry struct {
	commands map[string]*Command
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds cmd. Names are unique.
func (r *Registry) Register(cmd Command) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("command %s already registered", cmd.Name)
	}
	r.commands[cmd.Name] = &cmd
	r.order = append(r.order, cmd.Name)
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(cmd Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Lookup finds a command by its lowercase name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Commands returns every command in registration order.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.commands[name])
	}
	return result
}

// Uplink answers the delegating commands.
type Uplink interface {
	ExplainConcept(ctx context.Context, topic string) (string, error)
	AnalyzeProfile(ctx context.Context) (string, error)
	Chat(ctx context.Context, conversation, message string) (string, error)
	Forget(conversation string)
}

// DefaultRegistry registers every built-in command.
func DefaultRegistry(up Uplink) *Registry {
	r := NewRegistry()
	registerSystem(r)
	registerFS(r)
	registerTools(r)
	registerUplink(r, up)
	return r
}
