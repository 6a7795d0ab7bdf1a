package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NERVsystems/nathterm/internal/config"
	"github.com/NERVsystems/nathterm/internal/llm"
	"github.com/NERVsystems/nathterm/internal/shell"
	"github.com/NERVsystems/nathterm/internal/tui"
	"github.com/NERVsystems/nathterm/internal/uplink"
	"github.com/NERVsystems/nathterm/internal/vfs"
)

const profilePath = "/home/guest/resume.txt"

// newBackend builds the configured text backend. A missing API key drops
// to the offline backend so the terminal still runs.
func newBackend(ctx context.Context, c config.LLMConfig, log *zap.Logger) (llm.Backend, error) {
	var b llm.Backend

	switch c.Backend {
	case "gemini":
		if c.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set, running offline")
			return llm.Offline{}, nil
		}
		gc, err := llm.NewGeminiClient(ctx, c.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		b = gc

	case "anthropic":
		if c.AnthropicAPIKey == "" {
			log.Warn("ANTHROPIC_API_KEY not set, running offline")
			return llm.Offline{}, nil
		}
		b = llm.NewClient(c.AnthropicAPIKey)

	case "ollama":
		b = llm.NewOllamaClient(c.BaseURL)

	case "offline":
		return llm.Offline{}, nil

	default:
		return nil, fmt.Errorf("unknown backend '%s'", c.Backend)
	}

	if c.Model != "" {
		b.SetModel(c.Model)
	}
	if err := b.SetTemperature(c.Temperature); err != nil {
		return nil, err
	}
	log.Info("text backend ready", zap.String("backend", b.Name()), zap.String("model", b.Model()))
	return b, nil
}

func loadTemplate(c config.ShellConfig) (*vfs.Template, error) {
	if c.SeedFile != "" {
		return vfs.LoadTemplate(c.SeedFile)
	}
	return vfs.DefaultTemplate()
}

// profileText reads the résumé the uplink reasons about from the tree.
func profileText(fsys *vfs.FS) string {
	_, node, err := fsys.Resolve(profilePath, fsys.RootPath())
	if err != nil {
		return ""
	}
	if f, ok := node.(*vfs.File); ok {
		return f.Content
	}
	return ""
}

// terminal bundles one session with its dispatcher.
type terminal struct {
	session    *shell.Session
	dispatcher *shell.Dispatcher
}

func newTerminal(ctx context.Context, c *config.Config, log *zap.Logger) (*terminal, error) {
	tpl, err := loadTemplate(c.Shell)
	if err != nil {
		return nil, fmt.Errorf("failed to load file tree: %w", err)
	}
	fsys := tpl.Build()

	b, err := newBackend(ctx, c.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}
	up := uplink.New(b,
		uplink.WithProfile(profileText(fsys)),
		uplink.WithModels("", c.LLM.ChatModel),
		uplink.WithTimeout(c.LLMTimeout()),
		uplink.WithLogger(log.Named("uplink")),
	)

	mode, err := shell.ParseChainMode(c.Shell.ChainMode)
	if err != nil {
		return nil, err
	}
	s, err := shell.NewSession(fsys, shell.Options{
		User:      c.Shell.User,
		Host:      c.Shell.Host,
		Home:      c.Shell.Home,
		ChainMode: mode,
		TimeScale: c.Shell.TimeScale,
		Banner:    c.Shell.Banner,
	}, log.Named("shell"))
	if err != nil {
		if errors.Is(err, vfs.ErrNotFound) || errors.Is(err, vfs.ErrNotDir) {
			return nil, fmt.Errorf("home %q is not a directory in the file tree", c.Shell.Home)
		}
		return nil, err
	}

	return &terminal{session: s, dispatcher: shell.NewDispatcher(shell.DefaultRegistry(up))}, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	t, err := newTerminal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return tui.Run(ctx, t.session, t.dispatcher)
}
