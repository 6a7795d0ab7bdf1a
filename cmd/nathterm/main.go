// nathterm is a simulated security-operations terminal.
//
// Usage:
//
//	GEMINI_API_KEY=... nathterm
//
// Run a few lines without the interactive view:
//
//	nathterm exec "cd projects && ls" "cat parkit.md"
//
// Without an API key the terminal runs offline and the AI commands answer
// with their fallback messages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NERVsystems/nathterm/internal/config"
	"github.com/NERVsystems/nathterm/internal/logging"
)

var version = "dev"

var (
	configPath string
	backend    string
	model      string
	seedFile   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nathterm",
	Short: "nathterm - simulated US-CYBERCOM terminal",
	Long: `nathterm is a simulated command shell over an in-memory file tree.

It offers navigation commands, scripted security-tool simulations, and
AI-backed explain, analyze and chat commands.

Run without arguments to start the interactive terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		// The interactive view owns the terminal, so it logs to a file.
		opts := logging.Options{Level: cfg.Logging.Level, Verbose: verbose}
		if cmd == cmd.Root() {
			opts.File = cfg.Logging.File
		}
		logger, err = logging.New(opts)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("backend") {
		c.LLM.Backend = backend
	}
	if cmd.Flags().Changed("model") {
		c.LLM.Model = model
	}
	if cmd.Flags().Changed("seed") {
		c.Shell.SeedFile = seedFile
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/nathterm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "text backend: gemini, anthropic, ollama or offline")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model name for the text backend")
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "YAML file tree replacing the built-in one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(execCmd, treeCmd, versionCmd)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
