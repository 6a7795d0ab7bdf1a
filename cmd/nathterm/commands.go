package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NERVsystems/nathterm/internal/shell"
	"github.com/NERVsystems/nathterm/internal/vfs"
)

var execCmd = &cobra.Command{
	Use:   "exec [line]...",
	Short: "Run command lines in a fresh session and print the scrollback",
	Long: `Runs each line through one session in order, waits for simulations and
AI replies to settle, then prints the scrollback as plain text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the file tree sessions start from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tpl, err := loadTemplate(cfg.Shell)
		if err != nil {
			return err
		}
		return printTree(cmd.OutOrStdout(), tpl.Build())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nathterm %s\n", version)
	},
}

func runExec(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	t, err := newTerminal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer t.session.Close()

	for _, line := range args {
		t.dispatcher.Run(ctx, t.session, line)
		if err := t.session.Wait(ctx); err != nil {
			return err
		}
	}
	return printScrollback(cmd.OutOrStdout(), t.session.Scrollback())
}

func printScrollback(w io.Writer, entries []shell.Entry) error {
	for _, e := range entries {
		if e.Prompt != "" || e.Input != "" {
			if _, err := fmt.Fprintln(w, e.Prompt+e.Input); err != nil {
				return err
			}
		}
		if e.Output == nil {
			continue
		}
		if out := strings.Trim(e.Output.String(), "\n"); out != "" {
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func printTree(w io.Writer, fsys *vfs.FS) error {
	return fsys.Walk(func(p vfs.Path, n vfs.Node) error {
		name := n.Name()
		if len(p) == 1 {
			name = ""
		}
		if n.IsDir() {
			name += "/"
		}
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", len(p)-1), name)
		return err
	})
}
