// Package cli wires the tada commands: the interactive list (default) and
// scriptable add/done/rm/ls/save subcommands.
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Backend    string
	Path       string
	Key        string
	Theme      string
	LogLevel   string
	LogFile    string
	Autosave   string
}

// NewRootCommand creates the tada command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny todo list",
		Long: `tada keeps a short todo list in durable local storage.

Run without a subcommand to open the interactive list. The list is saved
with ctrl+s and automatically every autosave interval (20s by default).`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	f := cmd.PersistentFlags()
	f.StringVar(&opts.ConfigFile, "config", "", "config file (default <user config dir>/tada/config.toml)")
	f.StringVar(&opts.Backend, "backend", "", "storage backend (json|sqlite|memory)")
	f.StringVar(&opts.Path, "path", "", "data directory (json) or database file (sqlite)")
	f.StringVar(&opts.Key, "key", "", "storage key holding the list")
	f.StringVar(&opts.Theme, "theme", "", "color theme (classic|neon|mono)")
	f.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	f.StringVar(&opts.LogFile, "log-file", "", "append logs to this file")
	f.StringVar(&opts.Autosave, "autosave", "", "autosave interval, e.g. 20s (0 disables)")

	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newDoneCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newSaveCommand(opts))

	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

// valueArgs requires at least one word; the words form the item value.
func valueArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageError("usage: %s", cmd.UseLine())
	}
	return nil
}

func joinValue(args []string) string {
	return strings.Join(args, " ")
}

// resolveConfig layers flags over config.Load and finalizes the result.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, usageError("%v", err)
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("backend", &cfg.Backend, opts.Backend)
	set("path", &cfg.Path, opts.Path)
	set("key", &cfg.Key, opts.Key)
	set("theme", &cfg.Theme, opts.Theme)
	set("log-level", &cfg.LogLevel, opts.LogLevel)
	set("log-file", &cfg.LogFile, opts.LogFile)
	if flags.Changed("autosave") {
		d, err := time.ParseDuration(opts.Autosave)
		if err != nil {
			return nil, usageError("invalid --autosave %q: %v", opts.Autosave, err)
		}
		cfg.AutosaveInterval = d
	}

	if err := cfg.Finalize(); err != nil {
		return nil, usageError("%v", err)
	}
	return cfg, nil
}

// commandLogger logs to the configured file, or to stderr for one-shot
// commands.
func commandLogger(cfg *config.Config, stderr io.Writer) (*log.Logger, io.Closer, error) {
	if cfg.LogFile != "" {
		return logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	}
	return logging.New(stderr, cfg.LogLevel), io.NopCloser(nil), nil
}

// withSession resolves config, opens a session, runs fn and closes the
// session again.
func withSession(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, s *session.Session, theme ui.Theme) error) (err error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, closer, err := commandLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return failure("logging", err)
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := session.Open(ctx, cfg, logger)
	if err != nil {
		return failure("open", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = failure("close", cerr)
		}
	}()
	return fn(ctx, s, ui.NewTheme(cfg.Theme))
}

func runInteractive(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	// The terminal belongs to the UI; log to a file or nowhere.
	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return failure("logging", err)
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := session.Open(ctx, cfg, logger)
	if err != nil {
		return failure("open", err)
	}
	runErr := tui.Run(ctx, s.Store, s, ui.NewTheme(cfg.Theme))
	closeErr := s.Close()
	if runErr != nil {
		return failure("tui", runErr)
	}
	if closeErr != nil {
		return failure("close", closeErr)
	}
	return nil
}

// Execute runs the command tree with args and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		ui.NewTheme("").Fail(stderr, err.Error())
	}
	return ExitCode(err)
}
