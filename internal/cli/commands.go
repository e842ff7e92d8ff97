package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/session"
	"github.com/Makepad-fr/tada/internal/ui"
)

// mutate runs op against the session store and saves only if it changed
// something.
func mutate(cmd *cobra.Command, opts *RootOptions, op func(s *session.Session) bool, okMsg, noopMsg string) error {
	return withSession(cmd, opts, func(ctx context.Context, s *session.Session, theme ui.Theme) error {
		if !op(s) {
			theme.Info(cmd.OutOrStdout(), noopMsg)
			return nil
		}
		if err := s.Save(ctx); err != nil {
			return failure("save", err)
		}
		theme.OK(cmd.OutOrStdout(), okMsg)
		return nil
	})
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <value...>",
		Short: "Add an item (words are joined with spaces)",
		Example: `  tada add "buy milk"
  tada add walk the dog`,
		Args: valueArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := joinValue(args)
			return mutate(cmd, opts, func(s *session.Session) bool { return s.Store.Add(v) },
				"added", fmt.Sprintf("nothing added: %q is empty or already on the list", v))
		},
	}
}

func newDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <value...>",
		Short: "Mark an item as done",
		Args:  valueArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := joinValue(args)
			return mutate(cmd, opts, func(s *session.Session) bool { return s.Store.MarkDone(v) },
				"marked done", fmt.Sprintf("nothing to mark: no pending item %q", v))
		},
	}
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <value...>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an item",
		Args:    valueArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := joinValue(args)
			return mutate(cmd, opts, func(s *session.Session) bool { return s.Store.Remove(v) },
				"removed", fmt.Sprintf("nothing removed: no item %q", v))
		},
	}
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var (
		format string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the list",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !oneOf(format, validFormats) {
				return usageError("invalid format %q: must be one of %v", format, validFormats)
			}
			return withSession(cmd, opts, func(_ context.Context, s *session.Session, theme ui.Theme) error {
				if err := writeItems(cmd.OutOrStdout(), format, s.Store.Items(), theme, group); err != nil {
					return failure("write", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format (text|json|yaml)")
	cmd.Flags().BoolVar(&group, "group", false, "group text output by pending/done")
	return cmd
}

func newSaveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Rewrite the stored list in canonical form",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *session.Session, theme ui.Theme) error {
				if err := s.Save(ctx); err != nil {
					return failure("save", err)
				}
				theme.OK(cmd.OutOrStdout(), fmt.Sprintf("saved %d items", s.Store.Len()))
				return nil
			})
		},
	}
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
