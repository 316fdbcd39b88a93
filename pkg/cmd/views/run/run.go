package run

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

func NewCmdRun(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Run a saved view and print the matches.",
		Long: heredoc.Doc(`
			Run the named view's query against its saved scope, ranked best
			first.

			Example:
			  kf view run rust-sources --limit 20
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				_ = cmd.Help()
				return fmt.Errorf("view name argument is required")
			}
			name := strings.TrimSpace(args[0])

			view, ok := s.Config.GetView(name)
			if !ok {
				if known := s.Config.ViewNames(); len(known) > 0 {
					return fmt.Errorf(
						"unknown view %q (saved views: %s)",
						name,
						strings.Join(known, ", "),
					)
				}
				return fmt.Errorf("unknown view %q; save one with \"kf view save\"", name)
			}

			scope, err := cmdpkg.ScopeFrom(s, view.Tags, view.Root)
			if err != nil {
				return err
			}
			limit, err := flags.HandleLimit(cmd)
			if err != nil {
				return err
			}

			results, stats, err := s.Engine.Collect(cmd.Context(), view.Query, scope, limit)
			if err != nil {
				return err
			}

			for _, r := range results {
				if r.IsDir {
					cmd.Println(r.Path + string(os.PathSeparator))
					continue
				}
				cmd.Println(r.Path)
			}

			if stats.DroppedDirs > 0 {
				cmd.PrintErrf(
					"warning: %d directories were dropped; raise queue_cap to search them\n",
					stats.DroppedDirs,
				)
			}
			for _, pe := range stats.Errors {
				cmd.PrintErrf("warning: %s: %v\n", pe.Path, pe.Err)
			}

			return nil
		},
	}

	flags.AddLimit(cmd)

	return cmd
}
