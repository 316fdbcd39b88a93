package find

import (
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/fzf"
	"github.com/Paintersrp/kf/internal/state"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

func NewCmdFind(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find [query]",
		Aliases: []string{"f"},
		Short:   "Pick one match with a fuzzyfinder.",
		Long: heredoc.Doc(`
			Run a search, then pick one result interactively with a fuzzyfinder
			and a preview pane. The selected path is printed, ready to pipe
			into another command.

			Examples:
			  kf find            // pick from everything under the root
			  kf find main.rs    // narrow first, then pick
			  kf find --tag work
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := cmdpkg.ResolveScope(cmd, s, "")
			if err != nil {
				return err
			}
			limit, err := flags.HandleLimit(cmd)
			if err != nil {
				return err
			}

			raw := ""
			if len(args) > 0 {
				raw = args[0]
			}

			finder := fzf.NewFuzzyFinder(s.Engine, s.Renderer, "Select a path.")
			choice, err := finder.Run(cmd.Context(), raw, scope, limit)
			if err != nil {
				return err
			}

			visit := choice
			if info, err := os.Stat(visit); err == nil && !info.IsDir() {
				visit = filepath.Dir(visit)
			}
			if err := s.Recents.Visit(visit); err != nil {
				cmd.PrintErrf("warning: failed to record visit: %v\n", err)
			}

			cmd.Println(choice)
			return nil
		},
	}

	flags.AddScope(cmd)
	flags.AddLimit(cmd)

	return cmd
}
