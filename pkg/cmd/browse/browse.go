package browse

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	"github.com/Paintersrp/kf/internal/tui/browser"
	cmdpkg "github.com/Paintersrp/kf/pkg/cmd"
	"github.com/Paintersrp/kf/pkg/shared/flags"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse [root]",
		Aliases: []string{"b"},
		Short:   "Browse matches live while typing a query.",
		Long: heredoc.Doc(`
			Open the interactive browser: results stream in as you type, with a
			preview pane for the highlighted entry. Enter prints the selection
			and records the visit; tab cycles a files/dirs filter on top of the
			query.

			Examples:
			  kf browse
			  kf browse ~/projects
			  kf browse --tag work
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootArg := ""
			if len(args) > 0 {
				rootArg = args[0]
			}

			scope, err := cmdpkg.ResolveScope(cmd, s, rootArg)
			if err != nil {
				return err
			}

			selection, err := browser.Run(s, scope)
			if err != nil {
				return err
			}
			if selection != "" {
				cmd.Println(selection)
			}

			return nil
		},
	}

	flags.AddScope(cmd)

	return cmd
}
