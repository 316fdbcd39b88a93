package views

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	viewslist "github.com/Paintersrp/kf/pkg/cmd/views/list"
	viewsremove "github.com/Paintersrp/kf/pkg/cmd/views/remove"
	viewsrun "github.com/Paintersrp/kf/pkg/cmd/views/run"
	viewssave "github.com/Paintersrp/kf/pkg/cmd/views/save"
)

func NewCmdViews(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"views", "v"},
		Short:   "Manage saved searches.",
		Long: heredoc.Doc(`
			A view is a saved search: query text plus the tag scope or root it
			runs against. Save one once, then run it by name.

			Examples:
			  kf view save rust-sources .rs --root ~/projects
			  kf view run rust-sources
		`),
		// Bare "kf view" lists the saved views
		RunE: viewslist.NewCmdList(s).RunE,
	}

	cmd.AddCommand(
		viewslist.NewCmdList(s),
		viewssave.NewCmdSave(s),
		viewsrun.NewCmdRun(s),
		viewsremove.NewCmdRemove(s),
	)

	return cmd
}
