package fav

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	favlist "github.com/Paintersrp/kf/pkg/cmd/fav/list"
	favmutate "github.com/Paintersrp/kf/pkg/cmd/fav/mutate"
)

func NewCmdFav(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite paths.",
		Long: heredoc.Doc(`
			Favorites are pinned paths kept in the config file. The browser
			toggles them with ctrl+s.
		`),
		// Bare "kf fav" lists favorites
		RunE: favlist.NewCmdList(s).RunE,
	}

	cmd.AddCommand(
		favlist.NewCmdList(s),
		favmutate.NewCmdMutate(s, "add"),
		favmutate.NewCmdMutate(s, "rm"),
		favmutate.NewCmdMutate(s, "toggle"),
	)

	return cmd
}
