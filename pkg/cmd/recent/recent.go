package recent

import (
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kf/internal/state"
	recentclear "github.com/Paintersrp/kf/pkg/cmd/recent/clear"
)

func NewCmdRecent(s *state.State) *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:     "recent",
		Aliases: []string{"r"},
		Short:   "List recently visited directories, newest first.",
		Long: heredoc.Doc(`
			The browser records the directory of every selection. --since takes
			a date in almost any notation, or a duration to look back by.

			Examples:
			  kf recent
			  kf recent --since 2026-08-01
			  kf recent --since "Aug 1, 2026"
			  kf recent --since 72h
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := s.Recents.All()
			if since != "" {
				cutoff, err := parseSince(since)
				if err != nil {
					return err
				}
				entries = s.Recents.Since(cutoff)
			}

			if len(entries) == 0 {
				cmd.Println("No recent visits.")
				return nil
			}

			for _, e := range entries {
				cmd.Printf("%s  %s\n", e.VisitedAt.Format("2006-01-02 15:04"), e.Path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(
		&since,
		"since",
		"",
		"Only show visits after this date, or within this duration (e.g. 72h).",
	)

	cmd.AddCommand(recentclear.NewCmdClear(s))

	return cmd
}

func parseSince(raw string) (time.Time, error) {
	if d, err := time.ParseDuration(raw); err == nil {
		return time.Now().Add(-d), nil
	}

	cutoff, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse --since %q: %w", raw, err)
	}

	return cutoff, nil
}
