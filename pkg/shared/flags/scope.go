package flags

import (
	"github.com/spf13/cobra"
)

// AddScope registers the flags that pick where a search looks.
func AddScope(cmd *cobra.Command) {
	cmd.Flags().
		StringSliceP("tag", "t", nil, "Search only paths covered by this tag. Repeat to intersect tags.")
	cmd.Flags().
		StringP("root", "r", "", "Directory tree to search. Defaults to the configured default root.")
}

func HandleTags(cmd *cobra.Command) ([]string, error) {
	return cmd.Flags().GetStringSlice("tag")
}

func HandleRoot(cmd *cobra.Command) (string, error) {
	return cmd.Flags().GetString("root")
}
