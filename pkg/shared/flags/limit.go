package flags

import (
	"github.com/spf13/cobra"
)

func AddLimit(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of results to keep. Zero keeps everything.")
}

func HandleLimit(cmd *cobra.Command) (int, error) {
	return cmd.Flags().GetInt("limit")
}
