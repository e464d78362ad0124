package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("order-explorer v%s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
