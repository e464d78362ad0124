package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/fetch"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the connection to the shop API",
	Long: `Check the connection to the shop API using the stored settings.

USAGE:
    order-explorer check`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	st, _, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	if st.User.Settings.IsEmpty() {
		colors.Error("no API settings configured; run 'order-explorer settings' first")
		os.Exit(1)
	}
	if !fetch.Probe(cmd.Context(), *st.User.Settings) {
		colors.Error("connection failed")
		os.Exit(1)
	}
	colors.Success("connection ok")
}
