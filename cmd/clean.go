package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/store"
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove annotations for line items no longer in any order",
	Long: `Remove annotations for line items no longer in any order.

USAGE:
    order-explorer clean

Annotations normally survive refreshes even when their line item
disappears, since the item may come back later. This is the only
operation that removes them.`,
	Run: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	st, path, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}

	before := len(st.User.Annotations)
	st = st.Clean()
	removed := before - len(st.User.Annotations)

	if _, err := store.Save(path, st); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	colors.Success(fmt.Sprintf("removed %d stale annotations", removed))
}
