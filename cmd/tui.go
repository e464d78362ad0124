package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and annotate orders interactively",
	Long: `Browse and annotate orders interactively.

USAGE:
    order-explorer tui

KEYS:
    j/k             Move between orders
    h/l             Move between line items
    s, p, d         Toggle in-stock / paid / done on the selected item
    S, P, D         Cycle the matching filter (off, with, without)
    /               Search orders
    r               Refresh from the shop
    w               Save
    q               Quit`,
	Run: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTui(cmd *cobra.Command, args []string) {
	st, path, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	rotator, err := newRotator()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	if err := tui.Run(st, path, rotator); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
