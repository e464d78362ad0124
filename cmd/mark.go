package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/store"
)

// markCmd represents the mark command
var markCmd = &cobra.Command{
	Use:   "mark <line-item-id>",
	Short: "Set fulfillment flags on a line item",
	Long: `Set fulfillment flags on a line item.

USAGE:
    order-explorer mark <line-item-id> [OPTIONS]

Only flags given on the command line are changed; the others keep
their current value.

OPTIONS:
    --in-stock[=false]  Set or clear the in-stock flag
    --paid[=false]      Set or clear the paid flag
    --done[=false]      Set or clear the done flag
    -h, --help          Show this help`,
	Args: cobra.ExactArgs(1),
	Run:  runMark,
}

var (
	markInStock bool
	markPaid    bool
	markDone    bool
)

func init() {
	rootCmd.AddCommand(markCmd)

	markCmd.Flags().BoolVar(&markInStock, "in-stock", false, "Set or clear the in-stock flag")
	markCmd.Flags().BoolVar(&markPaid, "paid", false, "Set or clear the paid flag")
	markCmd.Flags().BoolVar(&markDone, "done", false, "Set or clear the done flag")
}

func runMark(cmd *cobra.Command, args []string) {
	lineItemID, err := strconv.Atoi(args[0])
	if err != nil || lineItemID <= 0 {
		colors.Error("'mark' requires a numeric line item id")
		os.Exit(1)
	}
	if !cmd.Flags().Changed("in-stock") && !cmd.Flags().Changed("paid") && !cmd.Flags().Changed("done") {
		colors.Error("'mark' requires at least one of --in-stock, --paid, --done")
		os.Exit(1)
	}

	st, path, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	if !lineItemExists(st, lineItemID) {
		colors.Warning(fmt.Sprintf("line item %d is not part of any current order; annotating anyway", lineItemID))
	}

	ann := st.AnnotationFor(lineItemID)
	if cmd.Flags().Changed("in-stock") {
		ann = ann.WithInStock(markInStock)
	}
	if cmd.Flags().Changed("paid") {
		ann = ann.WithPaid(markPaid)
	}
	if cmd.Flags().Changed("done") {
		ann = ann.WithDone(markDone)
	}

	st = st.SetAnnotation(lineItemID, ann)
	if _, err := store.Save(path, st); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	colors.Success(fmt.Sprintf("line item %d marked", lineItemID))
}

func lineItemExists(st store.Store, lineItemID int) bool {
	for _, o := range st.Orders {
		for _, li := range o.LineItems {
			if li.ID == lineItemID {
				return true
			}
		}
	}
	return false
}
