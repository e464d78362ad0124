package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/domain"
	"github.com/scbirs/order-explorer/internal/format"
	"github.com/scbirs/order-explorer/internal/search"
	"github.com/scbirs/order-explorer/internal/store"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders from the local dataset",
	Long: `List orders from the local dataset.

USAGE:
    order-explorer list [OPTIONS]

All status filters look at the line-item annotations: an order matches
when at least one of its line items carries (or lacks) the flag.

OPTIONS:
    --search <text>     Only orders matching the text (name, email, note, items)
    --match <strategy>  Search strategy: substring (default), regex, token
    --done              Orders with a finished item
    --not-done          Orders with an unfinished item
    --paid              Orders with a paid item
    --not-paid          Orders with an unpaid item
    --in-stock          Orders with an item in stock
    --not-in-stock      Orders with an item not in stock
    --detailed          Show line items, annotations, and metadata
    --table             Render as an aligned table
    --format <fmt>      Per-order template or preset name (see --formats)
    --formats           List the available format presets
    -h, --help          Show this help`,
	Run: runList,
}

var (
	listSearch      string
	listMatch       string
	listDone        bool
	listNotDone     bool
	listPaid        bool
	listNotPaid     bool
	listInStock     bool
	listNotInStock  bool
	listDetailed    bool
	listTable       bool
	listFormat      string
	listShowFormats bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listSearch, "search", "", "Only orders matching the text")
	listCmd.Flags().StringVar(&listMatch, "match", "substring", "Search strategy: substring, regex, token")
	listCmd.Flags().BoolVar(&listDone, "done", false, "Orders with a finished item")
	listCmd.Flags().BoolVar(&listNotDone, "not-done", false, "Orders with an unfinished item")
	listCmd.Flags().BoolVar(&listPaid, "paid", false, "Orders with a paid item")
	listCmd.Flags().BoolVar(&listNotPaid, "not-paid", false, "Orders with an unpaid item")
	listCmd.Flags().BoolVar(&listInStock, "in-stock", false, "Orders with an item in stock")
	listCmd.Flags().BoolVar(&listNotInStock, "not-in-stock", false, "Orders with an item not in stock")
	listCmd.Flags().BoolVar(&listDetailed, "detailed", false, "Show line items, annotations, and metadata")
	listCmd.Flags().BoolVar(&listTable, "table", false, "Render as an aligned table")
	listCmd.Flags().StringVar(&listFormat, "format", "", "Per-order template or preset name")
	listCmd.Flags().BoolVar(&listShowFormats, "formats", false, "List the available format presets")
}

func runList(cmd *cobra.Command, args []string) {
	if listShowFormats {
		printPresets()
		return
	}

	st, _, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}

	filters, err := buildListFilters(st)
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	view := filters.Derive()
	if len(view) == 0 {
		colors.Info("no orders match")
		return
	}

	switch {
	case listFormat != "":
		// No footer here, formatted output feeds scripts.
		if err := printFormatted(st, view); err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		return
	case listTable:
		if err := format.NewTableFormatter().FormatOrders(view, os.Stdout); err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
	default:
		for _, o := range view {
			printOrder(st, o, listDetailed)
		}
	}
	fmt.Printf("%d/%d orders\n", len(view), len(st.Orders))
}

// buildListFilters translates the list flags into a filter set over
// the store's orders.
func buildListFilters(st store.Store) (*domain.FilterSet, error) {
	filters := domain.NewFilterSet(st.Orders)
	lookup := st.Lookup()
	if listSearch != "" {
		pred, err := searchPredicate(listSearch, listMatch)
		if err != nil {
			return nil, err
		}
		filters.Add(domain.FilterSearch, pred)
	}
	if listDone || listNotDone {
		filters.Add(domain.FilterDone, domain.DonePredicate(lookup, listDone))
	}
	if listPaid || listNotPaid {
		filters.Add(domain.FilterPaid, domain.PaidPredicate(lookup, listPaid))
	}
	if listInStock || listNotInStock {
		filters.Add(domain.FilterInStock, domain.InStockPredicate(lookup, listInStock))
	}
	return filters, nil
}

// searchPredicate builds the search predicate for the chosen strategy.
func searchPredicate(query, strategy string) (domain.Predicate, error) {
	if strategy == "substring" {
		return domain.SearchPredicate(query), nil
	}
	provider, err := search.New(strategy)
	if err != nil {
		return nil, err
	}
	return func(o domain.Order) bool {
		return provider.Match(o, query)
	}, nil
}

// printFormatted renders every order through the template engine. The
// format is either a literal template or a preset name.
func printFormatted(st store.Store, view []domain.Order) error {
	template := listFormat
	if !strings.Contains(template, "{{") {
		preset, err := format.NewPresetRegistry().Get(template)
		if err != nil {
			return err
		}
		template = preset.Template
	}
	if err := format.ValidateTemplate(template); err != nil {
		return err
	}

	engine := format.NewTemplateEngine()
	lookup := st.Lookup()
	for _, o := range view {
		line, err := engine.Substitute(template, format.VariableContext{Order: o, Lookup: lookup})
		if err != nil {
			return err
		}
		fmt.Println(line)
	}
	return nil
}

func printPresets() {
	for _, preset := range format.NewPresetRegistry().List() {
		fmt.Printf("%-10s %s\n", preset.Name, preset.Description)
		fmt.Printf("           %s\n", preset.Template)
	}
}

func printOrder(st store.Store, o domain.Order, detailed bool) {
	fmt.Printf("#%d  %s  <%s>  %s  %s\n", o.ID, o.BuyerName(), o.Email, o.Status, o.Total)
	if !detailed {
		return
	}
	if o.Note != "" {
		fmt.Printf("    note: %s\n", o.Note)
	}
	for _, li := range o.LineItems {
		ann := st.AnnotationFor(li.ID)
		fmt.Printf("    [%s] %dx %s (%s) %.2f%s\n",
			annotationFlags(ann), li.Quantity, li.Name, li.SKU, li.Price, metaSummary(li))
	}
}

// annotationFlags renders the three flags as a compact "SPD" block.
func annotationFlags(ann domain.Annotation) string {
	flags := []byte("---")
	if ann.InStock {
		flags[0] = 'S'
	}
	if ann.Paid {
		flags[1] = 'P'
	}
	if ann.Done {
		flags[2] = 'D'
	}
	return string(flags)
}

func metaSummary(li domain.LineItem) string {
	if len(li.Meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(li.Meta))
	for k := range li.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+li.Meta[k])
	}
	return " " + strings.Join(parts, " ")
}
