// Package format renders order listings for the CLI: an aligned table
// view and a template engine with customizable per-order variables and
// preset formats.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":     6,
			"Status": 12,
			"Buyer":  22,
			"Email":  26,
			"Items":  5,
			"Total":  10,
		},
		ColumnAlignments: map[string]string{
			"ID":    "right",
			"Items": "right",
			"Total": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the value from an order.
	Extractor func(domain.Order) string
}

// TableFormatter renders orders as an aligned table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	col := func(name string, extract func(domain.Order) string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: extract,
		}
	}
	columns := []TableColumn{
		col("ID", func(o domain.Order) string { return fmt.Sprintf("%d", o.ID) }),
		col("Status", func(o domain.Order) string { return o.Status }),
		col("Buyer", func(o domain.Order) string { return o.BuyerName() }),
		col("Email", func(o domain.Order) string { return o.Email }),
		col("Items", func(o domain.Order) string { return fmt.Sprintf("%d", len(o.LineItems)) }),
		col("Total", func(o domain.Order) string { return o.Total }),
	}
	return &TableFormatter{
		config:  config,
		columns: columns,
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatOrders writes the orders as an aligned table.
func (f *TableFormatter) FormatOrders(orders []domain.Order, writer io.Writer) error {
	if len(orders) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
		if err := f.writeSeparator(writer); err != nil {
			return err
		}
	}

	for _, o := range orders {
		if err := f.writeRow(o, writer); err != nil {
			return err
		}
	}

	return nil
}

func (f *TableFormatter) writeHeader(writer io.Writer) error {
	for i, col := range f.columns {
		header := formatString(col.Name, col.Width, "left")
		if i == 0 {
			if _, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, header, colors.Reset); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(writer, "  %s", header); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	for i, col := range f.columns {
		separator := strings.Repeat("-", col.Width)
		if i == 0 {
			if _, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, separator, colors.Reset); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(writer, "  %s", separator); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

func (f *TableFormatter) writeRow(order domain.Order, writer io.Writer) error {
	for i, col := range f.columns {
		value := formatString(col.Extractor(order), col.Width, col.Alignment)
		if i > 0 {
			if _, err := fmt.Fprintf(writer, "  %s", value); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(writer, "%s", value); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// formatString pads or truncates a string to the given width. Values
// longer than the width are cut with a "..." marker where it fits.
func formatString(s string, width int, alignment string) string {
	if len(s) > width {
		if width < 4 {
			return s[:width]
		}
		return s[:width-3] + "..."
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-len(s)) + s
	case "center":
		left := (width - len(s)) / 2
		right := width - len(s) - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-len(s))
	}
}
