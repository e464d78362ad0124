package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbirs/order-explorer/internal/domain"
)

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().FormatOrders(nil, &buf))
	assert.Empty(t, buf.String())
}

func TestTableFormatterRendersRows(t *testing.T) {
	var buf bytes.Buffer
	orders := []domain.Order{
		sampleOrder(),
		{ID: 7, Status: "on-hold", FirstName: "Grace", LastName: "Hopper",
			Email: "grace@example.com", Total: "12.00"},
	}
	require.NoError(t, NewTableFormatter().FormatOrders(orders, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Header, separator, one row per order.
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "Buyer")
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "42")
	assert.Contains(t, lines[2], "Ada Lovelace")
	assert.Contains(t, lines[3], "Grace Hopper")
	assert.Contains(t, lines[3], "12.00")
}

func TestTableFormatterCustomColumn(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewTableFormatter().WithColumns(TableColumn{
		Name:  "Note",
		Width: 10,
		Extractor: func(o domain.Order) string {
			return o.Note
		},
	})
	order := sampleOrder()
	order.Note = "gift wrap"
	require.NoError(t, formatter.FormatOrders([]domain.Order{order}, &buf))
	assert.Contains(t, buf.String(), "gift wrap")
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ab   ", formatString("ab", 5, "left"))
	assert.Equal(t, "   ab", formatString("ab", 5, "right"))
	assert.Equal(t, " ab  ", formatString("ab", 5, "center"))
	assert.Equal(t, "ab...", formatString("abcdefgh", 5, "left"))
	assert.Equal(t, "abc", formatString("abcdefgh", 3, "left"))
}
