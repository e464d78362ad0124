package fetch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawOrder(t *testing.T, doc string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	return raw
}

const validOrderDoc = `{
	"id": 42,
	"status": "processing",
	"customer_note": "leave at the door",
	"total": "59.90",
	"billing": {"first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com"},
	"shipping": {"first_name": "Grace", "last_name": "Hopper"},
	"line_items": [
		{
			"id": 100,
			"quantity": 2,
			"name": "Blue Mug",
			"sku": "MUG-B",
			"price": 12.5,
			"product_id": 7,
			"variation_id": 70,
			"meta_data": [
				{"key": "color", "value": "blue"},
				{"key": "size", "value": 11}
			]
		}
	]
}`

func TestAssembleOrder(t *testing.T) {
	order, err := assembleOrder(rawOrder(t, validOrderDoc))
	require.NoError(t, err)

	assert.Equal(t, 42, order.ID)
	assert.Equal(t, "processing", order.Status)
	assert.Equal(t, "leave at the door", order.Note)
	assert.Equal(t, "Ada Lovelace", order.BuyerName())
	assert.Equal(t, "Grace Hopper", order.ShippingName())
	assert.Equal(t, "ada@example.com", order.Email)
	// The total stays exactly as the remote sent it.
	assert.Equal(t, "59.90", order.Total)

	require.Len(t, order.LineItems, 1)
	li := order.LineItems[0]
	assert.Equal(t, 100, li.ID)
	assert.Equal(t, 2, li.Quantity)
	assert.Equal(t, "Blue Mug", li.Name)
	assert.Equal(t, "MUG-B", li.SKU)
	assert.Equal(t, 12.5, li.Price)
	assert.True(t, li.IsVariant())
	assert.Equal(t, map[string]string{"color": "blue", "size": "11"}, li.Meta)
}

func TestAssembleOrderDeterministic(t *testing.T) {
	a, err := assembleOrder(rawOrder(t, validOrderDoc))
	require.NoError(t, err)
	b, err := assembleOrder(rawOrder(t, validOrderDoc))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssembleOrderRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"missing id", func(r map[string]any) { delete(r, "id") }, "id"},
		{"id wrong kind", func(r map[string]any) { r["id"] = "42" }, "id"},
		{"missing status", func(r map[string]any) { delete(r, "status") }, "status"},
		{"total as number", func(r map[string]any) { r["total"] = 59.9 }, "total"},
		{"billing not object", func(r map[string]any) { r["billing"] = "x" }, "billing"},
		{"missing line items", func(r map[string]any) { delete(r, "line_items") }, "line_items"},
		{"line items not array", func(r map[string]any) { r["line_items"] = map[string]any{} }, "line_items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawOrder(t, validOrderDoc)
			tt.mutate(raw)
			_, err := assembleOrder(raw)
			require.Error(t, err)

			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestAssembleOrderRejectsImpossibleValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{
			"negative quantity",
			func(r map[string]any) {
				item := r["line_items"].([]any)[0].(map[string]any)
				item["quantity"] = -5.0
			},
			"negative quantity",
		},
		{
			"zero order id",
			func(r map[string]any) { r["id"] = 0.0 },
			"invalid order ID",
		},
		{
			"empty status",
			func(r map[string]any) { r["status"] = "" },
			"status cannot be empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawOrder(t, validOrderDoc)
			tt.mutate(raw)
			_, err := assembleOrder(raw)
			require.Error(t, err)

			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAssembleLineItemRejectsBadFields(t *testing.T) {
	base := func() map[string]any {
		raw := rawOrder(t, validOrderDoc)
		items := raw["line_items"].([]any)
		return items[0].(map[string]any)
	}

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing quantity", func(r map[string]any) { delete(r, "quantity") }},
		{"price as string", func(r map[string]any) { r["price"] = "12.50" }},
		{"missing sku", func(r map[string]any) { delete(r, "sku") }},
		{"meta entry not object", func(r map[string]any) { r["meta_data"] = []any{"x"} }},
		{"meta value not scalar", func(r map[string]any) {
			r["meta_data"] = []any{map[string]any{"key": "k", "value": []any{}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base()
			tt.mutate(raw)
			_, err := assembleLineItem(raw)
			assert.Error(t, err)
		})
	}
}

func TestAssembleMetaLastWriteWins(t *testing.T) {
	raw := rawOrder(t, `{
		"meta_data": [
			{"key": "size", "value": "S"},
			{"key": "size", "value": "XL"}
		]
	}`)
	meta, err := assembleMeta(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"size": "XL"}, meta)
}

func TestScalarFieldRendersBoolAndNumber(t *testing.T) {
	raw := map[string]any{"b": true, "n": 2.0, "s": "x"}

	v, err := scalarField(raw, "b")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	v, err = scalarField(raw, "n")
	require.NoError(t, err)
	assert.Equal(t, "2", v)

	v, err = scalarField(raw, "s")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}
