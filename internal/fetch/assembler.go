package fetch

import (
	"fmt"
	"strconv"

	"github.com/scbirs/order-explorer/internal/domain"
)

// assembleOrder converts one raw order record from the JSON feed into
// a domain order. Pure and deterministic: the same record always
// yields the same order. Required fields that are absent or of the
// wrong kind reject the whole record.
func assembleOrder(raw map[string]any) (domain.Order, error) {
	id, err := intField(raw, "id")
	if err != nil {
		return domain.Order{}, err
	}
	status, err := stringField(raw, "status")
	if err != nil {
		return domain.Order{}, err
	}
	note, err := stringField(raw, "customer_note")
	if err != nil {
		return domain.Order{}, err
	}
	total, err := stringField(raw, "total")
	if err != nil {
		return domain.Order{}, err
	}
	billing, err := objectField(raw, "billing")
	if err != nil {
		return domain.Order{}, err
	}
	shipping, err := objectField(raw, "shipping")
	if err != nil {
		return domain.Order{}, err
	}
	firstName, err := stringField(billing, "first_name")
	if err != nil {
		return domain.Order{}, err
	}
	lastName, err := stringField(billing, "last_name")
	if err != nil {
		return domain.Order{}, err
	}
	email, err := stringField(billing, "email")
	if err != nil {
		return domain.Order{}, err
	}
	shipFirst, err := stringField(shipping, "first_name")
	if err != nil {
		return domain.Order{}, err
	}
	shipLast, err := stringField(shipping, "last_name")
	if err != nil {
		return domain.Order{}, err
	}
	rawItems, err := arrayField(raw, "line_items")
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.LineItem, 0, len(rawItems))
	for i, entry := range rawItems {
		obj, ok := entry.(map[string]any)
		if !ok {
			return domain.Order{}, &MalformedRecordError{
				Field:  fmt.Sprintf("line_items[%d]", i),
				Reason: "is not an object",
			}
		}
		item, err := assembleLineItem(obj)
		if err != nil {
			return domain.Order{}, err
		}
		items = append(items, item)
	}

	order := domain.Order{
		ID:                id,
		Status:            status,
		Note:              note,
		FirstName:         firstName,
		LastName:          lastName,
		ShippingFirstName: shipFirst,
		ShippingLastName:  shipLast,
		Email:             email,
		Total:             total,
		LineItems:         items,
	}
	// Fields can be well-shaped yet carry impossible values, like a
	// negative quantity. Those records are rejected, not coerced.
	if err := order.Validate(); err != nil {
		return domain.Order{}, &MalformedRecordError{Err: err}
	}
	return order, nil
}

func assembleLineItem(raw map[string]any) (domain.LineItem, error) {
	id, err := intField(raw, "id")
	if err != nil {
		return domain.LineItem{}, err
	}
	quantity, err := intField(raw, "quantity")
	if err != nil {
		return domain.LineItem{}, err
	}
	name, err := stringField(raw, "name")
	if err != nil {
		return domain.LineItem{}, err
	}
	sku, err := stringField(raw, "sku")
	if err != nil {
		return domain.LineItem{}, err
	}
	price, err := floatField(raw, "price")
	if err != nil {
		return domain.LineItem{}, err
	}
	productID, err := intField(raw, "product_id")
	if err != nil {
		return domain.LineItem{}, err
	}
	variationID, err := intField(raw, "variation_id")
	if err != nil {
		return domain.LineItem{}, err
	}
	meta, err := assembleMeta(raw)
	if err != nil {
		return domain.LineItem{}, err
	}

	return domain.LineItem{
		ID:          id,
		Quantity:    quantity,
		Name:        name,
		Meta:        meta,
		Price:       price,
		SKU:         sku,
		ProductID:   productID,
		VariationID: variationID,
	}, nil
}

// assembleMeta flattens the meta_data array of {key, value} pairs into
// a map. Repeated keys are last-write-wins.
func assembleMeta(raw map[string]any) (map[string]string, error) {
	entries, err := arrayField(raw, "meta_data")
	if err != nil {
		return nil, err
	}
	meta := make(map[string]string, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, &MalformedRecordError{
				Field:  fmt.Sprintf("meta_data[%d]", i),
				Reason: "is not an object",
			}
		}
		key, err := stringField(obj, "key")
		if err != nil {
			return nil, err
		}
		value, err := scalarField(obj, "value")
		if err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, nil
}

func stringField(raw map[string]any, field string) (string, error) {
	v, ok := raw[field]
	if !ok {
		return "", &MalformedRecordError{Field: field, Reason: "is missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &MalformedRecordError{Field: field, Reason: "is not a string"}
	}
	return s, nil
}

func floatField(raw map[string]any, field string) (float64, error) {
	v, ok := raw[field]
	if !ok {
		return 0, &MalformedRecordError{Field: field, Reason: "is missing"}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &MalformedRecordError{Field: field, Reason: "is not a number"}
	}
	return f, nil
}

func intField(raw map[string]any, field string) (int, error) {
	f, err := floatField(raw, field)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func objectField(raw map[string]any, field string) (map[string]any, error) {
	v, ok := raw[field]
	if !ok {
		return nil, &MalformedRecordError{Field: field, Reason: "is missing"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &MalformedRecordError{Field: field, Reason: "is not an object"}
	}
	return obj, nil
}

func arrayField(raw map[string]any, field string) ([]any, error) {
	v, ok := raw[field]
	if !ok {
		return nil, &MalformedRecordError{Field: field, Reason: "is missing"}
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &MalformedRecordError{Field: field, Reason: "is not an array"}
	}
	return arr, nil
}

// scalarField renders a scalar JSON value as text, matching how the
// feed represents variant options: usually strings, occasionally
// numbers or booleans.
func scalarField(raw map[string]any, field string) (string, error) {
	v, ok := raw[field]
	if !ok {
		return "", &MalformedRecordError{Field: field, Reason: "is missing"}
	}
	switch typed := v.(type) {
	case string:
		return typed, nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(typed), nil
	default:
		return "", &MalformedRecordError{Field: field, Reason: "is not a scalar"}
	}
}
