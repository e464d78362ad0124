// Package domain provides the domain layer for orders.
// It contains the remote order model, local annotations, and the
// filter engine that derives views over the merged dataset.
package domain

import (
	"fmt"
	"strings"
)

// Order represents a single purchase transaction fetched from the shop.
// Orders are immutable values; a refresh replaces them wholesale.
type Order struct {
	ID                int        `json:"id"`
	Status            string     `json:"status"`
	Note              string     `json:"note"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	ShippingFirstName string     `json:"shipping_first_name"`
	ShippingLastName  string     `json:"shipping_last_name"`
	Email             string     `json:"email"`
	// Total keeps the exact string the remote sent. Reformatting
	// currency through a float loses trailing zeros.
	Total     string     `json:"total"`
	LineItems []LineItem `json:"line_items"`
}

// LineItem is one product line within an order. The ID is the
// order-line id, not the product id; local annotations key on it.
type LineItem struct {
	ID          int               `json:"id"`
	Quantity    int               `json:"quantity"`
	Name        string            `json:"name"`
	Meta        map[string]string `json:"meta"`
	Price       float64           `json:"price"`
	SKU         string            `json:"sku"`
	ProductID   int               `json:"product_id"`
	VariationID int               `json:"variation_id"`
}

// IsVariant reports whether the line item refers to a product variation.
func (l LineItem) IsVariant() bool {
	return l.VariationID != 0
}

// BuyerName returns the billing name as a single display string.
func (o Order) BuyerName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// ShippingName returns the shipping name as a single display string.
func (o Order) ShippingName() string {
	return strings.TrimSpace(o.ShippingFirstName + " " + o.ShippingLastName)
}

// String returns a short human-readable order summary.
func (o Order) String() string {
	return fmt.Sprintf("#%d %s <%s> %s (%d items)", o.ID, o.BuyerName(), o.Email, o.Status, len(o.LineItems))
}

// Validate validates the order and returns an error if invalid.
func (o Order) Validate() error {
	if o.ID <= 0 {
		return fmt.Errorf("invalid order ID: %d", o.ID)
	}
	if o.Status == "" {
		return fmt.Errorf("order %d: status cannot be empty", o.ID)
	}
	for _, li := range o.LineItems {
		if li.ID <= 0 {
			return fmt.Errorf("order %d: invalid line item ID: %d", o.ID, li.ID)
		}
		if li.Quantity < 0 {
			return fmt.Errorf("order %d: negative quantity on line item %d", o.ID, li.ID)
		}
	}
	return nil
}
