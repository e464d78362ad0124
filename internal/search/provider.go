// Package search provides a unified query-matching abstraction for
// filtering orders. It supports multiple strategies (substring, regex,
// token-based) through a common Provider interface, shared by the CLI
// list command and the interactive browser.
package search

import (
	"fmt"

	"github.com/scbirs/order-explorer/internal/domain"
)

// Provider defines the interface for search providers.
// Implementations can use different strategies (substring, regex,
// token-based) to match orders against a query.
type Provider interface {
	// Match returns true if the order matches the search query.
	Match(order domain.Order, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, matching ignores case
	Fields          []string // Fields to search in (default: all fields)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{"buyer", "shipping", "email", "note", "status", "item", "sku", "meta"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "buyer", "shipping", "email", "note", "status",
// "item", "sku", "meta".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a provider by strategy name.
func New(name string, opts ...Option) (Provider, error) {
	switch name {
	case "substring", "":
		return NewSubstringProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	case "token":
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q (valid: substring, regex, token)", name)
	}
}

// fieldValues extracts the searchable text of one named field. A
// single field can yield several values, e.g. "item" yields every line
// item name.
func fieldValues(order domain.Order, field string) []string {
	switch field {
	case "buyer":
		return []string{order.BuyerName()}
	case "shipping":
		return []string{order.ShippingName()}
	case "email":
		return []string{order.Email}
	case "note":
		return []string{order.Note}
	case "status":
		return []string{order.Status}
	case "item":
		values := make([]string, 0, len(order.LineItems))
		for _, li := range order.LineItems {
			values = append(values, li.Name)
		}
		return values
	case "sku":
		values := make([]string, 0, len(order.LineItems))
		for _, li := range order.LineItems {
			values = append(values, li.SKU)
		}
		return values
	case "meta":
		var values []string
		for _, li := range order.LineItems {
			for _, v := range li.Meta {
				values = append(values, v)
			}
		}
		return values
	}
	return nil
}
