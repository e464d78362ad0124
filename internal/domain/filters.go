package domain

import (
	"sort"
	"strings"
)

// Well-known filter names used by the command and TUI layers.
const (
	FilterSearch  = "search"
	FilterDone    = "status_done"
	FilterPaid    = "status_paid"
	FilterInStock = "status_in_stock"
)

// Predicate decides whether an order stays in the derived view.
type Predicate func(Order) bool

// AnnotationLookup resolves the local annotation for a line item id.
// Unknown ids resolve to the default annotation.
type AnnotationLookup func(lineItemID int) Annotation

// FilterSet is an ordered set of named, toggleable predicates bound to
// an order sequence. Deriving the view is a pure function of the
// orders and the active predicates: all active predicates must accept
// an order (logical AND), and the original order of the sequence is
// preserved. An empty set derives the full sequence.
type FilterSet struct {
	orders []Order
	preds  map[string]Predicate
}

// NewFilterSet creates an empty filter set bound to the given orders.
func NewFilterSet(orders []Order) *FilterSet {
	return &FilterSet{
		orders: orders,
		preds:  make(map[string]Predicate),
	}
}

// Add activates a named predicate, replacing any previous predicate
// registered under the same name.
func (f *FilterSet) Add(name string, pred Predicate) {
	f.preds[name] = pred
}

// Remove deactivates a named predicate. Removing an absent name is a
// no-op.
func (f *FilterSet) Remove(name string) {
	delete(f.preds, name)
}

// Toggle adds the predicate if the name is absent and removes it if
// present. Used for checkbox-style filters.
func (f *FilterSet) Toggle(name string, pred Predicate) {
	if f.Has(name) {
		f.Remove(name)
		return
	}
	f.Add(name, pred)
}

// Has reports whether a named predicate is active.
func (f *FilterSet) Has(name string) bool {
	_, ok := f.preds[name]
	return ok
}

// Active returns the sorted names of all active predicates.
func (f *FilterSet) Active() []string {
	names := make([]string, 0, len(f.preds))
	for name := range f.preds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Derive returns the ordered subsequence of the bound orders accepted
// by every active predicate.
func (f *FilterSet) Derive() []Order {
	if len(f.preds) == 0 {
		return f.orders
	}
	result := make([]Order, 0, len(f.orders))
	for _, o := range f.orders {
		if f.accept(o) {
			result = append(result, o)
		}
	}
	return result
}

func (f *FilterSet) accept(o Order) bool {
	for _, pred := range f.preds {
		if !pred(o) {
			return false
		}
	}
	return true
}

// CloneOnto returns a new filter set with the identical active
// predicates bound to a new order sequence. Used when the underlying
// dataset changes so the active filter selection survives the rebind.
func (f *FilterSet) CloneOnto(orders []Order) *FilterSet {
	clone := NewFilterSet(orders)
	for name, pred := range f.preds {
		clone.preds[name] = pred
	}
	return clone
}

// SearchPredicate matches orders containing the query as a
// case-insensitive substring of the buyer name, shipping name, email,
// customer note, or any line item's name, SKU, or meta values.
func SearchPredicate(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(o Order) bool {
		if q == "" {
			return true
		}
		if contains(o.BuyerName(), q) ||
			contains(o.ShippingName(), q) ||
			contains(o.Email, q) ||
			contains(o.Note, q) {
			return true
		}
		for _, li := range o.LineItems {
			if contains(li.Name, q) || contains(li.SKU, q) {
				return true
			}
			for _, v := range li.Meta {
				if contains(v, q) {
					return true
				}
			}
		}
		return false
	}
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

// DonePredicate matches orders with at least one line item whose done
// flag equals want.
func DonePredicate(lookup AnnotationLookup, want bool) Predicate {
	return flagPredicate(lookup, want, func(a Annotation) bool { return a.Done })
}

// PaidPredicate matches orders with at least one line item whose paid
// flag equals want.
func PaidPredicate(lookup AnnotationLookup, want bool) Predicate {
	return flagPredicate(lookup, want, func(a Annotation) bool { return a.Paid })
}

// InStockPredicate matches orders with at least one line item whose
// in-stock flag equals want.
func InStockPredicate(lookup AnnotationLookup, want bool) Predicate {
	return flagPredicate(lookup, want, func(a Annotation) bool { return a.InStock })
}

func flagPredicate(lookup AnnotationLookup, want bool, flag func(Annotation) bool) Predicate {
	return func(o Order) bool {
		for _, li := range o.LineItems {
			if flag(lookup(li.ID)) == want {
				return true
			}
		}
		return false
	}
}
