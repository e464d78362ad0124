package domain

// Annotation is local fulfillment state for a single line item. It
// never exists on the remote side. The zero value is the default for
// line items that were never touched.
type Annotation struct {
	InStock bool `json:"in_stock"`
	Paid    bool `json:"paid"`
	Done    bool `json:"done"`
}

// WithInStock returns a copy with the in-stock flag replaced.
func (a Annotation) WithInStock(v bool) Annotation {
	a.InStock = v
	return a
}

// WithPaid returns a copy with the paid flag replaced.
func (a Annotation) WithPaid(v bool) Annotation {
	a.Paid = v
	return a
}

// WithDone returns a copy with the done flag replaced.
func (a Annotation) WithDone(v bool) Annotation {
	a.Done = v
	return a
}

// IsDefault reports whether the annotation carries no local state.
func (a Annotation) IsDefault() bool {
	return a == Annotation{}
}
