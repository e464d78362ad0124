package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/scbirs/order-explorer/internal/domain"
)

// VariableContext contains the data needed to resolve template
// variables for one order.
type VariableContext struct {
	Order domain.Order

	// Lookup resolves line-item annotations. Nil means every item uses
	// the default annotation.
	Lookup domain.AnnotationLookup
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	// Resolve returns the string value for a given variable name and context.
	Resolve(varName string, ctx VariableContext) (string, error)
}

type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

// Resolve returns the string value for a variable from the context.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	o := ctx.Order
	switch varName {
	case "id":
		return strconv.Itoa(o.ID), nil

	case "status":
		return o.Status, nil

	case "buyer":
		return o.BuyerName(), nil

	case "shipping":
		return o.ShippingName(), nil

	case "email":
		return o.Email, nil

	case "note":
		return o.Note, nil

	case "total":
		return o.Total, nil

	case "item-count":
		return strconv.Itoa(len(o.LineItems)), nil

	case "item-list":
		parts := make([]string, 0, len(o.LineItems))
		for _, li := range o.LineItems {
			parts = append(parts, fmt.Sprintf("%dx %s", li.Quantity, li.Name))
		}
		return strings.Join(parts, "; "), nil

	case "sku-list":
		var skus []string
		for _, li := range o.LineItems {
			if li.SKU != "" {
				skus = append(skus, li.SKU)
			}
		}
		sort.Strings(skus)
		return strings.Join(skus, "; "), nil

	case "done-count":
		return strconv.Itoa(vr.countFlag(ctx, func(a domain.Annotation) bool { return a.Done })), nil

	case "paid-count":
		return strconv.Itoa(vr.countFlag(ctx, func(a domain.Annotation) bool { return a.Paid })), nil

	case "in-stock-count":
		return strconv.Itoa(vr.countFlag(ctx, func(a domain.Annotation) bool { return a.InStock })), nil

	case "has-variant":
		for _, li := range o.LineItems {
			if li.IsVariant() {
				return "true", nil
			}
		}
		return "false", nil

	default:
		return "", fmt.Errorf("unknown variable: %s", varName)
	}
}

func (vr *variableResolver) countFlag(ctx VariableContext, flag func(domain.Annotation) bool) int {
	if ctx.Lookup == nil {
		return 0
	}
	count := 0
	for _, li := range ctx.Order.LineItems {
		if flag(ctx.Lookup(li.ID)) {
			count++
		}
	}
	return count
}
