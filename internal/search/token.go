package search

import (
	"strings"

	"github.com/scbirs/order-explorer/internal/domain"
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens.
// Each token must match at least one field (AND logic).
// Special tokens: "variant" (match only orders with product variants),
// "simple" (match only orders without them).
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all text tokens match at least one field and
// the order passes the variant/simple filter if specified.
func (p *TokenProvider) Match(order domain.Order, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	tokens := strings.Fields(query)
	variantFilter := false
	simpleFilter := false
	textTokens := []string{}

	for _, token := range tokens {
		switch strings.ToLower(token) {
		case "variant":
			variantFilter = true
		case "simple":
			simpleFilter = true
		default:
			if p.opts.CaseInsensitive {
				textTokens = append(textTokens, strings.ToLower(token))
			} else {
				textTokens = append(textTokens, token)
			}
		}
	}

	// Both filters at once contradict each other, ignore both.
	if variantFilter && simpleFilter {
		variantFilter = false
		simpleFilter = false
	}

	if variantFilter && !hasVariant(order) {
		return false
	}
	if simpleFilter && hasVariant(order) {
		return false
	}

	if len(textTokens) == 0 {
		return true
	}

	for _, token := range textTokens {
		if !p.tokenMatches(order, token) {
			return false
		}
	}

	return true
}

func (p *TokenProvider) tokenMatches(order domain.Order, token string) bool {
	for _, field := range p.opts.Fields {
		for _, fieldValue := range fieldValues(order, field) {
			if fieldValue == "" {
				continue
			}
			if p.opts.CaseInsensitive {
				fieldValue = strings.ToLower(fieldValue)
			}
			if strings.Contains(fieldValue, token) {
				return true
			}
		}
	}
	return false
}

func hasVariant(order domain.Order) bool {
	for _, li := range order.LineItems {
		if li.IsVariant() {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
