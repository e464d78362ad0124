package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbirs/order-explorer/internal/domain"
)

func sampleOrders() []domain.Order {
	return []domain.Order{
		{
			ID: 1, Status: "processing",
			LineItems: []domain.LineItem{{ID: 10, Name: "Mug"}, {ID: 11, Name: "Shirt"}},
		},
		{
			ID: 2, Status: "on-hold",
			LineItems: []domain.LineItem{{ID: 20, Name: "Poster"}},
		},
	}
}

func TestEmptyStore(t *testing.T) {
	s := Empty()
	assert.False(t, s.Dirty())
	assert.Empty(t, s.Orders)
	assert.NotNil(t, s.User.Annotations)
	assert.True(t, s.User.Settings.IsEmpty())
	assert.True(t, s.AnnotationFor(999).IsDefault())
}

func TestSettingsIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		settings *Settings
		empty    bool
	}{
		{"nil", nil, true},
		{"zero", &Settings{}, true},
		{"missing secret", &Settings{Host: "shop.example.com", ConsumerKey: "ck"}, true},
		{"complete", &Settings{Host: "shop.example.com", ConsumerKey: "ck", ConsumerSecret: "cs"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.settings.IsEmpty())
		})
	}
}

func TestReplaceOrdersIsWholesaleAndDirty(t *testing.T) {
	s := Empty().ReplaceOrders(sampleOrders())
	assert.True(t, s.Dirty())
	assert.Len(t, s.Orders, 2)

	next := s.ReplaceOrders([]domain.Order{{ID: 3, Status: "pending"}})
	assert.Equal(t, []int{3}, []int{next.Orders[0].ID})
	assert.Len(t, next.Orders, 1)
	// The previous value is untouched.
	assert.Len(t, s.Orders, 2)
}

func TestReplaceOrdersKeepsAnnotations(t *testing.T) {
	s := Empty().
		ReplaceOrders(sampleOrders()).
		SetAnnotation(10, domain.Annotation{Done: true})

	// Refresh to a dataset where line item 10 no longer exists.
	next := s.ReplaceOrders([]domain.Order{{ID: 2, Status: "on-hold"}})
	assert.True(t, next.AnnotationFor(10).Done)

	// And it comes back on a later refresh.
	back := next.ReplaceOrders(sampleOrders())
	assert.True(t, back.AnnotationFor(10).Done)
}

func TestSetAnnotationCopyOnWrite(t *testing.T) {
	s := Empty().SetAnnotation(10, domain.Annotation{Paid: true})
	next := s.SetAnnotation(10, domain.Annotation{Paid: false, Done: true})

	assert.True(t, s.AnnotationFor(10).Paid)
	assert.False(t, s.AnnotationFor(10).Done)
	assert.False(t, next.AnnotationFor(10).Paid)
	assert.True(t, next.AnnotationFor(10).Done)
}

func TestCleanPrunesStaleAnnotations(t *testing.T) {
	s := Empty().
		ReplaceOrders(sampleOrders()).
		SetAnnotation(10, domain.Annotation{Done: true}).
		SetAnnotation(999, domain.Annotation{Paid: true})

	cleaned := s.Clean()
	assert.True(t, cleaned.Dirty())
	assert.True(t, cleaned.AnnotationFor(10).Done)
	assert.True(t, cleaned.AnnotationFor(999).IsDefault())

	// The source keeps the stale entry.
	assert.True(t, s.AnnotationFor(999).Paid)
}

func TestCleanDropsDefaultAnnotations(t *testing.T) {
	s := Empty().
		ReplaceOrders(sampleOrders()).
		SetAnnotation(10, domain.Annotation{Done: true}).
		SetAnnotation(11, domain.Annotation{})

	cleaned := s.Clean()
	assert.True(t, cleaned.AnnotationFor(10).Done)
	// A flagged-then-unflagged item reads the same with or without an
	// entry, so the entry goes.
	assert.NotContains(t, cleaned.User.Annotations, 11)
	assert.Contains(t, cleaned.User.Annotations, 10)
}

func TestWithSettings(t *testing.T) {
	settings := &Settings{Host: "shop.example.com", ConsumerKey: "ck", ConsumerSecret: "cs"}
	s := Empty().WithSettings(settings)
	assert.True(t, s.Dirty())
	require.NotNil(t, s.User.Settings)
	assert.Equal(t, "shop.example.com", s.User.Settings.Host)
}

func TestSetImage(t *testing.T) {
	s := Empty().SetImage(7, "images/7.png")
	assert.Equal(t, "images/7.png", s.ImageFor(7))
	assert.Equal(t, "", s.ImageFor(8))
	assert.Equal(t, "", Empty().ImageFor(7))
}

func TestPaidEditChangesDerivedView(t *testing.T) {
	s := Empty().ReplaceOrders(sampleOrders())

	filters := domain.NewFilterSet(s.Orders)
	filters.Add(domain.FilterPaid, domain.PaidPredicate(s.Lookup(), true))
	require.Empty(t, filters.Derive())

	// Mark one line item of order 1 paid, rebind against the new
	// snapshot, and the order appears.
	s = s.SetAnnotation(10, domain.Annotation{Paid: true})
	filters = filters.CloneOnto(s.Orders)
	filters.Add(domain.FilterPaid, domain.PaidPredicate(s.Lookup(), true))
	view := filters.Derive()
	require.Len(t, view, 1)
	assert.Equal(t, 1, view[0].ID)
}

func TestLookupReadsSnapshot(t *testing.T) {
	s := Empty().SetAnnotation(10, domain.Annotation{InStock: true})
	lookup := s.Lookup()
	assert.True(t, lookup(10).InStock)
	assert.True(t, lookup(11).IsDefault())
}
