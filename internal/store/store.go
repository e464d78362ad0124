// Package store provides the immutable data store aggregating remote
// orders with local annotations, its JSON persistence, and the
// rotating backup history.
package store

import (
	"github.com/scbirs/order-explorer/internal/domain"
)

// Settings holds the remote API credentials. A nil *Settings on the
// store means the tool is not configured yet.
type Settings struct {
	Host           string `json:"host"`
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
}

// IsEmpty reports whether any credential field is missing.
func (s *Settings) IsEmpty() bool {
	return s == nil || s.Host == "" || s.ConsumerKey == "" || s.ConsumerSecret == ""
}

// UserData is the locally authored half of the store: per-line-item
// annotations, the API settings, and the image asset index maintained
// by the external image loader.
type UserData struct {
	Annotations map[int]domain.Annotation `json:"annotations"`
	Settings    *Settings                 `json:"settings"`
	Images      map[int]string            `json:"images"`
}

// Store is the aggregate root: the fetched orders merged with the
// local user data. Stores are immutable; every mutation returns a new
// value and never touches the receiver. The dirty flag records
// divergence from the last persisted snapshot and is deliberately not
// serialized: it resets to false exactly on successful save and load.
type Store struct {
	Orders []domain.Order `json:"orders"`
	User   UserData       `json:"user_data"`

	dirty bool
}

// Empty returns the default store: no orders, no annotations, no
// settings, clean.
func Empty() Store {
	return Store{
		User: UserData{
			Annotations: map[int]domain.Annotation{},
			Images:      map[int]string{},
		},
	}
}

// Dirty reports whether the store has unsaved local mutations.
func (s Store) Dirty() bool {
	return s.dirty
}

// markDirty returns a copy flagged as diverged from disk.
func (s Store) markDirty() Store {
	s.dirty = true
	return s
}

// markClean returns a copy matching the persisted snapshot.
func (s Store) markClean() Store {
	s.dirty = false
	return s
}

// AnnotationFor resolves the annotation for a line item id, falling
// back to the default annotation for ids never annotated.
func (s Store) AnnotationFor(lineItemID int) domain.Annotation {
	return s.User.Annotations[lineItemID]
}

// ImageFor returns the relative asset path recorded for a domain id,
// or the empty string.
func (s Store) ImageFor(id int) string {
	return s.User.Images[id]
}

// ReplaceOrders returns a store with the order sequence replaced
// wholesale. Later refreshes supersede earlier ones entirely; there is
// no order-level merge. All annotations survive, keyed by line-item
// id, including entries whose line items no longer appear — they may
// come back on a later refresh and are only removed by Clean.
func (s Store) ReplaceOrders(orders []domain.Order) Store {
	next := s
	next.Orders = orders
	return next.markDirty()
}

// SetAnnotation returns a store with a single annotation entry
// replaced. The result is always dirty relative to its input.
func (s Store) SetAnnotation(lineItemID int, ann domain.Annotation) Store {
	next := s
	next.User.Annotations = copyAnnotations(s.User.Annotations)
	next.User.Annotations[lineItemID] = ann
	return next.markDirty()
}

// WithSettings returns a store with the API settings replaced.
func (s Store) WithSettings(settings *Settings) Store {
	next := s
	next.User.Settings = settings
	return next.markDirty()
}

// SetImage returns a store with one image index entry replaced.
func (s Store) SetImage(id int, relPath string) Store {
	next := s
	next.User.Images = copyImages(s.User.Images)
	next.User.Images[id] = relPath
	return next.markDirty()
}

// Clean returns a store with annotations pruned down to line items
// present in the current orders. Entries whose flags are all back to
// the default carry no state and are dropped too. This is the only
// path that removes annotation entries.
func (s Store) Clean() Store {
	known := make(map[int]bool)
	for _, o := range s.Orders {
		for _, li := range o.LineItems {
			known[li.ID] = true
		}
	}
	next := s
	next.User.Annotations = make(map[int]domain.Annotation, len(s.User.Annotations))
	for id, ann := range s.User.Annotations {
		if known[id] && !ann.IsDefault() {
			next.User.Annotations[id] = ann
		}
	}
	return next.markDirty()
}

// Lookup returns an AnnotationLookup bound to this store snapshot, for
// building annotation-based filter predicates.
func (s Store) Lookup() domain.AnnotationLookup {
	return s.AnnotationFor
}

func copyAnnotations(src map[int]domain.Annotation) map[int]domain.Annotation {
	dst := make(map[int]domain.Annotation, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyImages(src map[int]string) map[int]string {
	dst := make(map[int]string, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
