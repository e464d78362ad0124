package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scbirs/order-explorer/internal/domain"
)

// Load reads the persisted store document. A missing file is not an
// error: it yields the empty default store. The returned store is
// clean.
func Load(path string) (Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("failed to read store file: %w", err)
	}
	return Decode(data)
}

// Save writes the store document to disk and returns the clean copy of
// the store. On failure the input store is returned unchanged, still
// dirty, and the in-memory value is never corrupted.
func Save(path string, s Store) (Store, error) {
	data, err := Encode(s)
	if err != nil {
		return s, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return s, fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return s, fmt.Errorf("failed to write store file: %w", err)
	}
	return s.markClean(), nil
}

// Encode serializes the store to the persisted JSON document form.
func Encode(s Store) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal store: %w", err)
	}
	return data, nil
}

// Decode parses a persisted store document. The returned store is
// clean and its maps are always non-nil so a decoded empty document
// equals Empty().
func Decode(data []byte) (Store, error) {
	s := Empty()
	if err := json.Unmarshal(data, &s); err != nil {
		return Empty(), fmt.Errorf("failed to parse store file: %w", err)
	}
	if s.User.Annotations == nil {
		s.User.Annotations = map[int]domain.Annotation{}
	}
	if s.User.Images == nil {
		s.User.Images = map[int]string{}
	}
	return s.markClean(), nil
}
