package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbirs/order-explorer/internal/domain"
)

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "orders.json"))
	require.NoError(t, err)
	assert.Equal(t, Empty(), s)
	assert.False(t, s.Dirty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	s := Empty().
		ReplaceOrders(sampleOrders()).
		SetAnnotation(10, domain.Annotation{Done: true, Paid: true}).
		WithSettings(&Settings{Host: "shop.example.com", ConsumerKey: "ck", ConsumerSecret: "cs"})
	require.True(t, s.Dirty())

	saved, err := Save(path, s)
	require.NoError(t, err)
	assert.False(t, saved.Dirty())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.Dirty())
	assert.Equal(t, saved, loaded)
	assert.True(t, loaded.AnnotationFor(10).Done)
	assert.Equal(t, "shop.example.com", loaded.User.Settings.Host)
}

func TestSaveFailureKeepsStoreDirty(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the write fail.
	path := filepath.Join(dir, "orders.json")
	require.NoError(t, os.MkdirAll(path, 0755))

	s := Empty().SetAnnotation(10, domain.Annotation{Done: true})
	out, err := Save(path, s)
	require.Error(t, err)
	assert.True(t, out.Dirty())
	assert.True(t, out.AnnotationFor(10).Done)
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "orders.json")
	_, err := Save(path, Empty())
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDecodeEmptyDocumentEqualsEmpty(t *testing.T) {
	s, err := Decode([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, Empty(), s)
}

func TestEncodeOmitsDirtyFlag(t *testing.T) {
	dirty := Empty().SetAnnotation(10, domain.Annotation{Done: true})
	clean := dirty.markClean()

	a, err := Encode(dirty)
	require.NoError(t, err)
	b, err := Encode(clean)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotContains(t, string(a), "dirty")
}
