package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	backupPrefix = "orders_"
	backupSuffix = ".json"
)

// Rotator writes timestamped snapshots of the store document into a
// backup directory and keeps only the newest maxFiles of them. A
// snapshot is taken before every destructive refresh and on explicit
// request.
type Rotator struct {
	dir      string
	maxFiles int
	now      func() time.Time
}

// NewRotator creates a rotator writing into dir, keeping maxFiles
// backups. maxFiles <= 0 disables rotation (backups accumulate).
func NewRotator(dir string, maxFiles int) *Rotator {
	return &Rotator{dir: dir, maxFiles: maxFiles, now: time.Now}
}

// Next writes a new timestamped backup of the store and rotates old
// ones. Returns the backup file name.
func (r *Rotator) Next(s Store) (string, error) {
	data, err := Encode(s)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	name := backupPrefix + r.now().Format("20060102_150405") + backupSuffix
	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", name, err)
	}
	r.rotate()
	return name, nil
}

// List returns the available backup file names, newest first.
func (r *Rotator) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			names = append(names, name)
		}
	}
	// Timestamped names sort lexically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Restore loads a backup by file name. The returned store is clean.
func (r *Rotator) Restore(name string) (Store, error) {
	if filepath.Base(name) != name {
		return Empty(), fmt.Errorf("invalid backup name: %s", name)
	}
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return Empty(), fmt.Errorf("failed to read backup %s: %w", name, err)
	}
	return Decode(data)
}

// rotate removes the oldest backups beyond maxFiles. Best effort;
// removal errors are ignored.
func (r *Rotator) rotate() {
	if r.maxFiles <= 0 {
		return
	}
	names, err := r.List()
	if err != nil {
		return
	}
	for i := r.maxFiles; i < len(names); i++ {
		os.Remove(filepath.Join(r.dir, names[i]))
	}
}
