package cmd

import (
	"fmt"

	"github.com/scbirs/order-explorer/internal/config"
	"github.com/scbirs/order-explorer/internal/store"
)

// loadStore loads the persisted store for a command invocation and
// returns the path it will be saved back to.
func loadStore() (store.Store, string, error) {
	path, err := config.DataFilePath()
	if err != nil {
		return store.Empty(), "", err
	}
	st, err := store.Load(path)
	if err != nil {
		return store.Empty(), "", fmt.Errorf("failed to load order data: %w", err)
	}
	return st, path, nil
}

// newRotator builds the backup rotator from the global configuration.
func newRotator() (*store.Rotator, error) {
	dir, err := config.BackupDir()
	if err != nil {
		return nil, err
	}
	return store.NewRotator(dir, config.GetInt("backup_max_files", 10)), nil
}
