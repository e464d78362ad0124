package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/config"
	"github.com/scbirs/order-explorer/internal/store"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write, list, or restore dataset backups",
	Long: `Write, list, or restore dataset backups.

USAGE:
    order-explorer backup               Write a new backup
    order-explorer backup --list        List available backups
    order-explorer backup --restore <name>
                                        Replace the dataset with a backup

Backups are timestamped copies of the dataset; the oldest ones are
removed once backup_max_files is exceeded.`,
	Run: runBackup,
}

var (
	backupList    bool
	backupRestore string
)

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().BoolVar(&backupList, "list", false, "List available backups")
	backupCmd.Flags().StringVar(&backupRestore, "restore", "", "Replace the dataset with a backup")
}

func runBackup(cmd *cobra.Command, args []string) {
	rotator, err := newRotator()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}

	switch {
	case backupList:
		names, err := rotator.List()
		if err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		if len(names) == 0 {
			colors.Info("no backups yet")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}

	case backupRestore != "":
		restored, err := rotator.Restore(backupRestore)
		if err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		// Resolve the target path without reading the current dataset;
		// restore must work when that file is corrupt.
		path, err := config.DataFilePath()
		if err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		if _, err := store.Save(path, restored); err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		colors.Success("restored " + backupRestore)

	default:
		st, _, err := loadStore()
		if err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		name, err := rotator.Next(st)
		if err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		colors.Success("backup written: " + name)
	}
}
