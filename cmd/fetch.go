package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/config"
	"github.com/scbirs/order-explorer/internal/fetch"
	"github.com/scbirs/order-explorer/internal/store"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch orders from the shop and refresh the local dataset",
	Long: `Fetch orders from the shop and refresh the local dataset.

USAGE:
    order-explorer fetch [OPTIONS]

A backup of the current dataset is written before the refresh.
Orders are replaced wholesale; local annotations are preserved.
Orders in a closed status (completed, cancelled, refunded, failed)
are excluded.

OPTIONS:
    --no-backup     Skip the pre-refresh backup
    -h, --help      Show this help`,
	Run: runFetch,
}

var fetchNoBackup bool

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchNoBackup, "no-backup", false, "Skip the pre-refresh backup")
}

func runFetch(cmd *cobra.Command, args []string) {
	st, path, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	if st.User.Settings.IsEmpty() {
		colors.Error("no API settings configured; run 'order-explorer settings' first")
		os.Exit(1)
	}

	if !fetchNoBackup {
		rotator, err := newRotator()
		if err != nil {
			colors.Error(err.Error())
			os.Exit(1)
		}
		if _, err := rotator.Next(st); err != nil {
			// The refresh replaces data, so losing the backup is worth
			// a warning, not an abort.
			colors.Warning("can't make backup: " + err.Error())
		}
	}

	runner := fetch.NewRunner()
	done, err := runner.Start(cmd.Context(), *st.User.Settings)
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}

	quiet := config.GetBool("quiet", false)
	result := waitForFetch(runner, done, quiet)
	if result.Err != nil {
		if fetch.IsAuthError(result.Err) {
			colors.Error("credentials were rejected; update them with 'order-explorer settings'")
		} else {
			colors.Error("fetch failed: " + result.Err.Error())
		}
		os.Exit(1)
	}

	st = st.ReplaceOrders(result.Orders)
	st, err = store.Save(path, st)
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	colors.Success(fmt.Sprintf("fetched %d orders (%d closed orders skipped)", len(st.Orders), result.Dropped))
}

// waitForFetch blocks until the background fetch delivers its result,
// rendering progress on the way.
func waitForFetch(runner *fetch.Runner, done <-chan fetch.Result, quiet bool) fetch.Result {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case result := <-done:
			if !quiet {
				fmt.Print("\r\033[K")
			}
			return result
		case <-ticker.C:
			if quiet {
				continue
			}
			page, total := runner.Progress()
			fmt.Printf("\rFetching %s...", fetch.DescribeProgress(page, total))
		}
	}
}
