package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/fetch"
	"github.com/scbirs/order-explorer/internal/store"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Configure the shop API credentials",
	Long: `Configure the shop API credentials.

USAGE:
    order-explorer settings --host <host> --key <key> --secret <secret>

The connection is checked before the settings are stored. Use
--skip-check to store them anyway, for example while offline.

OPTIONS:
    --host <host>       Shop host name, e.g. shop.example.com
    --key <key>         API consumer key
    --secret <secret>   API consumer secret
    --skip-check        Store without checking the connection
    -h, --help          Show this help`,
	Run: runSettings,
}

var (
	settingsHost      string
	settingsKey       string
	settingsSecret    string
	settingsSkipCheck bool
)

func init() {
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.Flags().StringVar(&settingsHost, "host", "", "Shop host name")
	settingsCmd.Flags().StringVar(&settingsKey, "key", "", "API consumer key")
	settingsCmd.Flags().StringVar(&settingsSecret, "secret", "", "API consumer secret")
	settingsCmd.Flags().BoolVar(&settingsSkipCheck, "skip-check", false, "Store without checking the connection")
}

func runSettings(cmd *cobra.Command, args []string) {
	newSettings := &store.Settings{
		Host:           settingsHost,
		ConsumerKey:    settingsKey,
		ConsumerSecret: settingsSecret,
	}
	if newSettings.IsEmpty() {
		colors.Error("'settings' requires --host, --key and --secret")
		os.Exit(1)
	}

	if !settingsSkipCheck {
		colors.Info("checking connection to " + newSettings.Host + "...")
		if !fetch.Probe(cmd.Context(), *newSettings) {
			colors.Error("could not connect with these settings; nothing stored (use --skip-check to store anyway)")
			os.Exit(1)
		}
	}

	st, path, err := loadStore()
	if err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	st = st.WithSettings(newSettings)
	if _, err := store.Save(path, st); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
	colors.Success("settings stored")
}
