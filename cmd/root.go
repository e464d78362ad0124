package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scbirs/order-explorer/internal/colors"
	"github.com/scbirs/order-explorer/internal/config"
	"github.com/scbirs/order-explorer/internal/logging"
	"github.com/scbirs/order-explorer/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "order-explorer",
	Short: "Track shop orders and their fulfillment from your terminal.",
	Long:  `Track shop orders and their fulfillment from your terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if err := logging.InitGlobal(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		}
		colors.SetLogger(logging.GetGlobal())
		colors.SetDebug(config.GetBool("debug", false))
		if file := logging.CurrentLogFile(); file != "" {
			logging.Debug("session log opened", "path", file)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.ShutdownGlobal()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set version for use in help output
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Set custom help function listing commands in a fixed order
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"fetch",
		"list",
		"mark",
		"clean",
		"settings",
		"check",
		"backup",
		"tui",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Root().Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`order-explorer v%s

Track shop orders and their fulfillment from your terminal.

USAGE:
    order-explorer [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Print(helpText)
}
