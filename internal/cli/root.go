package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	configFlag string
	debugFlag  bool
)

// rootCmd is the base command for taskdeck.
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Terminal dashboard for task execution backends",
	Long: `taskdeck watches task execution backends - Docker daemons, GA4GH TES
services, local processes - and renders their tasks live in the
terminal: states, progress, resource usage, and backend health.

Start with 'taskdeck init' to create a config, or jump straight in
with 'taskdeck dash --demo'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			// The log backend reads this once, on first use.
			os.Setenv("TASKDECK_DEBUG", "1")
		}
	},
	// Bare 'taskdeck' opens the dashboard.
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path (default: .taskdeck.yaml discovery)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs to the log file")
}

// Config returns the value of the global --config flag.
func Config() string {
	return configFlag
}

// Execute runs the root command and exits non-zero on error. Errors
// carry their own formatting: message, cause, suggestion.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
