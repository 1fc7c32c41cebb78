package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/errors"
)

// Command-specific flags
var (
	dashRefreshFlag string
	dashThemeFlag   string
	dashDemoFlag    bool
	dashSeedFlag    int64
	initForce       bool
	initDemoFlag    bool
	sourcesJSON     bool
	sourcesTimeout  string
)

// dashCmd starts the live dashboard.
var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Start the live task dashboard",
	Long: `Start the interactive terminal dashboard.

Every configured source is polled on its interval and the dashboard
renders the merged view: task states, progress, per-task resource
usage, and backend health.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  p           Pause / resume the view
  s           Cycle sort order (updated/name/status/progress)
  f           Cycle status filter
  b           Cycle backend filter
  r           Reset filters
  up/k down/j Select task
  Enter       Expand selected task
  Esc         Collapse / go back
  ?           Show help

Examples:
  taskdeck dash
  taskdeck dash --demo
  taskdeck dash --theme light --refresh 500ms`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var refresh time.Duration
		if dashRefreshFlag != "" {
			parsed, err := time.ParseDuration(dashRefreshFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid refresh interval: "+dashRefreshFlag,
					"Use a valid duration like 250ms, 1s, or 2s.")
			}
			if parsed < 50*time.Millisecond {
				return errors.New(errors.ErrConfig,
					"Refresh interval too short",
					"Minimum refresh is 50ms; the terminal can't keep up below that.")
			}
			refresh = parsed
		}
		switch dashThemeFlag {
		case "", "dark", "light":
		default:
			return errors.New(errors.ErrConfig,
				"Unknown theme: "+dashThemeFlag,
				"Pick 'dark' or 'light'.")
		}

		return dashCommand(dashOptions{
			refresh: refresh,
			theme:   dashThemeFlag,
			demo:    dashDemoFlag,
			seed:    dashSeedFlag,
		})
	},
}

// sourcesCmd probes each configured source once and reports.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Probe each configured source once",
	Long: `Poll every configured source a single time and print what came back.

Useful for checking connectivity and config before starting the
dashboard: each line shows the source, its health, and how many tasks
it reported.

Examples:
  taskdeck sources
  taskdeck sources --json
  taskdeck sources --timeout 5s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout := 10 * time.Second
		if sourcesTimeout != "" {
			parsed, err := time.ParseDuration(sourcesTimeout)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid timeout: "+sourcesTimeout,
					"Use a valid duration like 5s or 30s.")
			}
			timeout = parsed
		}

		return sourcesCommand(sourcesJSON, timeout)
	},
}

// initCmd creates a new .taskdeck.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .taskdeck.yaml configuration",
	Long: `Initialize a new taskdeck configuration file.

Creates a .taskdeck.yaml in the current directory. Without flags, an
interactive form walks through the first source; --demo skips the
prompts and writes a demo-source config.

Examples:
  taskdeck init
  taskdeck init --demo
  taskdeck init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(InitOptions{
			Force:          initForce,
			Demo:           initDemoFlag,
			NonInteractive: initDemoFlag,
		})
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for taskdeck.

Examples:
  # Bash
  taskdeck completion bash > /etc/bash_completion.d/taskdeck

  # Zsh
  taskdeck completion zsh > "${fpath[1]}/_taskdeck"

  # Fish
  taskdeck completion fish > ~/.config/fish/completions/taskdeck.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dash command flags
	dashCmd.Flags().StringVar(&dashRefreshFlag, "refresh", "", "redraw interval (e.g., 250ms, 1s)")
	dashCmd.Flags().StringVar(&dashThemeFlag, "theme", "", "color theme: dark or light")
	dashCmd.Flags().BoolVar(&dashDemoFlag, "demo", false, "ignore configured sources and run the built-in simulator")
	dashCmd.Flags().Int64Var(&dashSeedFlag, "seed", 0, "simulator seed (with --demo; same seed, same run)")

	// sources command flags
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "output in JSON format")
	sourcesCmd.Flags().StringVar(&sourcesTimeout, "timeout", "", "per-source probe timeout (default 10s)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initDemoFlag, "demo", false, "skip prompts and write a demo-source config")

	// Register all commands
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
