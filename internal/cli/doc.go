// Package cli implements the taskdeck command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small implementation function for the actual work.
//
// # Command Structure
//
// The root command is "taskdeck" with subcommands for different
// operations:
//
//	taskdeck dash       - Start the live dashboard
//	taskdeck sources    - Probe each configured source once
//	taskdeck init       - Create a .taskdeck.yaml config
//	taskdeck doctor     - Diagnose config and source problems
//	taskdeck version    - Print version information
//	taskdeck completion - Generate shell completion scripts
//
// # Startup Flow
//
// The dash command wires the whole system together:
//
//  1. Load and validate config (explicit --config path, project file,
//     or the global config)
//  2. Build the engine from the engine section
//  3. Build one source per configured backend and wrap each in a
//     monitor registered on the engine
//  4. Hand the engine to the dashboard, which starts and stops it
//
// # Flag Handling
//
// Global flags (--config, --debug) are defined on the root command and
// available to all subcommands. Command-specific flags like --theme
// and --demo are defined on individual commands.
//
// Logs never go to the terminal: the dashboard owns it. The logger
// package writes to a state file instead, and --debug only raises the
// level there.
package cli
