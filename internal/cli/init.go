package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Force          bool // Overwrite existing config without asking
	Demo           bool // Write a demo-source config without prompting
	NonInteractive bool // Skip prompts, use defaults
}

// mergeInitOptions folds environment defaults into the flag-provided
// options. CI environments never get prompts.
func mergeInitOptions(opts InitOptions) InitOptions {
	if os.Getenv("TASKDECK_NON_INTERACTIVE") == "true" || os.Getenv("CI") == "true" {
		opts.NonInteractive = true
	}
	return opts
}

// Init creates a new .taskdeck.yaml configuration file.
func Init(opts InitOptions) error {
	opts = mergeInitOptions(opts)
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	src := config.SourceConfig{Name: "demo", Type: "demo"}
	theme := "dark"

	if !opts.Demo && !opts.NonInteractive {
		var err error
		src, theme, err = promptSource()
		if err != nil {
			return err
		}
	}

	cfg := config.DefaultConfig()
	cfg.Sources = []config.SourceConfig{src}
	cfg.UI.Theme = theme

	data, err := config.Render(cfg)
	if err != nil {
		return err
	}

	header := `# taskdeck configuration
# Run 'taskdeck dash' to open the dashboard
# See: https://github.com/taskdeck/taskdeck for documentation

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  taskdeck sources  - Probe each source once")
	fmt.Println("  taskdeck dash     - Open the dashboard")

	return nil
}

// promptSource walks through the first source interactively. It runs
// two forms because the follow-up questions depend on the chosen type.
func promptSource() (config.SourceConfig, string, error) {
	src := config.SourceConfig{}
	theme := "dark"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source type").
				Description("What kind of backend should taskdeck watch?").
				Options(
					huh.NewOption("Demo - built-in task simulator", "demo"),
					huh.NewOption("Docker - local containers", "docker"),
					huh.NewOption("TES - GA4GH Task Execution Service", "tes"),
					huh.NewOption("Local - host processes", "local"),
				).
				Value(&src.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Source name").
				Description("Labels this backend on the dashboard").
				Placeholder("my-backend").
				Value(&src.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("source name is required")
					}
					if strings.ContainsAny(s, " \t\n") {
						return fmt.Errorf("source name cannot contain whitespace")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		return src, theme, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --demo for a no-prompt setup")
	}

	// Type-specific follow-ups
	switch src.Type {
	case "tes":
		urlForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("TES service URL").
					Description("Root URL of the task service").
					Placeholder("http://localhost:8000").
					Value(&src.URL).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("tes sources need a url")
						}
						if _, err := url.ParseRequestURI(s); err != nil {
							return fmt.Errorf("not a valid URL")
						}
						return nil
					}),
			),
		)
		if err := urlForm.Run(); err != nil {
			return src, theme, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --demo for a no-prompt setup")
		}
	case "local":
		var patterns string
		patternForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Process patterns (optional)").
					Description("Comma-separated substrings; empty reports host usage only").
					Placeholder("python, cargo").
					Value(&patterns),
			),
		)
		if err := patternForm.Run(); err != nil {
			return src, theme, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --demo for a no-prompt setup")
		}
		for _, p := range strings.Split(patterns, ",") {
			if p = strings.TrimSpace(p); p != "" {
				src.Patterns = append(src.Patterns, p)
			}
		}
	}

	return src, theme, nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(opts InitOptions) error {
	return Init(opts)
}
