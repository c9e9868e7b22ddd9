package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/version"
)

func (c *CLI) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.render.Plain("xplain version %s", version.Version)
			if version.Commit != "" {
				c.render.Plain("Commit: %s", version.Commit)
			}
			if version.BuildDate != "" {
				c.render.Plain("Built: %s", version.BuildDate)
			}
			c.render.Plain("Go version: %s", runtime.Version())

			if backend, err := c.container.Factory.Backend(); err == nil {
				c.render.Success("AI Backend: %s", backend.Name())
			} else {
				c.render.Warning("AI Backend: Not configured")
				c.render.Info("Run: xplain check")
			}
			c.render.Plain("Model: %s", c.container.Config.Model)
			return nil
		},
	}
}

func (c *CLI) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check if all dependencies are properly configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.render.Banner()
			c.render.Plain("\nChecking dependencies...\n")

			report, err := c.container.CheckService.Run(cmd.Context())
			for _, item := range report.Checks {
				switch item.Status {
				case domain.HealthOK:
					c.render.Success("%s: %s", item.Name, item.Details)
				case domain.HealthWarn:
					c.render.Warning("%s: %s", item.Name, item.Details)
				default:
					c.render.Error("%s: %s", item.Name, item.Details)
				}
			}
			if err != nil {
				return err
			}

			if report.AllOK() {
				c.render.Success("\nAll checks passed! You're ready to use xplain.")
			} else {
				c.render.Warning("\nSome checks failed. See above for details.")
			}
			return nil
		},
	}
}

func (c *CLI) newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available AI models",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.render.Plain("")
			c.render.Info("Available AI Models:")
			current := c.container.Config.Model
			if c.model != "" {
				current = c.model
			}
			for _, model := range domain.AvailableModels {
				marker := ""
				if model.ID == current {
					marker = "  ← current"
				}
				c.render.Plain("  %-28s %s%s", model.ID, model.Description, marker)
			}
			c.render.Dim("\nUse --model/-m with any command, or set XPLAIN_MODEL env var")
			c.render.Dim("Any model from https://github.com/marketplace/models is supported")
			return nil
		},
	}
}

func (c *CLI) newLangsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List all supported languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.render.Plain("")
			c.render.Info("Supported Languages:")
			for _, code := range domain.LanguageCodes() {
				c.render.Plain("  %s: %s", code, domain.LanguageName(code))
			}
			c.render.Dim("\nUse --lang/-l with any command to set output language")
			return nil
		},
	}
}

func (c *CLI) newConfigCommand() *cobra.Command {
	var setLang string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if setLang != "" {
				if !domain.IsSupportedLanguage(setLang) {
					return fmt.Errorf("unsupported language: %s\nAvailable: %s",
						setLang, strings.Join(domain.LanguageCodes(), ", "))
				}
				c.render.Success("To set default language to %s:", LanguageTag(setLang))
				c.render.Plain("\n  export XPLAIN_LANG=%s", setLang)
				c.render.Plain("\n  Add this to your ~/.bashrc or ~/.zshrc")
				return nil
			}

			cfg := c.container.Config
			c.render.Plain("")
			c.render.Info("Current Configuration:")
			c.render.Plain("  Language: %s", LanguageTag(cfg.Language))
			c.render.Plain("  Model:    %s", cfg.Model)
			c.render.Plain("  Verbose:  %t", cfg.Verbose)
			c.render.Plain("  Config:   %s", c.container.ConfigLoader.Path())
			c.render.Plain("  History:  %s (%s)", c.container.HistoryStore.Path(), cfg.History.Backend)

			if backend, err := c.container.Factory.Backend(); err == nil {
				c.render.Plain("  Backend:  %s", backend.Name())
			} else {
				c.render.Plain("  Backend:  Not available")
			}

			c.render.Plain("")
			c.render.Info("Available Languages:")
			for _, code := range domain.LanguageCodes() {
				marker := ""
				if code == cfg.Language {
					marker = "  ← current"
				}
				c.render.Plain("  %s: %s%s", code, domain.LanguageName(code), marker)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&setLang, "lang", "l", "", "Show how to set the default language")
	return cmd
}
