package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/application/explain"
	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/infrastructure/shellhist"
)

// errOutputEchoChars bounds how much captured stderr is echoed before the
// diagnosis.
const errOutputEchoChars = 300

func (c *CLI) newWtfCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "wtf",
		Short: "Explain the last failed command from shell history",
		Long: "Reads your shell history to find the most recent command, re-runs it to\n" +
			"capture fresh output, and explains what went wrong and how to fix it.\n" +
			"Works with zsh and bash.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputLang := c.language(lang)

			lastCmd, ok := shellhist.LastCommand()
			if !ok {
				return errors.New("could not read your shell history\n\n" +
					"Make sure your shell saves history:\n" +
					"  zsh:  HISTFILE=~/.zsh_history\n" +
					"  bash: HISTFILE=~/.bash_history")
			}

			if strings.HasPrefix(lastCmd, "xplain") {
				c.render.Warning("Last command in history is an xplain command itself.")
				c.render.Info("Try running a command first, then use `xplain wtf`")
				return nil
			}

			c.render.Plain("")
			c.render.Warning("Last command: %s", lastCmd)
			c.render.Info("Re-running command to capture output...")

			result := c.container.Executor.Execute(cmd.Context(), lastCmd)

			if result.ExitCode == 0 {
				c.render.Success("The command succeeded this time!")
				c.render.Info("Explaining what it does anyway...")

				spinner := NewSpinner(fmt.Sprintf("Analyzing command %s...", LanguageTag(outputLang)))
				spinner.Start()
				explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
					Kind:       explain.KindCommand,
					Input:      lastCmd,
					Language:   outputLang,
					RecordType: domain.TypeWtf,
				})
				spinner.Stop()
				if err != nil {
					return err
				}
				return c.showExplanation("Command Explanation", LanguageTag(outputLang), explanation)
			}

			errorOutput := strings.TrimSpace(result.Stderr)
			if errorOutput == "" {
				errorOutput = strings.TrimSpace(result.Stdout)
			}
			if errorOutput == "" {
				errorOutput = "(no output captured)"
			}

			c.render.Error("Exit code %d", result.ExitCode)
			if result.Stderr != "" {
				echo := strings.TrimSpace(result.Stderr)
				if len(echo) > errOutputEchoChars {
					echo = echo[:errOutputEchoChars]
				}
				c.render.Dim("%s", echo)
			}

			spinner := NewSpinner(fmt.Sprintf("Diagnosing failure %s...", LanguageTag(outputLang)))
			spinner.Start()
			explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
				Kind:        explain.KindWtf,
				Input:       lastCmd,
				Context:     errorOutput,
				ExitCode:    result.ExitCode,
				Language:    outputLang,
				RecordType:  domain.TypeWtf,
				RecordQuery: fmt.Sprintf("%s (exit %d)", lastCmd, result.ExitCode),
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.showExplanation("WTF — What The Failure", LanguageTag(outputLang), explanation)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	return cmd
}
