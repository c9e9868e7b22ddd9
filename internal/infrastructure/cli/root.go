// Package cli wires the cobra command tree over the application services.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// CLI carries per-invocation state shared by all subcommands: the service
// container plus the values of the persistent flags.
type CLI struct {
	container *app.Container
	render    *Renderer

	output  string
	noColor bool
	model   string
	tldr    bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	c := &CLI{container: container, render: NewRenderer()}

	root := &cobra.Command{
		Use:   "xplain",
		Short: "AI-powered CLI tool to explain code, commands, and errors",
		Long: "xplain forwards shell commands, error messages, code, diffs, and piped\n" +
			"output to the GitHub Models API and renders the explanation in your terminal.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.noColor {
				c.render.DisableColor()
			}
			if c.model != "" {
				c.container.Factory.SetModel(c.model)
			}
			c.container.ExplainService.TLDR = c.tldr
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.output, "output", "o", "", "Save explanation to file (.md, .json, or .txt)")
	flags.BoolVar(&c.noColor, "no-color", false, "Disable colored output")
	flags.StringVarP(&c.model, "model", "m", "", "AI model to use (e.g. openai/gpt-4.1, deepseek/DeepSeek-R1)")
	flags.BoolVar(&c.tldr, "tldr", false, "Get a one-line TL;DR explanation instead of detailed output")

	root.AddCommand(c.newCmdCommand())
	root.AddCommand(c.newErrorCommand())
	root.AddCommand(c.newCodeCommand())
	root.AddCommand(c.newDiffCommand())
	root.AddCommand(c.newPipeCommand())
	root.AddCommand(c.newChatCommand())
	root.AddCommand(c.newWtfCommand())
	root.AddCommand(c.newHistoryCommand())
	root.AddCommand(c.newVersionCommand())
	root.AddCommand(c.newCheckCommand())
	root.AddCommand(c.newModelsCommand())
	root.AddCommand(c.newLangsCommand())
	root.AddCommand(c.newConfigCommand())
	return root, nil
}

// language resolves the per-command --lang flag against the configured
// default.
func (c *CLI) language(flag string) string {
	if flag != "" {
		return flag
	}
	return c.container.Config.Language
}

// showExplanation renders an explanation and exports it when --output is set.
func (c *CLI) showExplanation(title, subtitle, content string) error {
	c.render.Explanation(title, subtitle, content)
	if c.output == "" {
		return nil
	}
	if err := WriteExplanation(c.output, title, content); err != nil {
		return err
	}
	c.render.Dim("Saved to %s", c.output)
	return nil
}
