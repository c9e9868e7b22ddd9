package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/application/explain"
	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/infrastructure/executor"
)

// maxDisplayCodeLines bounds how much of a code file is echoed back before
// the explanation; the full content still goes to the backend.
const maxDisplayCodeLines = 50

func (c *CLI) newCmdCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:     "cmd <command>",
		Aliases: []string{"c"},
		Short:   "Explain shell commands",
		Example: "  xplain cmd \"git rebase -i HEAD~3\"\n" +
			"  xplain cmd \"docker run -it --rm -v $(pwd):/app node:18\" -l zh",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]
			outputLang := c.language(lang)

			c.render.Command(command)

			spinner := NewSpinner(fmt.Sprintf("Analyzing command %s...", LanguageTag(outputLang)))
			spinner.Start()
			explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
				Kind:       explain.KindCommand,
				Input:      command,
				Language:   outputLang,
				RecordType: domain.TypeCmd,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.showExplanation("Command Explanation", LanguageTag(outputLang), explanation)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	return cmd
}

func (c *CLI) newErrorCommand() *cobra.Command {
	var (
		lang        string
		context     string
		contextFile string
	)

	cmd := &cobra.Command{
		Use:     "error <message>",
		Aliases: []string{"e"},
		Short:   "Explain errors and suggest fixes",
		Example: "  xplain error \"TypeError: Cannot read property 'map' of undefined\"\n" +
			"  xplain error \"ECONNREFUSED 127.0.0.1:5432\" -c \"Trying to connect to PostgreSQL\"\n" +
			"  xplain error \"Segmentation fault\" -f ./crash_log.txt",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := args[0]
			outputLang := c.language(lang)

			fullContext := context
			if contextFile != "" {
				data, err := os.ReadFile(contextFile)
				if err != nil {
					return fmt.Errorf("read context file: %w", err)
				}
				fullContext += fmt.Sprintf("\n\nFrom file %s:\n%s", filepath.Base(contextFile), data)
			}

			c.render.Info("Analyzing error: %s", message)

			spinner := NewSpinner(fmt.Sprintf("Diagnosing error %s...", LanguageTag(outputLang)))
			spinner.Start()
			explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
				Kind:       explain.KindError,
				Input:      message,
				Context:    fullContext,
				Language:   outputLang,
				RecordType: domain.TypeError,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.showExplanation("Error Analysis & Solutions", LanguageTag(outputLang), explanation)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	cmd.Flags().StringVarP(&context, "context", "c", "", "Additional context (code snippet, environment info)")
	cmd.Flags().StringVarP(&contextFile, "file", "f", "", "File containing additional context")
	return cmd
}

func (c *CLI) newCodeCommand() *cobra.Command {
	var (
		lang     string
		codeLang string
	)

	cmd := &cobra.Command{
		Use:   "code [file|snippet|-]",
		Short: "Explain code files or snippets",
		Example: "  xplain code ./utils.py\n" +
			"  echo \"print('hello')\" | xplain code -\n" +
			"  xplain code \"const x = arr.reduce((a,b) => a+b, 0)\"",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputLang := c.language(lang)

			content, filename, err := readCodeSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(content) == "" {
				return errors.New("no code content provided")
			}

			display := codeLang
			if display == "" {
				display = sourceLanguage(filename)
			}
			c.render.Explanation(codeTitle(filename), "", codeFence(truncateForDisplay(content), display))

			spinner := NewSpinner(fmt.Sprintf("Analyzing code %s...", LanguageTag(outputLang)))
			spinner.Start()
			query := filename
			if query == "" {
				query = "stdin"
			}
			explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
				Kind:        explain.KindCode,
				Input:       content,
				Filename:    filename,
				Language:    outputLang,
				RecordType:  domain.TypeCode,
				RecordQuery: query,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.showExplanation("Code Explanation", LanguageTag(outputLang), explanation)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	cmd.Flags().StringVarP(&codeLang, "code-lang", "c", "", "Programming language (auto-detected from file extension)")
	return cmd
}

func (c *CLI) newDiffCommand() *cobra.Command {
	var (
		lang   string
		staged bool
	)

	cmd := &cobra.Command{
		Use:     "diff [ref]",
		Aliases: []string{"d"},
		Short:   "Explain git diffs",
		Example: "  xplain diff                  # Explain unstaged changes\n" +
			"  xplain diff --staged         # Explain staged changes\n" +
			"  xplain diff HEAD~1           # Explain last commit's changes",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputLang := c.language(lang)
			ref := ""
			if len(args) > 0 {
				ref = args[0]
			}

			diff, description, err := executor.GitDiff(cmd.Context(), ref, staged)
			if err != nil {
				return err
			}
			if diff == "" {
				c.render.Info("No changes found. The diff is empty.")
				return nil
			}

			stats := executor.CountDiffStats(diff)
			c.render.Info("Analyzing %s: %d file(s), +%d additions, -%d deletions",
				description, stats.FilesChanged, stats.Additions, stats.Deletions)

			if truncated, ok := executor.TruncateDiff(diff); ok {
				c.render.Warning("Diff is large (%d chars), truncating to %d chars",
					len(diff), executor.MaxDiffChars)
				diff = truncated
			}

			recordRef := ref
			if recordRef == "" {
				recordRef = "working tree"
				if staged {
					recordRef = "--staged"
				}
			}

			spinner := NewSpinner(fmt.Sprintf("Analyzing diff %s...", LanguageTag(outputLang)))
			spinner.Start()
			explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
				Kind:        explain.KindDiff,
				Input:       diff,
				Ref:         recordRef,
				Language:    outputLang,
				RecordType:  domain.TypeDiff,
				RecordQuery: "git diff " + recordRef,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.showExplanation("Diff Explanation", LanguageTag(outputLang), explanation)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	cmd.Flags().BoolVarP(&staged, "staged", "s", false, "Show staged changes (git diff --staged)")
	return cmd
}

// readCodeSource resolves the code argument: a file path, an inline snippet,
// "-" for stdin, or implicit stdin when input is piped.
func readCodeSource(stdin io.Reader, args []string) (content, filename string, err error) {
	if len(args) == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			return "", "", errors.New("provide a file path, code snippet, or pipe code via stdin")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}

	source := args[0]
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}

	if info, statErr := os.Stat(source); statErr == nil && !info.IsDir() {
		data, err := os.ReadFile(source)
		if err != nil {
			return "", "", fmt.Errorf("read file: %w", err)
		}
		return string(data), filepath.Base(source), nil
	}

	// Inline snippet.
	return source, "", nil
}

func codeTitle(filename string) string {
	if filename == "" {
		return "Code"
	}
	return filename
}

func codeFence(content, language string) string {
	return fmt.Sprintf("```%s\n%s\n```", language, strings.TrimRight(content, "\n"))
}

func truncateForDisplay(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxDisplayCodeLines {
		return content
	}
	return strings.Join(lines[:25], "\n") +
		"\n\n... (truncated for display) ...\n\n" +
		strings.Join(lines[len(lines)-10:], "\n")
}

var sourceExtensions = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "jsx",
	".tsx":   "tsx",
	".java":  "java",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".go":    "go",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "zsh",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".xml":   "xml",
	".md":    "markdown",
	".lua":   "lua",
	".tf":    "terraform",
}

// sourceLanguage guesses the syntax-highlight language from a filename.
func sourceLanguage(filename string) string {
	if filename == "" {
		return "text"
	}
	if lang, ok := sourceExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	switch filepath.Base(filename) {
	case "Dockerfile":
		return "dockerfile"
	case "Makefile":
		return "makefile"
	}
	return "text"
}
