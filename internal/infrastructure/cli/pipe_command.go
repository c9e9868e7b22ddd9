package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/application/explain"
	"github.com/doeshing/xplain-go/internal/domain"
)

const (
	// previewMaxLines is the input size above which the preview collapses to
	// head and tail.
	previewMaxLines = 30
	previewHead     = 15
	previewTail     = 5
	previewMaxChars = 500

	// pipeQueryPreviewChars bounds the query text stored in history for
	// piped input.
	pipeQueryPreviewChars = 200
)

func (c *CLI) newPipeCommand() *cobra.Command {
	var (
		lang      string
		forceType string
	)

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Auto-detect and explain piped input",
		Example: "  python app.py 2>&1 | xplain pipe\n" +
			"  cat error.log | xplain pipe --lang vi\n" +
			"  npm test 2>&1 | xplain pipe --type error",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isatty.IsTerminal(os.Stdin.Fd()) {
				return errors.New("no piped input detected\n\nUsage: <command> | xplain pipe")
			}

			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			content := strings.TrimSpace(string(data))
			if content == "" {
				return errors.New("received empty input from stdin")
			}

			outputLang := c.language(lang)

			contentType := domain.ContentType(forceType)
			if forceType == "" {
				contentType = domain.DetectContentType(content)
			}
			c.render.Info("Detected content type: %s", contentType.Label())
			c.render.Dim("Input preview:\n%s", preview(content))

			kind := explain.KindAuto
			switch contentType {
			case domain.ContentError:
				kind = explain.KindError
			case domain.ContentCode:
				kind = explain.KindCode
			}

			queryPreview := content
			if len(queryPreview) > pipeQueryPreviewChars {
				queryPreview = queryPreview[:pipeQueryPreviewChars]
			}

			spinner := NewSpinner(fmt.Sprintf("Analyzing input %s...", LanguageTag(outputLang)))
			spinner.Start()
			explanation, err := c.container.ExplainService.Explain(cmd.Context(), explain.Request{
				Kind:        kind,
				Input:       content,
				Language:    outputLang,
				RecordType:  domain.TypePipe,
				RecordQuery: queryPreview,
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			return c.showExplanation("Analysis", LanguageTag(outputLang), explanation)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	cmd.Flags().StringVarP(&forceType, "type", "t", "", "Force content type: error, code, or auto")
	return cmd
}

// preview collapses long input to the first and last lines, then caps the
// total character budget.
func preview(content string) string {
	lines := strings.Split(content, "\n")
	text := content
	if len(lines) > previewMaxLines {
		text = strings.Join(lines[:previewHead], "\n") +
			fmt.Sprintf("\n\n... (%d lines total) ...\n\n", len(lines)) +
			strings.Join(lines[len(lines)-previewTail:], "\n")
	}
	if len(text) > previewMaxChars {
		text = text[:previewMaxChars]
	}
	return text
}
