package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/domain"
)

const chatGoodbye = "Goodbye! Happy coding!"

func (c *CLI) newChatCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat mode",
		Example: "  xplain chat\n" +
			"  xplain chat --lang vi",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputLang := c.language(lang)
			if !domain.IsSupportedLanguage(outputLang) {
				return fmt.Errorf("unsupported language: %s\nSupported: %s",
					outputLang, strings.Join(domain.LanguageCodes(), ", "))
			}

			c.render.Banner()
			c.render.Info("Interactive Chat Mode %s", LanguageTag(outputLang))
			c.render.Info("Type /help for commands, /exit to quit")
			c.render.Plain("")

			sessionID := uuid.NewString()
			var transcript []domain.Message

			interrupts := make(chan os.Signal, 1)
			signal.Notify(interrupts, os.Interrupt)
			defer signal.Stop(interrupts)
			go func() {
				<-interrupts
				fmt.Println()
				c.render.Success(chatGoodbye)
				os.Exit(0)
			}()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for {
				fmt.Print("You> ")
				if !scanner.Scan() {
					fmt.Println()
					c.render.Success(chatGoodbye)
					return nil
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}

				if strings.HasPrefix(input, "/") {
					exit := c.handleChatCommand(input, &transcript, &outputLang)
					if exit {
						c.render.Success(chatGoodbye)
						return nil
					}
					continue
				}

				spinner := NewSpinner("Thinking...")
				spinner.Start()
				reply, err := c.container.ExplainService.Chat(cmd.Context(), input, transcript, outputLang,
					map[string]any{"session": sessionID})
				spinner.Stop()
				if err != nil {
					c.render.Error("%v", err)
					continue
				}

				transcript = append(transcript,
					domain.Message{Role: domain.RoleUser, Content: input},
					domain.Message{Role: domain.RoleAssistant, Content: reply},
				)

				c.render.Explanation("Assistant", "", reply)
				c.render.Plain("")
			}
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Output language ("+strings.Join(domain.LanguageCodes(), ", ")+")")
	return cmd
}

// handleChatCommand dispatches a slash command. It returns true when the
// session should end.
func (c *CLI) handleChatCommand(input string, transcript *[]domain.Message, outputLang *string) bool {
	parts := strings.Fields(input)
	switch strings.ToLower(parts[0]) {
	case "/exit", "/quit", "/q":
		return true

	case "/help":
		c.render.Plain("")
		c.render.Info("Available Commands:")
		c.render.Plain("  /help     - Show this help message")
		c.render.Plain("  /lang XX  - Change language (e.g., /lang vi)")
		c.render.Plain("  /clear    - Clear conversation history")
		c.render.Plain("  /exit     - Exit chat mode")
		c.render.Plain("")

	case "/clear":
		*transcript = nil
		c.render.Success("Conversation history cleared")

	case "/lang":
		if len(parts) < 2 {
			c.render.Info("Current language: %s", LanguageTag(*outputLang))
			c.render.Info("Available: %s", strings.Join(domain.LanguageCodes(), ", "))
			return false
		}
		next := strings.ToLower(parts[1])
		if !domain.IsSupportedLanguage(next) {
			c.render.Error("Unknown language: %s", next)
			c.render.Info("Available: %s", strings.Join(domain.LanguageCodes(), ", "))
			return false
		}
		*outputLang = next
		c.render.Success("Language changed to %s", LanguageTag(next))

	default:
		c.render.Error("Unknown command: %s", parts[0])
		c.render.Info("Type /help for available commands")
	}
	return false
}
