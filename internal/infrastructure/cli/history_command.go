package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/xplain-go/internal/domain"
	"github.com/doeshing/xplain-go/internal/infrastructure/history"
)

const (
	defaultHistoryLimit = 20

	msgNoHistoryEntries = "No history entries found."
)

func (c *CLI) newHistoryCommand() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse explanation history",
	}

	historyCmd.AddCommand(
		c.newHistoryListCommand(),
		c.newHistorySearchCommand(),
		c.newHistoryShowCommand(),
		c.newHistoryClearCommand(),
		c.newHistoryExportCommand(),
	)
	return historyCmd
}

func (c *CLI) newHistoryListCommand() *cobra.Command {
	var (
		limit      int
		typeFilter string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent explanations",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.container.HistoryStore.List(limit, domain.CommandType(typeFilter))
			if err != nil {
				return err
			}
			c.printHistoryTable("Recent Explanations", entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Number of entries to show")
	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Filter by type: cmd, error, code, diff, pipe, chat, wtf")
	return cmd
}

func (c *CLI) newHistorySearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search history by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := c.container.HistoryStore.Search(args[0], limit)
			if err != nil {
				return err
			}
			c.printHistoryTable(fmt.Sprintf("Search results for %q", args[0]), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Number of entries to show")
	return cmd
}

func (c *CLI) newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <n>",
		Short: "Show full details of entry N (1 = most recent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry number: %s", args[0])
			}

			entry, ok := c.container.HistoryStore.Get(index)
			if !ok {
				return fmt.Errorf("no history entry at position %d", index)
			}

			c.render.Plain("")
			c.render.Info("History Entry #%d", index)
			c.render.Plain("  Time:     %s (%s)", entry.Time().Format("2006-01-02 15:04:05"), humanize.Time(entry.Time()))
			c.render.Plain("  Type:     %s", entry.CommandType)
			c.render.Plain("  Language: %s", LanguageTag(entry.Language))
			c.render.Plain("  Query:    %s", entry.ShortQuery())

			c.render.Explanation(fmt.Sprintf("Explanation (%s)", entry.CommandType),
				humanize.Time(entry.Time()), entry.Explanation)
			return nil
		},
	}
}

func (c *CLI) newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all history",
		RunE: func(cmd *cobra.Command, args []string) error {
			count := c.container.HistoryStore.Count()
			if err := c.container.HistoryStore.Clear(); err != nil {
				return err
			}
			c.render.Success("Cleared %d history entries", count)
			return nil
		},
	}
}

func (c *CLI) newHistoryExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a .jsonl or .db file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := history.Export(c.container.HistoryStore, args[0])
			if err != nil {
				return err
			}
			c.render.Success("Exported %d entries to %s", count, args[0])
			return nil
		},
	}
}

func (c *CLI) printHistoryTable(title string, entries []domain.HistoryEntry) {
	if len(entries) == 0 {
		c.render.Info(msgNoHistoryEntries)
		return
	}

	c.render.Plain("")
	c.render.Info("%s", title)
	c.render.Plain("%4s  %-16s  %-6s  %-4s  %s", "#", "Time", "Type", "Lang", "Query")

	// Entries arrive oldest-first; number them so 1 is the most recent.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		c.render.Plain("%4d  %-16s  %-6s  %-4s  %s",
			len(entries)-i,
			humanize.Time(entry.Time()),
			entry.CommandType,
			entry.Language,
			entry.ShortQuery(),
		)
	}

	total := c.container.HistoryStore.Count()
	c.render.Dim("\nShowing %d of %d total entries", len(entries), total)
	c.render.Dim("Use `xplain history show N` to view full details of an entry")
}
