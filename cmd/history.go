package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		item, _ := cmd.Flags().GetString("item")
		session, _ := cmd.Flags().GetString("session")

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		events, err := rt.store.EventRepo().QueryAnswerEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		cal := cfg.Calendar()
		fmt.Printf("%-6s  %-19s  %-20s  %-2s  %-4s  %8s  %s\n",
			"Seq", "Timestamp", "Item", "Q", "OK", "Interval", "Ease")
		fmt.Println(strings.Repeat("─", 80))

		for _, e := range events {
			if item != "" && e.ItemID != item {
				continue
			}
			if session != "" && e.SessionID != session {
				continue
			}
			ok := "✓"
			if !e.Correct {
				ok = "✗"
			}
			fmt.Printf("%-6d  %-19s  %-20s  %-2d  %-4s  %7dd  %.2f\n",
				e.Sequence,
				cal.In(e.Timestamp).Format("2006-01-02 15:04:05"),
				truncate(e.ItemID, 20),
				e.Quality,
				ok,
				e.IntervalDays,
				e.EaseFactor,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Maximum answers to show")
	historyCmd.Flags().String("item", "", "Only show answers for this item")
	historyCmd.Flags().String("session", "", "Only show answers from this session")
}
