package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/srs"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the items the next session would study",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		ps, err := rt.repo.Load(cmd.Context())
		if err != nil {
			return err
		}

		opts := cfg.SessionOptions()
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			opts.Limit = limit
		}

		now := time.Now()
		q := srs.BuildQueue(rt.catalog.IDs(), ps.Items, opts.Limit, now, opts.Queue)
		if q.Len() == 0 {
			fmt.Println("Nothing to study right now.")
			return nil
		}

		fmt.Printf("%-3s  %-20s  %-24s  %-24s  %-8s  %s\n",
			"#", "ID", "Term", "Translation", "Status", "Ease")
		fmt.Println(strings.Repeat("─", 96))

		for i, id := range q.IDs() {
			item, _ := rt.catalog.Get(id)
			st, ok := ps.State(id)
			status, ease := string(srs.StatusNew), "-"
			if ok {
				status = string(st.Status(now))
				ease = fmt.Sprintf("%.2f", st.EaseFactor)
			}
			fmt.Printf("%-3d  %-20s  %-24s  %-24s  %-8s  %s\n",
				i+1, truncate(id, 20), truncate(item.Term, 24), truncate(item.Translation, 24), status, ease)
		}

		fmt.Printf("\n%d due, %d new\n", len(q.Due), len(q.New))
		return nil
	},
}

func init() {
	queueCmd.Flags().Int("limit", 0, "Queue size (default session.limit)")
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
