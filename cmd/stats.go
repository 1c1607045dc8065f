package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/srs"
	"github.com/abhisek/lexiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sessions, _ := cmd.Flags().GetInt("sessions")

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		ps, err := rt.repo.Load(ctx)
		if err != nil {
			return err
		}

		now := time.Now()
		cal := cfg.Calendar()
		date := cal.Date(now)
		us := ps.UserStats
		lp := cfg.Ledger().Levels.Progress(us.TotalXP)
		sep := strings.Repeat("─", 48)

		fmt.Printf("Level %d  (%d/%d XP, %d%%)\n", lp.Level, lp.Current, lp.Required, lp.Percent)
		fmt.Printf("Total XP:        %d\n", us.TotalXP)
		fmt.Printf("Streak:          %d days (longest %d, next milestone %d)\n",
			us.ActiveStreak(date), us.LongestStreak, progress.NextStreakMilestone(us.ActiveStreak(date)))
		fmt.Printf("Today:           %d/%d XP\n", us.XPOn(date), us.DailyGoal)

		today := ps.Today(cal, now)
		fmt.Printf("Answered today:  %d (%.0f%% correct)\n", today.ItemsStudied, today.AccuracyPercent)

		t := ps.Totals()
		fmt.Println(sep)
		fmt.Printf("Items reviewed:  %d of %d\n", t.ItemsReviewed, rt.catalog.Len())
		fmt.Printf("Answers:         %d (%.0f%% correct)\n", t.Answers, t.AccuracyPercent)
		fmt.Printf("Days studied:    %d\n", t.DaysStudied)

		o := srs.BuildOverview(rt.catalog.IDs(), ps.Items, now)
		fmt.Println(sep)
		fmt.Printf("Due now: %d   Tomorrow: %d   This week: %d\n", o.DueNow, o.DueTomorrow, o.DueThisWeek)
		fmt.Printf("Learning: %d   Mastered: %d   New: %d\n", o.Learning, o.Mastered, o.New)

		events := rt.store.EventRepo()
		week, err := events.AnswerCounts(ctx, now.AddDate(0, 0, -7))
		if err != nil {
			return err
		}
		fmt.Println(sep)
		fmt.Printf("Last 7 days:     %d answers on %d items, %d correct\n", week.Total, week.Items, week.Correct)

		if sessions <= 0 {
			return nil
		}
		recent, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessions})
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			return nil
		}
		fmt.Println(sep)
		fmt.Printf("%-16s  %6s  %7s  %5s  %s\n", "Finished", "Items", "Correct", "XP", "Time")
		for _, r := range recent {
			fmt.Printf("%-16s  %6d  %7d  %5d  %s\n",
				cal.In(r.Timestamp).Format("2006-01-02 15:04"),
				r.ItemsServed, r.CorrectAnswers, r.XPEarned,
				(time.Duration(r.DurationSecs) * time.Second).String())
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("sessions", 5, "Number of recent sessions to list")
}
