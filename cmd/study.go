package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/app"
	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/reminder"
	"github.com/abhisek/lexiz/internal/screen"
	"github.com/abhisek/lexiz/internal/screens/study"
	"github.com/abhisek/lexiz/internal/screens/welcome"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/ui/layout"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session",
	RunE:  runStudy,
}

func init() {
	studyFlags(studyCmd)
}

func studyFlags(c *cobra.Command) {
	c.Flags().Int("limit", 0, "Maximum items in the session (default session.limit)")
	c.Flags().String("category", "", "Only study items from this category")
	c.Flags().Duration("hard-after", 8*time.Second, "Grade correct answers slower than this as hard (0 disables)")
	c.Flags().Bool("no-welcome", false, "Skip the welcome screen")
}

// firstScreen returns the welcome screen, or the study screen directly
// with --no-welcome.
func firstScreen(cmd *cobra.Command, ps *progress.Store, cat *catalog.Catalog, next func() (screen.Screen, error)) (screen.Screen, error) {
	if skip, _ := cmd.Flags().GetBool("no-welcome"); skip {
		return next()
	}
	us := ps.UserStats
	digest := reminder.BuildDigest(ps, cat.IDs(), time.Now(), cfg.Calendar())
	return welcome.New(digest, layout.Status{Level: us.Level, XP: us.TotalXP, Streak: digest.Streak}, next), nil
}

func runStudy(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	cat := rt.catalog
	if category, _ := cmd.Flags().GetString("category"); category != "" {
		cat = cat.Filter(catalog.Filter{Category: category})
		if cat.Len() == 0 {
			return errors.Errorf("no items in category %q", category)
		}
	}

	ps, err := rt.repo.Load(ctx)
	if err != nil {
		return err
	}

	if days := cfg.Progress.HistoryDays; days > 0 {
		if n := ps.Prune(cfg.Calendar(), time.Now(), days); n > 0 {
			logger.Debug("pruned daily history", "rows", n, "keep_days", days)
		}
	}

	opts := cfg.SessionOptions()
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		opts.Limit = limit
	}
	hardAfter, _ := cmd.Flags().GetDuration("hard-after")

	var (
		s       *session.Session
		summary *session.Summary
	)
	// The session starts when the learner leaves the welcome screen.
	startStudy := func() (screen.Screen, error) {
		var err error
		s, err = session.Start(ctx, session.Deps{
			Ledger:    cfg.Ledger(),
			Persister: rt.repo,
			Events:    rt.store.EventRepo(),
			Logger:    logger,
		}, ps, cat.IDs(), opts)
		if err != nil {
			return nil, err
		}

		gen := quiz.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
		gen.TypingRatio = cfg.Quiz.TypingRatio

		return study.New(study.Config{
			Session:   s,
			Catalog:   cat,
			Generator: gen,
			Levels:    cfg.Ledger().Levels,
			HardAfter: hardAfter,
			OnEnd: func(sum *session.Summary) {
				summary = sum
				if err := rt.snapshot(ctx, s.Progress(), "session"); err != nil {
					logger.Warn("save session snapshot", "session_id", sum.SessionID, "error", err)
				}
			},
		}), nil
	}

	first, err := firstScreen(cmd, ps, cat, startStudy)
	if err != nil {
		return err
	}
	if err := app.Run(first); err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	// Ctrl+C quits without the summary screen.
	if summary == nil {
		summary = s.End(ctx)
		if err := rt.snapshot(ctx, s.Progress(), "session"); err != nil {
			logger.Warn("save session snapshot", "session_id", summary.SessionID, "error", err)
		}
	}
	fmt.Printf("%d/%d correct, +%d XP, level %d, %d day streak\n",
		summary.Correct, summary.ItemsSeen, summary.XPEarned, summary.LevelAfter, summary.Streak)
	return nil
}
