package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"

	"github.com/abhisek/lexiz/internal/clock"
	"github.com/abhisek/lexiz/internal/progress"
)

// Default notification window, in hours of the learner's calendar.
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Loader reads the current progress store.
type Loader interface {
	Load(ctx context.Context) (*progress.Store, error)
}

// Notifier delivers a digest to the learner.
type Notifier interface {
	Notify(ctx context.Context, d Digest) error
}

// Options configure a Scheduler.
type Options struct {
	Loader   Loader
	Notifier Notifier
	ItemIDs  []string
	Calendar progress.Calendar
	Clock    clock.Clock
	Logger   *slog.Logger
	// StartHour and EndHour bound the hours (inclusive) in which
	// notifications are sent. They are used as given: 0 and 0 is the
	// midnight hour only.
	StartHour int
	EndHour   int
}

// Scheduler runs the reminder check on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	opts      Options
}

// New creates a scheduler. Nothing runs until Start.
func New(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		opts:      opts,
	}
}

// Start schedules the check every interval, running it once right away.
func (s *Scheduler) Start(every time.Duration) error {
	if every <= 0 {
		return errors.Errorf("reminder interval must be positive, got %s", every)
	}
	_, err := s.scheduler.Every(every).Do(func() {
		if _, err := s.Check(context.Background()); err != nil {
			s.opts.Logger.Warn("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return errors.Wrap(err, "schedule reminder")
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduled check.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Check loads progress, builds a digest and notifies when it is worthwhile
// and within the notification window. The digest is returned either way.
func (s *Scheduler) Check(ctx context.Context) (Digest, error) {
	ps, err := s.opts.Loader.Load(ctx)
	if err != nil {
		return Digest{}, errors.Wrap(err, "load progress")
	}

	now := s.opts.Clock.Now()
	d := BuildDigest(ps, s.opts.ItemIDs, now, s.opts.Calendar)

	if hour := s.opts.Calendar.In(now).Hour(); hour < s.opts.StartHour || hour > s.opts.EndHour {
		s.opts.Logger.Debug("outside notification hours, skipping reminder",
			"hour", hour, "start", s.opts.StartHour, "end", s.opts.EndHour)
		return d, nil
	}
	if !d.Worthwhile() {
		return d, nil
	}
	if err := s.opts.Notifier.Notify(ctx, d); err != nil {
		return d, errors.Wrap(err, "send reminder")
	}
	return d, nil
}

// WriterNotifier prints digests, one per line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, d Digest) error {
	_, err := fmt.Fprintf(n.W, "[%s] %s\n", d.At.Format("15:04"), d)
	return err
}

// LogNotifier emits digests as structured log records.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, d Digest) error {
	n.Logger.InfoContext(ctx, "study reminder",
		"due", d.Due,
		"new", d.New,
		"streak", d.Streak,
		"streak_at_risk", d.StreakAtRisk,
		"today_xp", d.TodayXP,
		"daily_goal", d.DailyGoal)
	return nil
}
