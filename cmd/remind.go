package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print study reminders on a schedule",
	Long: `Check progress every remind.every and print a reminder when reviews
are due or today's study is needed to keep the streak. Reminders are only
sent between remind.start_hour and remind.end_hour.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetBool("once")
		if every, _ := cmd.Flags().GetDuration("every"); every > 0 {
			cfg.Remind.Every = every
		}

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		var notifier reminder.Notifier = reminder.WriterNotifier{W: os.Stdout}
		if asLog, _ := cmd.Flags().GetBool("log"); asLog {
			notifier = reminder.LogNotifier{Logger: logger}
		}

		sched := reminder.New(reminder.Options{
			Loader:    rt.repo,
			Notifier:  notifier,
			ItemIDs:   rt.catalog.IDs(),
			Calendar:  cfg.Calendar(),
			Logger:    logger,
			StartHour: cfg.Remind.StartHour,
			EndHour:   cfg.Remind.EndHour,
		})

		if once {
			d, err := sched.Check(cmd.Context())
			if err != nil {
				return err
			}
			if !d.Worthwhile() {
				fmt.Println("Nothing to do:", d)
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := sched.Start(cfg.Remind.Every); err != nil {
			return err
		}
		defer sched.Stop()

		logger.Info("reminders started", "every", cfg.Remind.Every)
		<-ctx.Done()
		return nil
	},
}

func init() {
	remindCmd.Flags().Bool("once", false, "Check once and exit")
	remindCmd.Flags().Duration("every", 0, "Check interval (default remind.every)")
	remindCmd.Flags().Bool("log", false, "Emit reminders as log records instead of plain lines")
}
