package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long: `Delete all scheduling state, XP and streaks. A snapshot is taken first,
so "lexiz restore" can bring the progress back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to reset without --yes")
		}
		ctx := cmd.Context()

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		ps, err := rt.repo.Load(ctx)
		if err != nil {
			return err
		}
		if err := rt.snapshot(ctx, ps, "reset"); err != nil {
			return errors.Wrap(err, "snapshot before reset")
		}
		if err := rt.repo.Reset(ctx); err != nil {
			return err
		}

		logger.Info("progress reset", "items", len(ps.Items), "xp", ps.UserStats.TotalXP)
		fmt.Println("Progress reset.")
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore progress from the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := openRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		snap, err := rt.store.SnapshotRepo().Latest(ctx)
		if err != nil {
			return err
		}
		if snap == nil {
			return errors.New("no snapshot to restore")
		}

		ps, err := cfg.Codec().Decode(snap.Data)
		if err != nil {
			return errors.Wrapf(err, "decode snapshot %d", snap.ID)
		}
		if err := rt.repo.Save(ctx, ps); err != nil {
			return err
		}

		fmt.Printf("Restored snapshot %d (%s, %s): level %d, %d XP, %d items\n",
			snap.ID, snap.Reason, cfg.Calendar().In(snap.Timestamp).Format("2006-01-02 15:04"),
			ps.UserStats.Level, ps.UserStats.TotalXP, len(ps.Items))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
