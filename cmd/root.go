package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/lexiz/internal/config"
	"github.com/abhisek/lexiz/internal/store"
)

var (
	v   = config.New()
	cfg *config.Config

	logger  = slog.Default()
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lexiz",
	Short: "Spaced-repetition vocabulary trainer",
	Long:  "Lexiz is a terminal vocabulary trainer that schedules reviews with SM-2 and tracks XP, levels and streaks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			_ = logFile.Close()
		}
	},
	RunE: runStudy,
	// Usage is noise for runtime failures such as a locked database.
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default ./lexiz.yaml or $XDG_CONFIG_HOME/lexiz/lexiz.yaml)")
	pf.String("db", "", "Database file for sqlite or connection URL for postgres (overrides LEXIZ_DB_DSN)")
	pf.String("driver", store.DriverSQLite, "Database driver: sqlite or postgres")
	pf.String("catalog", "", "Word list (.json, .csv or .xlsx); the built-in list when empty")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	bindFlag(v, "db.dsn", "db")
	bindFlag(v, "db.driver", "driver")
	bindFlag(v, "catalog.path", "catalog")
	bindFlag(v, "log.level", "log-level")

	studyFlags(rootCmd)

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)
}

func bindFlag(v *viper.Viper, key, flag string) {
	_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c

	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		w, logFile = f, f
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return nil
}
