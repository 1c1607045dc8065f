// Package config loads runtime settings from lexiz.yaml, LEXIZ_*
// environment variables and an optional .env file.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/abhisek/lexiz/internal/progress"
	"github.com/abhisek/lexiz/internal/quiz"
	"github.com/abhisek/lexiz/internal/reminder"
	"github.com/abhisek/lexiz/internal/session"
	"github.com/abhisek/lexiz/internal/srs"
	"github.com/abhisek/lexiz/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g. LEXIZ_DB_DSN.
const EnvPrefix = "LEXIZ"

// Config is the full set of runtime settings.
type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	Store    StoreConfig    `mapstructure:"store"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Progress ProgressConfig `mapstructure:"progress"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	Remind   RemindConfig   `mapstructure:"remind"`
	Log      LogConfig      `mapstructure:"log"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"`
	// DSN is a file path for sqlite or a connection URL for postgres. An
	// empty sqlite DSN resolves to store.DefaultDBPath.
	DSN string `mapstructure:"dsn"`
}

type StoreConfig struct {
	Key string `mapstructure:"key"`
}

type CatalogConfig struct {
	// Path to a .json, .csv or .xlsx word list. Empty uses the built-in list.
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	Limit           int  `mapstructure:"limit"`
	MinNew          int  `mapstructure:"min_new"`
	HoldOnIncorrect bool `mapstructure:"hold_on_incorrect"`
}

type ProgressConfig struct {
	XPPerCorrect int    `mapstructure:"xp_per_correct"`
	DailyGoal    int    `mapstructure:"daily_goal"`
	Timezone     string `mapstructure:"timezone"`
	// HistoryDays bounds the daily history kept in the progress document.
	// Zero keeps everything.
	HistoryDays int `mapstructure:"history_days"`
}

type QuizConfig struct {
	TypingRatio float64 `mapstructure:"typing_ratio"`
}

type RemindConfig struct {
	Every     time.Duration `mapstructure:"every"`
	StartHour int           `mapstructure:"start_hour"`
	EndHour   int           `mapstructure:"end_hour"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives log output when set; otherwise logs go to stderr.
	File string `mapstructure:"file"`
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", store.DriverSQLite)
	v.SetDefault("db.dsn", "")
	v.SetDefault("store.key", progress.DefaultKey)
	v.SetDefault("catalog.path", "")
	v.SetDefault("session.limit", session.DefaultLimit)
	v.SetDefault("session.min_new", srs.DefaultMinNew)
	v.SetDefault("session.hold_on_incorrect", true)
	v.SetDefault("progress.xp_per_correct", progress.DefaultXPPerCorrect)
	v.SetDefault("progress.daily_goal", progress.DefaultDailyGoal)
	v.SetDefault("progress.timezone", "Local")
	v.SetDefault("progress.history_days", 365)
	v.SetDefault("quiz.typing_ratio", quiz.DefaultTypingRatio)
	v.SetDefault("remind.every", time.Hour)
	v.SetDefault("remind.start_hour", reminder.DefaultStartHour)
	v.SetDefault("remind.end_hour", reminder.DefaultEndHour)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

// New returns a viper instance with defaults, env binding and config file
// search paths set up. A .env file in the working directory is loaded into
// the process environment first when present.
func New() *viper.Viper {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(newReplacer())
	v.AutomaticEnv()

	v.SetConfigName("lexiz")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "lexiz"))
	}
	return v
}

func newReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// Load reads the config file (if any) and decodes v into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for postgres")
		}
	default:
		return errors.Errorf("db.driver must be %q or %q, got %q", store.DriverSQLite, store.DriverPostgres, c.DB.Driver)
	}
	if c.Store.Key == "" {
		return errors.New("store.key must not be empty")
	}
	if c.Session.Limit <= 0 {
		return errors.Errorf("session.limit must be positive, got %d", c.Session.Limit)
	}
	if c.Session.MinNew < 0 {
		return errors.Errorf("session.min_new must not be negative, got %d", c.Session.MinNew)
	}
	if c.Progress.XPPerCorrect <= 0 {
		return errors.Errorf("progress.xp_per_correct must be positive, got %d", c.Progress.XPPerCorrect)
	}
	if c.Progress.DailyGoal <= 0 {
		return errors.Errorf("progress.daily_goal must be positive, got %d", c.Progress.DailyGoal)
	}
	if c.Progress.HistoryDays < 0 {
		return errors.Errorf("progress.history_days must not be negative, got %d", c.Progress.HistoryDays)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Quiz.TypingRatio < 0 || c.Quiz.TypingRatio > 1 {
		return errors.Errorf("quiz.typing_ratio must be within [0, 1], got %v", c.Quiz.TypingRatio)
	}
	if c.Remind.Every < time.Minute {
		return errors.Errorf("remind.every must be at least 1m, got %s", c.Remind.Every)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Remind.StartHour < 0 || c.Remind.EndHour > 23 || c.Remind.StartHour > c.Remind.EndHour {
		return errors.Errorf("remind hours must satisfy 0 <= start_hour <= end_hour <= 23, got %d-%d",
			c.Remind.StartHour, c.Remind.EndHour)
	}
	return nil
}

// Location resolves progress.timezone. "Local" and "" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Progress.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Progress.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "progress.timezone %q", c.Progress.Timezone)
	}
	return loc, nil
}

// LogLevel parses log.level ("debug", "info", "warn" or "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return lvl, errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	return lvl, nil
}

// Calendar returns the calendar every date computation must use.
func (c *Config) Calendar() progress.Calendar {
	loc, err := c.Location()
	if err != nil {
		loc = time.Local
	}
	return progress.Calendar{Location: loc}
}

// Ledger builds the progress ledger from the progress settings.
func (c *Config) Ledger() progress.Ledger {
	l := progress.NewLedger(c.Calendar())
	l.XPPerCorrect = c.Progress.XPPerCorrect
	return l
}

// Codec builds the persistence codec.
func (c *Config) Codec() progress.Codec {
	codec := progress.DefaultCodec()
	codec.DailyGoal = c.Progress.DailyGoal
	return codec
}

// SessionOptions maps the session settings onto session.Options.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Limit:           c.Session.Limit,
		Queue:           srs.QueueOptions{MinNew: c.Session.MinNew},
		HoldOnIncorrect: c.Session.HoldOnIncorrect,
	}
}

// ResolveDSN fills in the default sqlite path when no DSN was configured.
func (c *Config) ResolveDSN() (string, error) {
	if c.DB.DSN != "" {
		if c.DB.Driver == store.DriverSQLite {
			return c.DB.DSN, store.EnsureDir(c.DB.DSN)
		}
		return c.DB.DSN, nil
	}
	return store.DefaultDBPath()
}
