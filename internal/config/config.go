package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "20:30"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue",...]
	Holidays []string `mapstructure:"holidays"` // ["2026-12-25"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Europe/Berlin" (optional)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug|info|warn|error
	Format string `mapstructure:"format"` // console|json|off
}

// RemoteConfig points at the hosted Postgres mirror.
type RemoteConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DatabaseURL string `mapstructure:"database_url"`
	UserID      string `mapstructure:"user_id"`
}

type CompletionConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Model         string        `mapstructure:"model"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxContent    int           `mapstructure:"max_content"`
	RatePerMinute int           `mapstructure:"rate_per_minute"`
}

type DraftConfig struct {
	RedisURL string `mapstructure:"redis_url"` // empty keeps drafts in sqlite
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DictationConfig struct {
	MaxDuration time.Duration `mapstructure:"max_duration"`
}

type Config struct {
	Theme      string           `mapstructure:"theme"`
	DataDir    string           `mapstructure:"data_dir"`
	Passphrase string           `mapstructure:"passphrase"`
	Log        LogConfig        `mapstructure:"log"`
	Reminder   ReminderConfig   `mapstructure:"reminder"`
	Remote     RemoteConfig     `mapstructure:"remote"`
	Completion CompletionConfig `mapstructure:"completion"`
	Draft      DraftConfig      `mapstructure:"draft"`
	Server     ServerConfig     `mapstructure:"server"`
	Dictation  DictationConfig  `mapstructure:"dictation"`
}

func Default() Config {
	return Config{
		Theme: "default",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "20:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
		},
		Completion: CompletionConfig{
			BaseURL:       "https://api.openai.com/v1",
			Model:         "gpt-3.5-turbo",
			Timeout:       10 * time.Second,
			MaxContent:    2000,
			RatePerMinute: 20,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:3001",
		},
		Dictation: DictationConfig{
			MaxDuration: 5 * time.Minute,
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "voicejournal")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads ~/.config/voicejournal/config.yaml plus VOICEJOURNAL_* overrides.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the YAML file at path. A missing file yields the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("VOICEJOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults; every key needs one so env overrides reach Unmarshal
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("passphrase", cfg.Passphrase)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)
	v.SetDefault("remote.enabled", cfg.Remote.Enabled)
	v.SetDefault("remote.database_url", cfg.Remote.DatabaseURL)
	v.SetDefault("remote.user_id", cfg.Remote.UserID)
	v.SetDefault("completion.enabled", cfg.Completion.Enabled)
	v.SetDefault("completion.api_key", cfg.Completion.APIKey)
	v.SetDefault("completion.base_url", cfg.Completion.BaseURL)
	v.SetDefault("completion.model", cfg.Completion.Model)
	v.SetDefault("completion.timeout", cfg.Completion.Timeout)
	v.SetDefault("completion.max_content", cfg.Completion.MaxContent)
	v.SetDefault("completion.rate_per_minute", cfg.Completion.RatePerMinute)
	v.SetDefault("draft.redis_url", cfg.Draft.RedisURL)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("dictation.max_duration", cfg.Dictation.MaxDuration)

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config read: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Reminder.Workdays = normalizeWorkdays(cfg.Reminder.Workdays)
	return cfg, nil
}

func normalizeWorkdays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) < 3 {
			continue
		}
		out = append(out, strings.ToUpper(d[:1])+d[1:3])
	}
	return out
}

// Validate reports settings that would make a command misbehave later.
func (c Config) Validate() error {
	var errs []error
	if _, err := time.Parse("15:04", c.Reminder.Time); err != nil {
		errs = append(errs, fmt.Errorf("%w: reminder.time %q is not HH:MM", ErrInvalid, c.Reminder.Time))
	}
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			errs = append(errs, fmt.Errorf("%w: reminder.timezone %q", ErrInvalid, tz))
		}
	}
	for _, h := range c.Reminder.Holidays {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(h)); err != nil {
			errs = append(errs, fmt.Errorf("%w: reminder.holidays entry %q is not YYYY-MM-DD", ErrInvalid, h))
		}
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json", "off":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format))
	}
	if c.Remote.Enabled && (c.Remote.DatabaseURL == "" || c.Remote.UserID == "") {
		errs = append(errs, fmt.Errorf("%w: remote.enabled needs database_url and user_id", ErrInvalid))
	}
	if c.Dictation.MaxDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: dictation.max_duration must be positive", ErrInvalid))
	}
	return errors.Join(errs...)
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// DataPath resolves the local data directory, defaulting to
// ~/.local/share/voicejournal, and creates it.
func (c Config) DataPath() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "share", "voicejournal")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
