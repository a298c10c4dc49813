// Package config loads and stores psg settings.
//
// Settings live in a TOML file under the user's config directory. The file
// is optional; every key has a default. Values are layered, later layers
// winning:
//
//	defaults < config.toml < .env < PSG_* environment < explicit flags
//
// Keys are addressed with dotted names ("print.layout", "log.level"), which
// is also how `psg config set` refers to them.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
)

const (
	appName  = "puzzlesheet"
	fileName = "config.toml"

	// PathEnv overrides the location of the config file.
	PathEnv = "PSG_CONFIG"
)

// Config is the full set of psg settings.
type Config struct {
	Autosave        bool   `toml:"autosave"`
	BoardColorsPath string `toml:"board_colors_path"`
	PuzzleDB        string `toml:"puzzle_db"`
	DataDir         string `toml:"data_dir"`
	Seed            int64  `toml:"seed"`

	Print    PrintConfig    `toml:"print"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// PrintConfig controls `psg print`.
type PrintConfig struct {
	Layout    string `toml:"layout"`
	OutputDir string `toml:"output_dir"`
}

// DatabaseConfig controls loading of the puzzle database.
type DatabaseConfig struct {
	MaxRatingDeviation int      `toml:"max_rating_deviation"`
	MinPopularity      int      `toml:"min_popularity"`
	CacheTTL           Duration `toml:"cache_ttl"`
}

// Thresholds returns the quality filter applied at load time.
func (d DatabaseConfig) Thresholds() puzzledb.Thresholds {
	return puzzledb.Thresholds{
		MaxRatingDeviation: d.MaxRatingDeviation,
		MinPopularity:      d.MinPopularity,
	}
}

// LogConfig controls the logger. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Duration is a time.Duration written as "90s" or "24h" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Autosave: true,
		DataDir:  DefaultDataDir(),
		Print: PrintConfig{
			Layout: layout.Auto.String(),
		},
		Database: DatabaseConfig{
			MaxRatingDeviation: puzzledb.DefaultThresholds.MaxRatingDeviation,
			MinPopularity:      puzzledb.DefaultThresholds.MinPopularity,
			CacheTTL:           Duration{30 * 24 * time.Hour},
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Path returns the config file location: $PSG_CONFIG if set, otherwise
// puzzlesheet/config.toml below the user's config directory.
func Path() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config directory")
	}
	return filepath.Join(dir, appName, fileName), nil
}

// DefaultDataDir returns $XDG_DATA_HOME/puzzlesheet, falling back to
// ~/.local/share/puzzlesheet.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", appName)
	}
	return filepath.Join(os.TempDir(), appName)
}

// Load reads the file at path on top of the defaults. A missing file is
// not an error. Keys the file sets but psg does not know are rejected.
func Load(path string) (Config, error) {
	c := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Save writes c to path, creating the parent directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "create config directory")
	}
	err := fsutil.Write(path, 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(c)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", path)
	}
	return nil
}

// Validate checks values that cannot be expressed by the field types.
func (c Config) Validate() error {
	if _, err := layout.ParseVariant(c.Print.Layout); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "print.layout")
	}
	if _, err := charmlog.ParseLevel(c.Log.Level); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "log.level: unknown level %q", c.Log.Level)
	}
	switch {
	case c.DataDir == "":
		return errors.New(errors.ErrCodeInvalidConfig, "data_dir must not be empty")
	case c.Database.MaxRatingDeviation < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "database.max_rating_deviation must not be negative")
	case c.Database.CacheTTL.Duration < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "database.cache_ttl must not be negative")
	case c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "log rotation limits must not be negative")
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c Config) LogLevel() charmlog.Level {
	lvl, err := charmlog.ParseLevel(c.Log.Level)
	if err != nil {
		return charmlog.InfoLevel
	}
	return lvl
}

// Layout returns the parsed default print layout.
func (c Config) Layout() layout.Variant {
	v, err := layout.ParseVariant(c.Print.Layout)
	if err != nil {
		return layout.Auto
	}
	return v
}
