package config

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// key binds a dotted name to one field of Config.
type key struct {
	name string
	help string
	get  func(*Config) string
	set  func(*Config, string) error
}

var keys = []key{
	boolKey("autosave", "write sheets to the data directory after every change",
		func(c *Config) *bool { return &c.Autosave }),
	stringKey("board_colors_path", "JSON file with board colours",
		func(c *Config) *string { return &c.BoardColorsPath }),
	stringKey("puzzle_db", "puzzle database: local path, http(s):// URL or s3://bucket/key",
		func(c *Config) *string { return &c.PuzzleDB }),
	stringKey("data_dir", "directory sheets, stores and downloads are kept in",
		func(c *Config) *string { return &c.DataDir }),
	int64Key("seed", "random seed for sample, 0 picks a fresh one",
		func(c *Config) *int64 { return &c.Seed }),
	stringKey("print.layout", "default layout: auto, 6 or 12",
		func(c *Config) *string { return &c.Print.Layout }),
	stringKey("print.output_dir", "directory PDFs are written to",
		func(c *Config) *string { return &c.Print.OutputDir }),
	intKey("database.max_rating_deviation", "drop puzzles with a larger rating deviation",
		func(c *Config) *int { return &c.Database.MaxRatingDeviation }),
	intKey("database.min_popularity", "drop puzzles with a lower popularity",
		func(c *Config) *int { return &c.Database.MinPopularity }),
	durationKey("database.cache_ttl", "lifetime of the parsed database snapshot",
		func(c *Config) *time.Duration { return &c.Database.CacheTTL.Duration }),
	stringKey("log.level", "debug, info, warn or error",
		func(c *Config) *string { return &c.Log.Level }),
	stringKey("log.file", "also write logs to this file, rotated",
		func(c *Config) *string { return &c.Log.File }),
	intKey("log.max_size_mb", "rotate the log file at this size",
		func(c *Config) *int { return &c.Log.MaxSizeMB }),
	intKey("log.max_backups", "rotated log files to keep",
		func(c *Config) *int { return &c.Log.MaxBackups }),
	intKey("log.max_age_days", "days to keep rotated log files",
		func(c *Config) *int { return &c.Log.MaxAgeDays }),
}

// Key describes one setting.
type Key struct {
	Name string
	Help string
}

// Keys lists every setting in file order.
func Keys() []Key {
	out := make([]Key, len(keys))
	for i, k := range keys {
		out[i] = Key{Name: k.name, Help: k.help}
	}
	return out
}

func lookup(name string) (key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	i := slices.IndexFunc(keys, func(k key) bool { return k.name == name })
	if i < 0 {
		return key{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", name)
	}
	return keys[i], nil
}

// Get returns the value of a setting as text.
func (c *Config) Get(name string) (string, error) {
	k, err := lookup(name)
	if err != nil {
		return "", err
	}
	return k.get(c), nil
}

// Set parses value into the named setting and revalidates.
func (c *Config) Set(name, value string) error {
	k, err := lookup(name)
	if err != nil {
		return err
	}
	next := *c
	if err := k.set(&next, strings.TrimSpace(value)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", k.name)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Reset restores the named setting to its default. An empty name resets
// everything.
func (c *Config) Reset(name string) error {
	d := Default()
	if name == "" {
		*c = d
		return nil
	}
	k, err := lookup(name)
	if err != nil {
		return err
	}
	return k.set(c, k.get(&d))
}

// Values returns every setting as name/value pairs in file order.
func (c *Config) Values() [][2]string {
	out := make([][2]string, len(keys))
	for i, k := range keys {
		out[i] = [2]string{k.name, k.get(c)}
	}
	return out
}

func stringKey(name, help string, field func(*Config) *string) key {
	return key{
		name: name,
		help: help,
		get:  func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func boolKey(name, help string, field func(*Config) *bool) key {
	return key{
		name: name,
		help: help,
		get:  func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
	}
}

func intKey(name, help string, field func(*Config) *int) key {
	return key{
		name: name,
		help: help,
		get:  func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
	}
}

func int64Key(name, help string, field func(*Config) *int64) key {
	return key{
		name: name,
		help: help,
		get:  func(c *Config) string { return strconv.FormatInt(*field(c), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
	}
}

func durationKey(name, help string, field func(*Config) *time.Duration) key {
	return key{
		name: name,
		help: help,
		get:  func(c *Config) string { return field(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			*field(c) = d
			return nil
		},
	}
}

// parseBool accepts the usual spellings plus yes/no and on/off.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(v)
}
