package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	c, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if c.DataDir != filepath.Join("/data", "puzzlesheet") {
		t.Errorf("DataDir = %q", c.DataDir)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "config.toml", `
autosave = false
puzzle_db = "s3://bucket/puzzles.csv.zst"
seed = 7

[print]
layout = "12"

[database]
min_popularity = 50
cache_ttl = "2h"

[log]
level = "debug"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Autosave {
		t.Error("Autosave = true, want false")
	}
	if c.PuzzleDB != "s3://bucket/puzzles.csv.zst" || c.Seed != 7 {
		t.Errorf("PuzzleDB, Seed = %q, %d", c.PuzzleDB, c.Seed)
	}
	if c.Print.Layout != "12" || c.Layout().String() != "12" {
		t.Errorf("Print.Layout = %q", c.Print.Layout)
	}
	if c.Database.MinPopularity != 50 || c.Database.MaxRatingDeviation != 80 {
		t.Errorf("Database = %+v", c.Database)
	}
	if c.Database.CacheTTL.Duration != 2*time.Hour {
		t.Errorf("CacheTTL = %v, want 2h", c.Database.CacheTTL)
	}
	if c.LogLevel().String() != "debug" {
		t.Errorf("LogLevel() = %v, want debug", c.LogLevel())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour = \"red\"\n"},
		{"bad layout", "[print]\nlayout = \"9\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad duration", "[database]\ncache_ttl = \"soon\"\n"},
		{"syntax", "autosave = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.toml", tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c := Default()
	c.PuzzleDB = "/tmp/puzzles.csv"
	c.Database.CacheTTL = Duration{90 * time.Minute}
	c.Print.Layout = "6"

	if err := c.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
		wantErr          bool
	}{
		{key: "autosave", value: "off", want: "false"},
		{key: "autosave", value: "YES", want: "true"},
		{key: "Print.Layout", value: "twelve", want: "twelve"},
		{key: "print.layout", value: "9", wantErr: true},
		{key: "seed", value: "-3", want: "-3"},
		{key: "seed", value: "x", wantErr: true},
		{key: "database.cache_ttl", value: "36h", want: "36h0m0s"},
		{key: "database.max_rating_deviation", value: "-1", wantErr: true},
		{key: "log.level", value: "warn", want: "warn"},
		{key: "nope", value: "1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			c := Default()
			before := c
			err := c.Set(tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("Set() error = %v, want INVALID_CONFIG", err)
				}
				if diff := cmp.Diff(before, c); diff != "" {
					t.Errorf("failed Set() changed config:\n%s", diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := c.Get(tt.key)
			if err != nil || got != tt.want {
				t.Errorf("Get() = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	c := Default()
	_ = c.Set("log.level", "error")
	_ = c.Set("seed", "9")

	if err := c.Reset("log.level"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if c.Log.Level != "info" || c.Seed != 9 {
		t.Errorf("after Reset(log.level): level %q seed %d", c.Log.Level, c.Seed)
	}
	if err := c.Reset(""); err != nil {
		t.Fatalf("Reset(\"\") error = %v", err)
	}
	if c.Seed != 0 {
		t.Errorf("Seed = %d after full reset", c.Seed)
	}
	if err := c.Reset("bogus"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Reset(bogus) error = %v", err)
	}
}

func TestKeysCoverValues(t *testing.T) {
	c := Default()
	vals := c.Values()
	ks := Keys()
	if len(vals) != len(ks) {
		t.Fatalf("Values() has %d entries, Keys() %d", len(vals), len(ks))
	}
	for i, k := range ks {
		if vals[i][0] != k.Name || k.Help == "" {
			t.Errorf("key %d = %+v, value name %q", i, k, vals[i][0])
		}
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("print.output_dir"); got != "PSG_PRINT_OUTPUT_DIR" {
		t.Errorf("EnvName() = %q, want PSG_PRINT_OUTPUT_DIR", got)
	}
}

func TestApplyEnvPrecedence(t *testing.T) {
	dotenv := writeFile(t, ".env", "PSG_SEED=11\nPSG_LOG_LEVEL=debug\n")
	t.Setenv("PSG_LOG_LEVEL", "error")

	c := Default()
	if err := c.ApplyEnv(dotenv, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if c.Seed != 11 {
		t.Errorf("Seed = %d, want 11 from .env", c.Seed)
	}
	if c.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want process env to beat .env", c.Log.Level)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("PSG_AUTOSAVE", "maybe")
	c := Default()
	err := c.ApplyEnv()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), "PSG_AUTOSAVE") {
		t.Errorf("ApplyEnv() error = %v", err)
	}
}

func TestResolveFlagsWin(t *testing.T) {
	path := writeFile(t, "config.toml", "[print]\nlayout = \"6\"\noutput_dir = \"/out\"\n")
	t.Setenv("PSG_PRINT_LAYOUT", "auto")

	fs := pflag.NewFlagSet("print", pflag.ContinueOnError)
	fs.String("layout", "auto", "")
	fs.String("data-dir", "", "")
	if err := fs.Parse([]string{"--layout", "12"}); err != nil {
		t.Fatal(err)
	}
	bindings := map[string]string{"layout": "print.layout", "data-dir": "data_dir"}

	c, err := Resolve(path, fs, bindings)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if c.Print.Layout != "12" {
		t.Errorf("Print.Layout = %q, want flag value 12", c.Print.Layout)
	}
	if c.Print.OutputDir != "/out" {
		t.Errorf("Print.OutputDir = %q, want file value", c.Print.OutputDir)
	}
	if c.DataDir == "" {
		t.Error("unset flag cleared data_dir")
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "/etc/psg.toml")
	if p, err := Path(); err != nil || p != "/etc/psg.toml" {
		t.Errorf("Path() = %q, %v", p, err)
	}
}
