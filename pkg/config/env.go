package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// EnvPrefix starts every environment variable psg reads.
const EnvPrefix = "PSG_"

// EnvName returns the variable that overrides a key, e.g.
// "print.layout" -> PSG_PRINT_LAYOUT.
func EnvName(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))
}

// ApplyEnv overlays PSG_* variables onto c. Variables from the given dotenv
// files are used when the process environment does not set them; missing
// files are skipped.
func (c *Config) ApplyEnv(dotenv ...string) error {
	file, err := readDotenv(dotenv)
	if err != nil {
		return err
	}
	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		v, ok := file[name]
		return v, ok
	}
	for _, k := range keys {
		v, ok := lookup(EnvName(k.name))
		if !ok {
			continue
		}
		if err := c.Set(k.name, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvName(k.name))
		}
	}
	return nil
}

func readDotenv(paths []string) (map[string]string, error) {
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return nil, nil
	}
	m, err := godotenv.Read(present...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", strings.Join(present, ", "))
	}
	return m, nil
}

// ApplyFlags copies explicitly set flags onto c. bindings maps a flag name
// to the config key it overrides; flags left at their default never win.
func (c *Config) ApplyFlags(fs *pflag.FlagSet, bindings map[string]string) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		name, ok := bindings[f.Name]
		if !ok || err != nil {
			return
		}
		if e := c.Set(name, f.Value.String()); e != nil {
			err = errors.Wrap(errors.ErrCodeInvalidConfig, e, "--%s", f.Name)
		}
	})
	return err
}

// Resolve loads the file at path and applies the environment and flags.
func Resolve(path string, fs *pflag.FlagSet, bindings map[string]string, dotenv ...string) (Config, error) {
	c, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := c.ApplyEnv(dotenv...); err != nil {
		return Config{}, err
	}
	if fs != nil {
		if err := c.ApplyFlags(fs, bindings); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}
