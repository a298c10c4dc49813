package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/buildinfo"
	"github.com/matzehuels/puzzlesheet/pkg/cache"
	"github.com/matzehuels/puzzlesheet/pkg/config"
	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "puzzlesheet"

	// dotenvFile is read from the working directory for PSG_* variables.
	dotenvFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// flagBindings maps global flags to the config keys they override.
var flagBindings = map[string]string{
	"data-dir": "data_dir",
	"db":       "puzzle_db",
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands. One CLI serves a single command
// invocation or a whole interactive shell session.
type CLI struct {
	Logger *log.Logger

	stderr  io.Writer
	logFile io.Closer

	// global flags
	configPath string
	dataDir    string
	db         string
	verbose    bool
	noCache    bool

	ready   bool
	cfg     config.Config
	cfgFrom string
	ws      *workspace
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close flushes unsaved state and releases the log file.
func (c *CLI) Close() error {
	var err error
	if c.ws != nil {
		err = c.ws.close()
	}
	if c.logFile != nil {
		if cerr := c.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "psg",
		Short: "psg builds printable chess puzzle sheets",
		Long: `psg filters the Lichess puzzle database into stores, collects puzzles and
positions on sheets of up to twelve diagrams and prints each sheet as an A4 PDF.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/puzzlesheet/config.toml)")
	pf.StringVar(&c.dataDir, "data-dir", "", "directory sheets and stores are saved in")
	pf.StringVar(&c.db, "db", "", "puzzle database: path, http(s):// URL or s3://bucket/key")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.noCache, "no-cache", false, "do not use the database snapshot cache")

	root.AddGroup(
		&cobra.Group{ID: groupSheets, Title: "Sheets:"},
		&cobra.Group{ID: groupStores, Title: "Stores:"},
		&cobra.Group{ID: groupOutput, Title: "Output:"},
	)

	for _, cmd := range []*cobra.Command{
		c.newCommand(), c.addToCommand(), c.copyCommand(), c.removeCommand(),
		c.reorderCommand(), c.nameCommand(), c.headerCommand(), c.saveCommand(),
		c.loadCommand(), c.deleteCommand(),
	} {
		cmd.GroupID = groupSheets
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.filterCommand(), c.sampleCommand(), c.unionCommand(), c.mateCommand(), c.themesCommand(),
	} {
		cmd.GroupID = groupStores
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		c.listCommand(), c.showCommand(), c.printCommand(), c.diagramCommand(),
		c.lineageCommand(), c.browseCommand(),
	} {
		cmd.GroupID = groupOutput
		root.AddCommand(cmd)
	}

	root.AddCommand(c.shellCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.dbCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())

	return root
}

const (
	groupSheets = "sheets"
	groupStores = "stores"
	groupOutput = "output"
)

// setup resolves the configuration and logger once per CLI. Commands
// under "config" still run when the config file is broken, so that it can
// be repaired.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.ready {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Resolve(path, cmd.Flags(), flagBindings, dotenvFile)
	if err != nil {
		if !isConfigCommand(cmd) {
			return err
		}
		printWarning("%s", errors.UserMessage(err))
		cfg = config.Default()
	}
	c.cfg, c.cfgFrom = cfg, path

	level := cfg.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	w, closer := logWriter(c.stderr, cfg.Log)
	c.Logger = newLogger(w, level)
	c.logFile = closer
	registerHooks(c.Logger)

	c.ready = true
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if cmd.Name() == "config" {
			return true
		}
	}
	return false
}

// workspace opens the data directory on first use.
func (c *CLI) workspace(ctx context.Context) (*workspace, error) {
	if c.ws != nil {
		return c.ws, nil
	}
	cch, err := newCache(c.noCache)
	if err != nil {
		return nil, err
	}
	ws, err := openWorkspace(c.cfg, cch, loggerFromContext(ctx))
	if err != nil {
		return nil, err
	}
	c.ws = ws
	return ws, nil
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/puzzlesheet/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
