package cli

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/config"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

// dbCommand creates the puzzle database command.
func (c *CLI) dbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Download and inspect the puzzle database",
	}
	cmd.AddCommand(c.dbFetchCommand())
	cmd.AddCommand(c.dbInfoCommand())
	return cmd
}

func (c *CLI) dbFetchCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "fetch [source]",
		Short: "Download the puzzle database",
		Long: `Download the puzzle database into the data directory. The source is an
http(s):// URL or s3://bucket/key and defaults to the configured puzzle_db,
or the official Lichess dump. When no database is configured yet, the source
is written to the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := remoteSource(c.cfg.PuzzleDB)
			if len(args) == 1 {
				source = args[0]
			}
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(ctx, "Downloading "+source+"...")
			spin.Start()
			path, err := puzzledb.Fetch(ctx, source, ws.dir.DBPath(), puzzledb.WithForce(force))
			if err != nil {
				spin.StopWithError("Download failed")
				return err
			}
			spin.StopWithSuccess("Downloaded puzzle database")
			printFile(path)

			if c.cfg.PuzzleDB == "" {
				cfg, err := config.Load(c.cfgFrom)
				if err != nil {
					return err
				}
				if err := cfg.Set("puzzle_db", source); err != nil {
					return err
				}
				if err := cfg.Save(c.cfgFrom); err != nil {
					return err
				}
				c.cfg.PuzzleDB, ws.cfg.PuzzleDB = source, source
				printDetail("puzzle_db set to %s", source)
			}

			if ws.db != nil {
				db, err := puzzledb.OpenCached(ctx, ws.cache, path, ws.cfg.Database.Thresholds(), ws.cfg.Database.CacheTTL.Duration)
				if err != nil {
					return err
				}
				sheet.ResetMain(ws.stores, db.Store())
				ws.db = db
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "download again even if a copy exists")
	return cmd
}

// remoteSource returns configured if it is a URL and the Lichess dump
// otherwise.
func remoteSource(configured string) string {
	if u, err := url.Parse(configured); err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "s3") {
		return configured
	}
	return puzzledb.DefaultSource
}

func (c *CLI) dbInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show what the puzzle database holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			db, err := ws.database(ctx)
			if err != nil {
				return err
			}
			stats := db.Store().Stats()
			printKeyValue("source", db.Source)
			if info, err := os.Stat(db.Source); err == nil {
				printKeyValue("file size", fmt.Sprintf("%.1f MB", float64(info.Size())/(1<<20)))
				printKeyValue("modified", info.ModTime().Format(time.DateTime))
			}
			printKeyValue("puzzles", strconv.Itoa(stats.Count))
			printKeyValue("ratings", fmt.Sprintf("%d - %d (median %.0f)", stats.MinRating, stats.MaxRating, stats.MedianRating))
			printKeyValue("thresholds", fmt.Sprintf("rating deviation <= %d, popularity >= %d",
				db.Thresholds.MaxRatingDeviation, db.Thresholds.MinPopularity))

			printNewline()
			rows := make([][]string, 0, 5)
			for n := 1; n <= 5; n++ {
				rows = append(rows, []string{fmt.Sprintf("mate in %d", n), strconv.Itoa(db.FindMate(n).Len())})
			}
			printTable([]string{"STORE", "PUZZLES"}, rows)
			return nil
		},
	}
}
