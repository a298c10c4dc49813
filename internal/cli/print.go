package cli

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/render/diagram"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/layout"
	"github.com/matzehuels/puzzlesheet/pkg/render/sheet/sink"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
	"github.com/matzehuels/puzzlesheet/pkg/storage"
)

// watchDebounce collapses the burst of events an atomic save produces.
const watchDebounce = 200 * time.Millisecond

type printOptions struct {
	output       string
	layout       string
	leftHeader   string
	rightHeader  string
	footer       string
	headerSize   float64
	uncompressed bool
	stampTime    bool
	watch        bool
	verify       bool
}

// printCommand creates the "print" command.
func (c *CLI) printCommand() *cobra.Command {
	var opts printOptions
	cmd := &cobra.Command{
		Use:   "print <sheet>",
		Short: "Print a sheet as a one-page A4 PDF",
		Long: `Render every element of a sheet as a board diagram and lay them out on an A4
page: up to six in a 2x3 grid, otherwise twelve in a 3x4 grid. Header and
footer flags override the sheet's texts for this print only.

With --watch the PDF is printed again whenever the saved sheet changes.`,
		Example: `  psg print s1
  psg print "mate in 2" -o mates.pdf --layout 12 --right-header "Week 3"
  psg print s1 --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("layout") {
				opts.layout = c.cfg.Print.Layout
			}
			variant, err := layout.ParseVariant(opts.layout)
			if err != nil {
				return err
			}
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			dopts, err := ws.diagramOptions()
			if err != nil {
				return err
			}
			f := cmd.Flags()
			popts := sheet.PageOptions{
				Layout:      variant,
				LeftHeader:  changed(f.Changed("left-header"), opts.leftHeader),
				RightHeader: changed(f.Changed("right-header"), opts.rightHeader),
				Footer:      changed(f.Changed("footer"), opts.footer),
				Diagram:     dopts,

				HeaderFontSize: opts.headerSize,
			}
			if opts.uncompressed {
				popts.PDF = append(popts.PDF, sink.WithCompression(false))
			}
			if opts.stampTime {
				popts.PDF = append(popts.PDF, sink.WithCreationTime(time.Now()))
			}
			out := opts.output
			if out == "" {
				dir := ws.cfg.Print.OutputDir
				if dir == "" {
					dir = "."
				}
				out = filepath.Join(dir, slug(s.Name)+".pdf")
			}

			if err := printSheet(ctx, s, out, popts, opts.verify); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return watchSheet(ctx, ws, id, out, popts, opts.verify)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default <print.output_dir>/<sheet name>.pdf)")
	f.StringVarP(&opts.layout, "layout", "l", "", "grid: auto, 6 or 12 (default from config)")
	f.StringVar(&opts.leftHeader, "left-header", "", "left header for this print")
	f.StringVar(&opts.rightHeader, "right-header", "", "right header for this print")
	f.StringVar(&opts.footer, "footer", "", "footer for this print")
	f.Float64Var(&opts.headerSize, "header-size", 0, "header font size in points (default 18)")
	f.BoolVar(&opts.uncompressed, "uncompressed", false, "write uncompressed page streams")
	f.BoolVar(&opts.stampTime, "stamp-time", false, "record the current time as creation date instead of a fixed one")
	f.BoolVarP(&opts.watch, "watch", "w", false, "print again when the sheet changes")
	f.BoolVar(&opts.verify, "verify", false, "validate the written PDF")
	return cmd
}

func printSheet(ctx context.Context, s *sheet.Sheet, out string, opts sheet.PageOptions, verify bool) error {
	if s.Len() == 0 {
		printWarning("%s has no elements, the page will only carry its texts", s.Name)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeOutputWrite, err, "create %s", dir)
		}
	}
	plan, err := s.Print(ctx, out, opts)
	if err != nil {
		return err
	}
	if verify {
		if err := api.ValidateFile(out, nil); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "%s is not a valid PDF", out)
		}
	}
	printSuccess("Printed %s on the %s-cell layout", s.Name, plan.Variant)
	printFile(out)
	if plan.Dropped > 0 {
		printWarning("%d element(s) did not fit and were left out", plan.Dropped)
	}
	return nil
}

// watchSheet prints the sheet again each time its saved file changes,
// until ctx is cancelled.
func watchSheet(ctx context.Context, ws *workspace, id, out string, opts sheet.PageOptions, verify bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	defer watcher.Close()

	file := ws.dir.SheetFile(id)
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(file))
	}
	printInfo("Watching %s, press Ctrl+C to stop", file)

	logger := loggerFromContext(ctx)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(file) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)

		case <-timer.C:
			s, err := reloadSheet(ctx, ws, id)
			if err != nil {
				printError("%s", errors.UserMessage(err))
				continue
			}
			if err := printSheet(ctx, s, out, opts, verify); err != nil {
				printError("%s", errors.UserMessage(err))
			}
		}
	}
}

// reloadSheet reads the saved copy of a sheet and replaces the one in
// memory.
func reloadSheet(ctx context.Context, ws *workspace, id string) (*sheet.Sheet, error) {
	finder, err := ws.finder(ctx)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(ws.dir.SheetFile(id))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "sheet %s was deleted", id)
	}
	defer f.Close()
	s, skipped, err := storage.ReadSheet(f, finder)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		ws.logger.Warn("elements could not be restored", "sheet", id, "dropped", skipped)
	}
	if err := ws.sheets.Put(id, s); err != nil {
		return nil, err
	}
	return s, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slug turns a sheet name into a file name.
func slug(name string) string {
	s := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return "sheet"
	}
	return s
}

// diagramCommand creates the "diagram" command.
func (c *CLI) diagramCommand() *cobra.Command {
	var (
		output    string
		size      int
		noCoords  bool
		whiteSide bool
		blackSide bool
	)
	cmd := &cobra.Command{
		Use:   "diagram <puzzle-id|fen>",
		Short: "Render a single board diagram as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if whiteSide && blackSide {
				return errors.New(errors.ErrCodeInvalidInput, "--white and --black are exclusive")
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			e, err := resolveElement(ctx, ws, args[0])
			if err != nil {
				return err
			}
			opts, err := ws.diagramOptions()
			if err != nil {
				return err
			}
			opts = append(opts, diagram.WithSize(size))
			if noCoords {
				opts = append(opts, diagram.WithoutCoordinates())
			}
			switch {
			case whiteSide:
				opts = append(opts, diagram.WithOrientation(diagram.WhiteBottom))
			case blackSide:
				opts = append(opts, diagram.WithOrientation(diagram.BlackBottom))
			}
			svg, err := diagram.Board(e.FEN, opts...)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := stdout.Write(svg)
				return err
			}
			if err := fsutil.WriteFile(output, svg, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", output)
			}
			printSuccess("Rendered %s", e.Label())
			printFile(output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	f.IntVar(&size, "size", diagram.DefaultSize, "board size in SVG units")
	f.BoolVar(&noCoords, "no-coordinates", false, "leave out file and rank labels")
	f.BoolVar(&whiteSide, "white", false, "draw white at the bottom")
	f.BoolVar(&blackSide, "black", false, "draw black at the bottom")
	return cmd
}
