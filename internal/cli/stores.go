package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

// filterCommand creates the "filter" command.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		from, name string
		crit       puzzledb.Criteria
	)
	cmd := &cobra.Command{
		Use:   "filter --name <name>",
		Short: "Derive a store by filtering another one",
		Long: `Filter a store by rating, solution length, themes and openings. The
result is saved as a new store whose parent is the filtered one. Ratings are
clamped to the range Lichess uses.`,
		Example: `  psg filter --name "forks 1500" --min-rating 1400 --max-rating 1600 --any-theme fork
  psg filter --from p1 --name "short endgames" --all-themes endgame,short`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New(errors.ErrCodeInvalidInput, "a store needs a name: pass --name")
			}
			norm, err := crit.Normalize()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			stores, err := ws.storeRepo(ctx)
			if err != nil {
				return err
			}
			if err := stores.CheckName(name, ""); err != nil {
				return err
			}
			fromID, src, err := ws.store(ctx, from)
			if err != nil {
				return err
			}
			st := norm.Apply(src)
			st.Name = name
			id, err := ws.addStore(ctx, st, fromID)
			if err != nil {
				return err
			}
			printStoreCreated(id, st)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", sheet.MainStoreID, "store to filter")
	f.StringVar(&name, "name", "", "name of the new store")
	f.IntVar(&crit.MinRating, "min-rating", 0, "lowest puzzle rating")
	f.IntVar(&crit.MaxRating, "max-rating", 0, "highest puzzle rating")
	f.IntVar(&crit.MinMoves, "min-moves", 0, "fewest moves the solver plays")
	f.IntVar(&crit.MaxMoves, "max-moves", 0, "most moves the solver plays")
	f.StringSliceVar(&crit.AnyThemes, "any-theme", nil, "keep puzzles with at least one of these themes")
	f.StringSliceVar(&crit.AllThemes, "all-themes", nil, "keep puzzles with every one of these themes")
	f.StringSliceVar(&crit.NoThemes, "no-theme", nil, "drop puzzles with any of these themes")
	f.StringSliceVar(&crit.AnyOpening, "any-opening", nil, "keep puzzles from at least one of these openings")
	f.StringSliceVar(&crit.AllOpening, "all-openings", nil, "keep puzzles tagged with every one of these openings")
	return cmd
}

func printStoreCreated(id string, st *puzzledb.Store) {
	printSuccess("Created store %s %s", StyleHighlight.Render(id), st.Name)
	stats := st.Stats()
	printKeyValue("puzzles", strconv.Itoa(stats.Count))
	if stats.Count > 0 {
		printKeyValue("ratings", strconv.Itoa(stats.MinRating)+" - "+strconv.Itoa(stats.MaxRating))
	}
	printKeyValue("themes", strings.Join(st.DisplayThemes(), ", "))
	if stats.Count == 0 {
		printWarning("the store is empty, loosen the filters to sample from it")
	}
}

// sampleCommand creates the "sample" command.
func (c *CLI) sampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <store> <n> <sheet>",
		Short: "Put n random puzzles from a store on a sheet",
		Long: `Draw n distinct puzzles from a store and add them to a sheet. A sheet that
does not exist yet is created with that name. Set "seed" in the config for
reproducible draws.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "%q is not a positive number of puzzles", args[1])
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			_, st, err := ws.store(ctx, args[0])
			if err != nil {
				return err
			}

			var (
				id      string
				s       *sheet.Sheet
				created bool
			)
			if ref, ok := ws.sheets.Resolve(args[2]); ok {
				id, s, _ = ws.sheet(ref)
			} else {
				s, created = sheet.New(args[2]), true
			}
			if n > s.Free() {
				return errors.New(errors.ErrCodeSheetFull,
					"%s has room for %d more element(s), cannot add %d", s.Name, s.Free(), n)
			}

			picks, err := st.Sample(n, ws.rng)
			if err != nil {
				return err
			}
			elems := make([]sheet.Element, 0, n)
			for _, p := range picks {
				e, err := sheet.FromPuzzle(p)
				if err != nil {
					return err
				}
				elems = append(elems, e)
			}
			if err := s.Add(elems...); err != nil {
				return err
			}
			if created {
				if id, err = ws.addSheet(s); err != nil {
					return err
				}
			} else if err := ws.touch(id); err != nil {
				return err
			}
			printSuccess("Added %d puzzle(s) from %s to %s %s", n, st.Name, StyleHighlight.Render(id), s.Name)
			return nil
		},
	}
}

// unionCommand creates the "union" command.
func (c *CLI) unionCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "union <store> <store> --name <name>",
		Short: "Combine two stores into a new one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New(errors.ErrCodeInvalidInput, "a store needs a name: pass --name")
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			aID, a, err := ws.store(ctx, args[0])
			if err != nil {
				return err
			}
			bID, b, err := ws.store(ctx, args[1])
			if err != nil {
				return err
			}
			u := puzzledb.Union(name, a, b)
			id, err := ws.addStore(ctx, u, aID, bID)
			if err != nil {
				return err
			}
			printStoreCreated(id, u)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name of the new store")
	return cmd
}

// mateCommand creates the "mate" command.
func (c *CLI) mateCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "mate <n>",
		Short: "Create a store of mate-in-n puzzles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "%q is not a positive number of moves", args[0])
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			db, err := ws.database(ctx)
			if err != nil {
				return err
			}
			st := db.FindMate(n)
			if name != "" {
				st.Name = name
			}
			id, err := ws.addStore(ctx, st, sheet.MainStoreID)
			if err != nil {
				return err
			}
			printStoreCreated(id, st)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", `store name (default "mate in <n>")`)
	return cmd
}

// themesCommand creates the "themes" command.
func (c *CLI) themesCommand() *cobra.Command {
	var opening, name string
	cmd := &cobra.Command{
		Use:   "themes [theme...]",
		Short: "List puzzle themes or create a store of puzzles with given themes",
		Long: `Without arguments, list every theme grouped the way Lichess groups them.
With themes, create a store of non-mate puzzles carrying all of them,
optionally from one opening.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if opening != "" {
					return errors.New(errors.ErrCodeInvalidInput, "--opening needs at least one theme")
				}
				rows := make([][]string, 0, len(puzzledb.ThemeGroups))
				for _, g := range puzzledb.ThemeGroups {
					rows = append(rows, []string{g.Name, strings.Join(g.Themes, ", ")})
				}
				printTable([]string{"GROUP", "THEMES"}, rows)
				return nil
			}

			themes, unknown := puzzledb.CanonicalAll(args)
			if len(unknown) > 0 {
				return errors.New(errors.ErrCodeInvalidInput, "unknown theme %q: run `psg themes` for the list", unknown[0])
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			db, err := ws.database(ctx)
			if err != nil {
				return err
			}
			st := db.FindThemes(themes, opening)
			if name != "" {
				st.Name = name
			}
			id, err := ws.addStore(ctx, st, sheet.MainStoreID)
			if err != nil {
				return err
			}
			printStoreCreated(id, st)
			return nil
		},
	}
	cmd.Flags().StringVar(&opening, "opening", "", "restrict to an opening tag, e.g. Sicilian_Defense")
	cmd.Flags().StringVar(&name, "name", "", "store name (default from the themes)")
	return cmd
}
