package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/position"
	"github.com/matzehuels/puzzlesheet/pkg/puzzledb"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

// Output formats for show and version.
const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

// detailLimit caps the puzzles listed by show --details.
const detailLimit = 25

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "list [sheets|stores|all]",
		Short:     "List sheets, stores or both",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"sheets", "stores", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			what := "sheets"
			if len(args) == 1 {
				what = args[0]
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			if what != "stores" {
				listSheets(ws)
			}
			if what == "all" {
				printNewline()
			}
			if what != "sheets" {
				stores, err := ws.storeRepo(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, stores.Len())
				for _, e := range stores.All() {
					rows = append(rows, []string{
						e.ID, e.Item.Name, strconv.Itoa(e.Item.Len()),
						strings.Join(e.Item.DisplayThemes(), ", "),
						strings.Join(e.Item.Parents, ", "),
					})
				}
				printTable([]string{"ID", "STORE", "PUZZLES", "THEMES", "PARENTS"}, rows)
			}
			return nil
		},
	}
}

func listSheets(ws *workspace) {
	if ws.sheets.Len() == 0 {
		printInfo("No sheets yet")
		printNextStep("Create one", "psg new <name>")
		return
	}
	rows := make([][]string, 0, ws.sheets.Len())
	for _, e := range ws.sheets.All() {
		s := e.Item
		mark := ""
		if ws.dirty[e.ID] {
			mark = "*"
		}
		rows = append(rows, []string{
			e.ID + mark, s.Name, fmt.Sprintf("%d/%d", s.Len(), sheet.MaxElements), s.LeftHeader, s.RightHeader,
		})
	}
	printTable([]string{"ID", "SHEET", "ELEMENTS", "LEFT HEADER", "RIGHT HEADER"}, rows)
}

// sheetView is the serialized form of a sheet for show.
type sheetView struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	LeftHeader  string        `json:"left_header,omitempty" yaml:"left_header,omitempty"`
	RightHeader string        `json:"right_header,omitempty" yaml:"right_header,omitempty"`
	Footer      string        `json:"footer,omitempty" yaml:"footer,omitempty"`
	Elements    []elementView `json:"elements" yaml:"elements"`
}

type elementView struct {
	PuzzleID string `json:"puzzle_id,omitempty" yaml:"puzzle_id,omitempty"`
	FEN      string `json:"fen" yaml:"fen"`
	ToMove   string `json:"to_move" yaml:"to_move"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

// storeView is the serialized form of a store for show.
type storeView struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Puzzles      int          `json:"puzzles" yaml:"puzzles"`
	MinRating    int          `json:"min_rating" yaml:"min_rating"`
	MaxRating    int          `json:"max_rating" yaml:"max_rating"`
	MedianRating float64      `json:"median_rating" yaml:"median_rating"`
	Themes       []string     `json:"themes" yaml:"themes"`
	Openings     []string     `json:"openings" yaml:"openings"`
	Parents      []string     `json:"parents,omitempty" yaml:"parents,omitempty"`
	Sample       []puzzleView `json:"sample,omitempty" yaml:"sample,omitempty"`
}

type puzzleView struct {
	ID     string   `json:"id" yaml:"id"`
	Rating int      `json:"rating" yaml:"rating"`
	Moves  int      `json:"moves" yaml:"moves"`
	Themes []string `json:"themes" yaml:"themes"`
}

func newSheetView(id string, s *sheet.Sheet) sheetView {
	v := sheetView{
		ID: id, Name: s.Name,
		LeftHeader: s.LeftHeader, RightHeader: s.RightHeader, Footer: s.Footer,
		Elements: make([]elementView, 0, s.Len()),
	}
	for _, e := range s.Elements {
		ev := elementView{PuzzleID: e.PuzzleID, FEN: e.FEN, ToMove: "white"}
		if black, err := position.SecondToMove(e.FEN); err == nil && black {
			ev.ToMove = "black"
		}
		if e.PuzzleID != "" {
			ev.URL = (&puzzledb.Puzzle{ID: e.PuzzleID}).Lichess()
		}
		v.Elements = append(v.Elements, ev)
	}
	return v
}

func newStoreView(id string, st *puzzledb.Store, details bool) storeView {
	stats := st.Stats()
	v := storeView{
		ID: id, Name: st.Name, Puzzles: stats.Count,
		MinRating: stats.MinRating, MaxRating: stats.MaxRating, MedianRating: stats.MedianRating,
		Themes: st.DisplayThemes(), Openings: st.OpeningTags, Parents: st.Parents,
	}
	if details {
		for i, p := range st.Puzzles() {
			if i == detailLimit {
				break
			}
			v.Sample = append(v.Sample, puzzleView{ID: p.ID, Rating: p.Rating, Moves: p.PlayerMoves(), Themes: p.Themes})
		}
	}
	return v
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		format  string
		details bool
	)
	cmd := &cobra.Command{
		Use:   "show <sheet|store>",
		Short: "Show the contents of a sheet or a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatYAML && format != formatJSON {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q: use table, yaml or json", format)
			}
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			if id, ok := ws.sheets.Resolve(args[0]); ok {
				_, s, _ := ws.sheet(id)
				v := newSheetView(id, s)
				if format != formatTable {
					return encode(stdout, format, v)
				}
				showSheet(v)
				return nil
			}
			id, st, err := ws.store(ctx, args[0])
			if err != nil {
				return err
			}
			v := newStoreView(id, st, details || format != formatTable)
			if format != formatTable {
				return encode(stdout, format, v)
			}
			showStore(v, details)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, yaml or json")
	cmd.Flags().BoolVar(&details, "details", false, "list puzzles of a store")
	return cmd
}

func encode(w io.Writer, format string, v any) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func showSheet(v sheetView) {
	printInfo("%s %s", StyleHighlight.Render(v.ID), v.Name)
	printKeyValue("left header", v.LeftHeader)
	printKeyValue("right header", v.RightHeader)
	printKeyValue("footer", v.Footer)
	printKeyValue("elements", fmt.Sprintf("%d/%d", len(v.Elements), sheet.MaxElements))
	if len(v.Elements) == 0 {
		return
	}
	printNewline()
	rows := make([][]string, 0, len(v.Elements))
	for i, e := range v.Elements {
		id := e.PuzzleID
		if id == "" {
			id = "-"
		}
		rows = append(rows, []string{strconv.Itoa(i), sideIcon(e.ToMove == "black"), id, e.FEN})
	}
	printTable([]string{"#", "", "PUZZLE", "FEN"}, rows)
}

func showStore(v storeView, details bool) {
	printInfo("%s %s", StyleHighlight.Render(v.ID), v.Name)
	printKeyValue("puzzles", strconv.Itoa(v.Puzzles))
	if v.Puzzles > 0 {
		printKeyValue("ratings", fmt.Sprintf("%d - %d (median %.0f)", v.MinRating, v.MaxRating, v.MedianRating))
	}
	printKeyValue("themes", strings.Join(v.Themes, ", "))
	printKeyValue("openings", strings.Join(v.Openings, ", "))
	if len(v.Parents) > 0 {
		printKeyValue("parents", strings.Join(v.Parents, ", "))
	}
	if !details || len(v.Sample) == 0 {
		return
	}
	printNewline()
	rows := make([][]string, 0, len(v.Sample))
	for _, p := range v.Sample {
		rows = append(rows, []string{p.ID, strconv.Itoa(p.Rating), strconv.Itoa(p.Moves), strings.Join(p.Themes, " ")})
	}
	printTable([]string{"PUZZLE", "RATING", "MOVES", "THEMES"}, rows)
	if v.Puzzles > len(v.Sample) {
		printDetail("... and %d more", v.Puzzles-len(v.Sample))
	}
}
