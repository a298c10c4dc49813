package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
	"github.com/matzehuels/puzzlesheet/pkg/storage"
)

// newCommand creates the "new" command.
func (c *CLI) newCommand() *cobra.Command {
	var left, right, footer string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty puzzle sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			s := sheet.New(args[0])
			s.LeftHeader, s.RightHeader, s.Footer = left, right, footer
			id, err := ws.addSheet(s)
			if err != nil {
				return err
			}
			printSuccess("Created sheet %s %s", StyleHighlight.Render(id), s.Name)
			printNextStep("Add puzzles", "psg add-to "+id+" <puzzle-id|fen>")
			return nil
		},
	}
	cmd.Flags().StringVar(&left, "left-header", "", "text printed top left")
	cmd.Flags().StringVar(&right, "right-header", "", "text printed top right")
	cmd.Flags().StringVar(&footer, "footer", "", "text printed below the diagrams")
	return cmd
}

// addToCommand creates the "add-to" command.
func (c *CLI) addToCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-to <sheet> <puzzle-id|fen>...",
		Short: "Add puzzles or positions to a sheet",
		Long: `Add elements to a sheet. A reference of five or six letters and digits is a
Lichess puzzle id and is looked up in the puzzle database; anything else is
read as a FEN. Either every element is added or none is.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			elems := make([]sheet.Element, 0, len(args)-1)
			for _, ref := range args[1:] {
				e, err := resolveElement(ctx, ws, ref)
				if err != nil {
					return err
				}
				elems = append(elems, e)
			}
			if err := s.Add(elems...); err != nil {
				return err
			}
			printSuccess("Added %d element(s) to %s (%d/%d)", len(elems), s.Name, s.Len(), sheet.MaxElements)
			return ws.touch(id)
		},
	}
}

// resolveElement turns a command line reference into a sheet element.
func resolveElement(ctx context.Context, ws *workspace, ref string) (sheet.Element, error) {
	if !sheet.IsPuzzleID(ref) {
		e, err := sheet.FromFEN(ref)
		if err != nil {
			return e, errors.Wrap(errors.ErrCodeInvalidInput, err, "%q is neither a Lichess puzzle id nor a FEN", ref)
		}
		return e, nil
	}
	db, err := ws.database(ctx)
	if err != nil {
		return sheet.Element{}, err
	}
	p, ok := db.PuzzleByID(ref)
	if !ok {
		return sheet.Element{}, errors.New(errors.ErrCodeNotFound, "there is no puzzle with id %q", ref)
	}
	return sheet.FromPuzzle(p)
}

// copyCommand creates the "copy" command.
func (c *CLI) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <sheet> <new-name>",
		Short: "Copy a sheet under a new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			_, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			id, err := ws.addSheet(s.Clone(args[1]))
			if err != nil {
				return err
			}
			printSuccess("Copied %s to %s %s", s.Name, StyleHighlight.Render(id), args[1])
			return nil
		},
	}
}

// removeCommand creates the "remove" command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <sheet> <puzzle-id|index>",
		Short: "Remove an element from a sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			e, err := s.RemoveRef(args[1])
			if err != nil {
				return err
			}
			printSuccess("Removed %s from %s", e.Label(), s.Name)
			return ws.touch(id)
		},
	}
}

// reorderCommand creates the "reorder" command.
func (c *CLI) reorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <sheet> <index> <index>",
		Short: "Swap two elements of a sheet",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			j, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			if err := s.Swap(i, j); err != nil {
				return err
			}
			printSuccess("Swapped elements %d and %d on %s", i, j, s.Name)
			return ws.touch(id)
		},
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%q is not an index", s)
	}
	return i, nil
}

// nameCommand creates the "name" command.
func (c *CLI) nameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name <sheet> <new-name>",
		Short: "Rename a sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			if err := ws.sheets.CheckName(args[1], id); err != nil {
				return err
			}
			old := s.Name
			s.Name = args[1]
			printSuccess("Renamed %s to %s", old, s.Name)
			return ws.touch(id)
		},
	}
}

// headerCommand creates the "header" command.
func (c *CLI) headerCommand() *cobra.Command {
	var left, right, footer string
	cmd := &cobra.Command{
		Use:   "header <sheet>",
		Short: "Set the texts printed around the diagrams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if !f.Changed("left") && !f.Changed("right") && !f.Changed("footer") {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to change: pass --left, --right or --footer")
			}
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			s.SetHeaders(changed(f.Changed("left"), left), changed(f.Changed("right"), right))
			if f.Changed("footer") {
				s.Footer = footer
			}
			printSuccess("Updated the texts of %s", s.Name)
			printKeyValue("left", s.LeftHeader)
			printKeyValue("right", s.RightHeader)
			printKeyValue("footer", s.Footer)
			return ws.touch(id)
		},
	}
	cmd.Flags().StringVar(&left, "left", "", "left header text")
	cmd.Flags().StringVar(&right, "right", "", "right header text")
	cmd.Flags().StringVar(&footer, "footer", "", "footer text, empty for none")
	return cmd
}

// changed returns &v when the flag was given.
func changed(set bool, v string) *string {
	if !set {
		return nil
	}
	return &v
}

// saveCommand creates the "save" command.
func (c *CLI) saveCommand() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "save [sheet]",
		Short: "Save sheets to the data directory or export one to a file",
		Long: `Without arguments every sheet and store changed while autosave was off is
written to the data directory. With a sheet, that sheet is saved; --to
exports it to a file instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if to != "" {
					return errors.New(errors.ErrCodeInvalidInput, "--to needs a sheet")
				}
				ids, err := ws.saveDirty()
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					printInfo("Nothing to save")
					return nil
				}
				printSuccess("Saved %d item(s)", len(ids))
				return nil
			}

			id, s, err := ws.sheet(args[0])
			if err != nil {
				return err
			}
			if to != "" {
				if err := storage.Export(s, to); err != nil {
					return err
				}
				printSuccess("Exported %s", s.Name)
				printFile(to)
				return nil
			}
			if err := ws.persist(id); err != nil {
				return err
			}
			printSuccess("Saved %s", s.Name)
			printFile(ws.dir.SheetFile(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "export the sheet to this file")
	return cmd
}

// loadCommand creates the "load" command.
func (c *CLI) loadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file|directory>",
		Short: "Load a saved sheet or a directory of saved sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			finder, err := ws.finder(ctx)
			if err != nil {
				return err
			}
			sheets, err := storage.Import(args[0], finder)
			if err != nil {
				return err
			}
			for _, s := range sheets {
				id, err := ws.addSheet(s)
				if err != nil {
					return err
				}
				printSuccess("Loaded %s %s (%d elements)", StyleHighlight.Render(id), s.Name, s.Len())
			}
			if len(sheets) == 0 {
				printInfo("No sheets found in %s", args[0])
			}
			return nil
		},
	}
}

// deleteCommand creates the "delete" command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sheet|store>",
		Short: "Delete a sheet or a store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			id, name, err := ws.deleteRef(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSuccess("Deleted %s %s", id, name)
			return nil
		},
	}
}
