package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
	"github.com/matzehuels/puzzlesheet/pkg/fsutil"
	"github.com/matzehuels/puzzlesheet/pkg/render/lineage"
)

// lineageCommand creates the "lineage" command.
func (c *CLI) lineageCommand() *cobra.Command {
	var (
		output   string
		detailed bool
		dotOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Draw how stores were derived from each other",
		Long: `Draw every store as a node with an edge from each store to the stores
filtered or combined from it. Writes SVG, or the Graphviz DOT source with
--dot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.workspace(ctx)
			if err != nil {
				return err
			}
			stores, err := ws.storeRepo(ctx)
			if err != nil {
				return err
			}
			entries := stores.All()
			nodes := make([]lineage.Node, 0, len(entries))
			for _, e := range entries {
				nodes = append(nodes, lineage.Node{
					ID:      e.ID,
					Name:    e.Item.Name,
					Puzzles: e.Item.Len(),
					Themes:  e.Item.DisplayThemes(),
					Parents: e.Item.Parents,
				})
			}

			dot := lineage.ToDOT(nodes, lineage.Options{Detailed: detailed})
			data := []byte(dot)
			if !dotOnly {
				if data, err = lineage.RenderSVG(ctx, dot); err != nil {
					return err
				}
			}
			if output == "" {
				_, err := stdout.Write(data)
				return err
			}
			if err := fsutil.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeOutputWrite, err, "write %s", output)
			}
			printSuccess("Drew %d store(s)", len(nodes))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add puzzle counts and themes to the nodes")
	cmd.Flags().BoolVar(&dotOnly, "dot", false, "write Graphviz DOT instead of SVG")
	return cmd
}
