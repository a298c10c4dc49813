package lineage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// Node is one store in the lineage graph.
type Node struct {
	ID      string
	Name    string
	Puzzles int
	Themes  []string
	Parents []string
}

// Options configures DOT generation.
type Options struct {
	// Detailed adds the puzzle count and themes to each label.
	Detailed bool
}

// ToDOT converts stores into Graphviz DOT source. Nodes are emitted in the
// given order; edges point from parent to child.
func ToDOT(nodes []Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph stores {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(n, opts.Detailed))
	}

	var missing []string
	for _, n := range nodes {
		for _, p := range n.Parents {
			if !known[p] && !slices.Contains(missing, p) {
				missing = append(missing, p)
			}
		}
	}
	for _, id := range missing {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", id, id+"\n(deleted)")
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, p := range n.Parents {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	label := n.ID + ": " + n.Name
	if !detailed {
		return label
	}
	parts := []string{label, fmt.Sprintf("%d puzzles", n.Puzzles)}
	if len(n.Themes) > 0 {
		parts = append(parts, strings.Join(n.Themes, ", "))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG lays out DOT source with Graphviz and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render lineage")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so browsers scale the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
