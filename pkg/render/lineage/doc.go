// Package lineage draws how puzzle stores were derived from each other.
//
// Every filter, mate search or union in psg creates a new store and records
// the stores it came from. [ToDOT] turns that record into a Graphviz digraph
// with one box per store and an arrow from each parent to its child;
// [RenderSVG] lays it out in-process with [github.com/goccy/go-graphviz].
//
//	dot := lineage.ToDOT(nodes, lineage.Options{Detailed: true})
//	svg, err := lineage.RenderSVG(ctx, dot)
//
// Parents that are no longer in the repository are drawn as dashed grey
// boxes so the chain stays readable after a store is deleted.
package lineage
