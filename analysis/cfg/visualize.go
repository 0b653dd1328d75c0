package cfg

import (
	"fmt"
	"strconv"

	"github.com/abs-int/iva/utils"
	"github.com/abs-int/iva/utils/dot"
)

// ToDotGraph converts the location graph to its dot representation.
// Nodes are labelled with their index, kind and current store; dependency
// edges point from predecessor to dependent, with back-edges dashed.
func (g *Graph) ToDotGraph() *dot.DotGraph {
	nodes := make([]*dot.DotNode, len(g.Locs))
	for i, l := range g.Locs {
		attrs := dot.DotAttrs{
			"label": fmt.Sprintf("%d: %s\n%s", i, l.Kind, l.Store),
		}
		switch l.Kind {
		case PreWhile:
			attrs["fillcolor"] = "lightsalmon"
		case Merge, PostWhile:
			attrs["fillcolor"] = "lightblue"
		}
		nodes[i] = &dot.DotNode{
			ID:    strconv.Itoa(i),
			Attrs: attrs,
		}
	}

	edges := []*dot.DotEdge{}
	for i, l := range g.Locs {
		for _, d := range l.Deps {
			attrs := dot.DotAttrs{}
			if d >= i {
				attrs["style"] = "dashed"
			}
			edges = append(edges, &dot.DotEdge{
				From:  nodes[d],
				To:    nodes[i],
				Attrs: attrs,
			})
		}
	}

	return &dot.DotGraph{
		Title: "Location graph",
		Nodes: nodes,
		Edges: edges,
		Options: map[string]string{
			"nodesep": fmt.Sprint(utils.Opts().Nodesep()),
		},
	}
}

// Visualize renders the location graph in the configured output format.
func (g *Graph) Visualize(outfname string) (string, error) {
	return g.ToDotGraph().RenderToFile(outfname, utils.Opts().OutputFormat())
}
