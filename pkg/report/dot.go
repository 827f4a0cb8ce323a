package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/licenseward/licenseward/pkg/deps"
)

// ToDOT converts a classified graph to Graphviz DOT format. Nodes are
// colored by verdict: failing packages red, passing green, unknown grey.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g *deps.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph licenses {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	for _, n := range nodes {
		label := n.Name
		if n.Version != "" {
			label += "\n" + n.Version
		}
		label += "\n" + LicenseLabel(n.Licenses)
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n", n.String(), label, verdictColor(n.Verdict))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for _, req := range n.Requires {
			// Edges point at the node actually resolved for the
			// requirement, which may carry a version the metadata
			// line did not.
			target := req
			if resolved, ok := g.Node(req); ok {
				target = resolved.Identity
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.String(), target.String())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func verdictColor(v deps.Verdict) string {
	switch v {
	case deps.VerdictFail:
		return "lightcoral"
	case deps.VerdictPass:
		return "palegreen"
	default:
		return "lightgrey"
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
