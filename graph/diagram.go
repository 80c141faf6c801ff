package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DiagramFormat selects a (*Dag).ToDiagram renderer.
type DiagramFormat int

const (
	FormatMermaid DiagramFormat = iota
	FormatDOT
	FormatASCII
)

// nodeLabel returns n's display label, annotated with its variant tag
// when it belongs to a variant family, matching the convention
// "<Label> (v<tag>)".
func nodeLabel(n *node) string {
	label := n.label
	if label == "" {
		label = fmt.Sprintf("node%d", n.id)
	}
	if n.variantFamily != noVariant {
		label = fmt.Sprintf("%s (v%d)", label, n.variantTag)
	}
	return label
}

// ToDiagram renders d as a textual graph description in the requested
// format. Rendering is pure and deterministic: nodes are enumerated in
// ascending NodeID order; Mermaid and DOT list edges in the Dag's edge
// order (by consumer id), and ASCII sorts its edge lines as strings.
func (d *Dag) ToDiagram(format DiagramFormat) string {
	switch format {
	case FormatDOT:
		return d.toDOT()
	case FormatASCII:
		return d.toASCII()
	default:
		return d.toMermaid()
	}
}

func (d *Dag) toMermaid() string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, n := range d.nodes {
		fmt.Fprintf(&b, "    n%d[%q]\n", n.id, nodeLabel(n))
	}
	for _, e := range d.edges {
		fmt.Fprintf(&b, "    n%d -->|%s| n%d\n", e.Producer, e.Name, e.Consumer)
	}
	return b.String()
}

func (d *Dag) toDOT() string {
	var b strings.Builder
	b.WriteString("digraph dag {\n")
	for _, n := range d.nodes {
		fmt.Fprintf(&b, "  n%d [label=%q];\n", n.id, nodeLabel(n))
	}
	for _, e := range d.edges {
		fmt.Fprintf(&b, "  n%d -> n%d [label=%q];\n", e.Producer, e.Consumer, e.Name)
	}
	b.WriteString("}\n")
	return b.String()
}

var (
	diagramBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	diagramLevelTitle = lipgloss.NewStyle().Bold(true)
)

// toASCII renders one bordered box per node, grouped into rows by
// level, using lipgloss for layout. Edges are listed beneath the
// levels since ASCII art cannot cheaply route arbitrary edges between
// independently-sized boxes.
func (d *Dag) toASCII() string {
	var rows []string
	for levelIdx, ids := range d.levels {
		boxes := make([]string, len(ids))
		for i, id := range ids {
			boxes[i] = diagramBox.Render(nodeLabel(d.nodes[id]))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
		title := diagramLevelTitle.Render(fmt.Sprintf("level %d", levelIdx))
		rows = append(rows, lipgloss.JoinVertical(lipgloss.Left, title, row))
	}

	var edgeLines []string
	for _, e := range d.edges {
		edgeLines = append(edgeLines, fmt.Sprintf("n%d -> n%d [%s]", e.Producer, e.Consumer, e.Name))
	}
	sort.Strings(edgeLines)

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if len(edgeLines) == 0 {
		return body
	}
	return body + "\n\nedges:\n" + strings.Join(edgeLines, "\n")
}
