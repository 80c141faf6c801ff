package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVariantDiagram(t *testing.T) *Dag {
	t.Helper()
	g := NewGraph()
	_, err := g.Add(constFn(map[string]GraphData{"n": NewInt(1)}),
		WithLabel("source"), WithOutputs(OutputBinding{Impl: "n", Broadcast: "x"}))
	require.NoError(t, err)

	_, err = g.Variants([]NodeFunc{constFn(nil), constFn(nil)},
		WithLabel("branch"),
		WithInputs(InputBinding{Broadcast: "x", Impl: "x"}),
		WithOutputs(OutputBinding{Impl: "y", Broadcast: "y"}))
	require.NoError(t, err)

	dag, err := g.Build()
	require.NoError(t, err)
	return dag
}

func TestDiagram_MermaidLabelsVariantSiblings(t *testing.T) {
	dag := buildVariantDiagram(t)
	out := dag.ToDiagram(FormatMermaid)

	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, `n0["source"]`)
	assert.Contains(t, out, `n1["branch (v0)"]`)
	assert.Contains(t, out, `n2["branch (v1)"]`)
	assert.Contains(t, out, "n0 -->|x| n1")
	assert.Contains(t, out, "n0 -->|x| n2")
}

func TestDiagram_DeterministicAcrossCalls(t *testing.T) {
	dag := buildVariantDiagram(t)
	first := dag.ToDiagram(FormatMermaid)
	second := dag.ToDiagram(FormatMermaid)
	assert.Equal(t, first, second)
}

func TestDiagram_NodeAndEdgeOrderFollowsNodeID(t *testing.T) {
	dag := buildVariantDiagram(t)
	out := dag.ToDiagram(FormatDOT)

	idxSource := strings.Index(out, "n0 [label=")
	idxV0 := strings.Index(out, "n1 [label=")
	idxV1 := strings.Index(out, "n2 [label=")
	require.NotEqual(t, -1, idxSource)
	require.NotEqual(t, -1, idxV0)
	require.NotEqual(t, -1, idxV1)
	assert.Less(t, idxSource, idxV0)
	assert.Less(t, idxV0, idxV1)
}

func TestDiagram_DOTFormat(t *testing.T) {
	dag := buildVariantDiagram(t)
	out := dag.ToDiagram(FormatDOT)

	assert.Contains(t, out, "digraph dag {")
	assert.Contains(t, out, `n1 [label="branch (v0)"];`)
	assert.Contains(t, out, `n0 -> n1 [label="x"];`)
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "}"))
}

func TestDiagram_ASCIIGroupsByLevel(t *testing.T) {
	dag := buildVariantDiagram(t)
	out := dag.ToDiagram(FormatASCII)

	assert.Contains(t, out, "level 0")
	assert.Contains(t, out, "level 1")
	assert.Contains(t, out, "source")
	assert.Contains(t, out, "branch (v0)")
	assert.Contains(t, out, "branch (v1)")
	assert.Contains(t, out, "edges:")
	assert.Contains(t, out, "n0 -> n1 [x]")
}

func TestDiagram_NoVariantFamilyOmitsTagSuffix(t *testing.T) {
	dag := buildS1(t)
	out := dag.ToDiagram(FormatMermaid)
	assert.NotContains(t, out, "(v0)")
	assert.Contains(t, out, `n0["gen"]`)
}
