package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDag_Acyclicity builds a source, a two-way Variants stage and an
// Add that replicates once per variant (five nodes in two chains) and
// checks that every edge's producer level is strictly less than its
// consumer's level.
func TestDag_Acyclicity(t *testing.T) {
	g := NewGraph()
	_, err := g.Add(constFn(map[string]GraphData{"n": NewInt(1)}),
		WithOutputs(OutputBinding{Impl: "n", Broadcast: "x"}))
	require.NoError(t, err)

	_, err = g.Variants([]NodeFunc{constFn(nil), constFn(nil)},
		WithInputs(InputBinding{Broadcast: "x", Impl: "x"}),
		WithOutputs(OutputBinding{Impl: "y", Broadcast: "y"}))
	require.NoError(t, err)

	_, err = g.Add(constFn(nil),
		WithInputs(InputBinding{Broadcast: "y", Impl: "y"}),
		WithOutputs(OutputBinding{Impl: "z", Broadcast: "z"}))
	require.NoError(t, err)

	dag, err := g.Build()
	require.NoError(t, err)

	levelOf := make(map[NodeID]int)
	for lvl, ids := range dag.Levels() {
		for _, id := range ids {
			levelOf[id] = lvl
		}
	}
	for _, e := range dag.Edges() {
		assert.Less(t, levelOf[e.Producer], levelOf[e.Consumer])
	}
}

func TestDag_LevelsOrderedByInsertion(t *testing.T) {
	g := NewGraph()
	_, err := g.Add(constFn(map[string]GraphData{"n": NewInt(100)}),
		WithOutputs(OutputBinding{Impl: "n", Broadcast: "input"}))
	require.NoError(t, err)

	for _, label := range []string{"a", "b", "c"} {
		_, err := g.Add(constFn(nil), WithLabel(label),
			WithInputs(InputBinding{Broadcast: "input", Impl: "in"}),
			WithOutputs(OutputBinding{Impl: "out", Broadcast: "result_" + label}))
		require.NoError(t, err)
	}

	dag, err := g.Build()
	require.NoError(t, err)
	levels := dag.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, []NodeID{0}, levels[0])
	assert.Equal(t, []NodeID{1, 2, 3}, levels[1])
}

// TestDag_MissingInputDetection is scenario S6: a node declares an
// input no prior node produces; Build must reject it.
func TestDag_MissingInputDetection(t *testing.T) {
	g := NewGraph()
	consumer, err := g.Add(constFn(nil), WithInputs(InputBinding{Broadcast: "foo", Impl: "foo"}))
	require.NoError(t, err)

	_, err = g.Build()
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, ErrMissingInput, buildErr.Kind)
	assert.Equal(t, consumer, buildErr.Node)
	assert.Equal(t, "foo", buildErr.Name)
}

func TestDag_NodeCount(t *testing.T) {
	g := NewGraph()
	_, _ = g.Add(constFn(nil))
	_, _ = g.Add(constFn(nil))
	dag, err := g.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, dag.NodeCount())
}
