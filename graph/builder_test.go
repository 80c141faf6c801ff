package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constFn(outputs map[string]GraphData) NodeFunc {
	return func(map[string]GraphData) (map[string]GraphData, error) {
		return outputs, nil
	}
}

func TestGraph_AddSourceNode(t *testing.T) {
	g := NewGraph()
	id, err := g.Add(constFn(map[string]GraphData{"n": NewInt(10)}),
		WithLabel("gen"), WithOutputs(OutputBinding{Impl: "n", Broadcast: "x"}))
	require.NoError(t, err)
	assert.Equal(t, NodeID(0), id)
	assert.Equal(t, 1, g.NodeCount())
}

func TestGraph_AddResolvesProducerFromFrontier(t *testing.T) {
	g := NewGraph()
	_, err := g.Add(constFn(map[string]GraphData{"n": NewInt(10)}),
		WithOutputs(OutputBinding{Impl: "n", Broadcast: "x"}))
	require.NoError(t, err)

	_, err = g.Add(constFn(nil),
		WithInputs(InputBinding{Broadcast: "x", Impl: "x"}),
		WithOutputs(OutputBinding{Impl: "y", Broadcast: "y"}))
	require.NoError(t, err)

	dag, err := g.Build()
	require.NoError(t, err)
	edges := dag.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{Producer: 0, Consumer: 1, Name: "x"}, edges[0])
}

func TestGraph_DuplicateOutputRejected(t *testing.T) {
	g := NewGraph()
	_, err := g.Add(constFn(nil), WithOutputs(
		OutputBinding{Impl: "a", Broadcast: "x"},
		OutputBinding{Impl: "b", Broadcast: "x"},
	))
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, ErrDuplicateOutput, buildErr.Kind)
}

func TestGraph_MalformedMappingRejected(t *testing.T) {
	g := NewGraph()
	_, err := g.Add(constFn(nil), WithInputs(InputBinding{Broadcast: "", Impl: "x"}))
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, ErrMalformedMapping, buildErr.Kind)
}

func TestGraph_VariantsSingleEquivalentToAdd(t *testing.T) {
	g := NewGraph()
	id, err := g.Variants([]NodeFunc{constFn(map[string]GraphData{"n": NewInt(1)})},
		WithOutputs(OutputBinding{Impl: "n", Broadcast: "x"}))
	require.NoError(t, err)
	assert.Equal(t, NodeID(0), id)
	assert.Equal(t, 1, g.NodeCount())
}

func TestGraph_VariantsRequiresAtLeastOneFunction(t *testing.T) {
	g := NewGraph()
	_, err := g.Variants(nil)
	assert.Error(t, err)
}
