package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLargePayloadSharing reproduces scenario S5: a single
// 1,000,000-element IntVec is produced once and fanned out to three
// consumers, each summing a disjoint 1,000-element slice. It also
// exercises testable property 6 — fan-out must not copy the payload —
// by asserting handle-pointer identity across every consumer's
// projected input instead of measuring allocations.
func TestLargePayloadSharing(t *testing.T) {
	const n = 1_000_000
	data := make([]int64, n)
	for i := range data {
		data[i] = int64(i)
	}

	g := NewGraph()
	_, err := g.Add(func(map[string]GraphData) (map[string]GraphData, error) {
		return map[string]GraphData{"vec": NewIntVec(data)}, nil
	}, WithLabel("source"), WithOutputs(OutputBinding{Impl: "vec", Broadcast: "big"}))
	require.NoError(t, err)

	type window struct {
		label      string
		start, end int
	}
	windows := []window{
		{"first", 0, 1000},
		{"middle", 400_000, 401_000},
		{"last", n - 1000, n},
	}

	var mu sync.Mutex
	received := map[string]GraphData{}

	for _, w := range windows {
		w := w
		_, err := g.Add(func(in map[string]GraphData) (map[string]GraphData, error) {
			v := in["in"]
			mu.Lock()
			received[w.label] = v
			mu.Unlock()

			vec, err := v.AsIntVec()
			if err != nil {
				return nil, err
			}
			var sum int64
			for _, x := range vec[w.start:w.end] {
				sum += x
			}
			return map[string]GraphData{"sum": NewInt(sum)}, nil
		}, WithLabel(w.label),
			WithInputs(InputBinding{Broadcast: "big", Impl: "in"}),
			WithOutputs(OutputBinding{Impl: "sum", Broadcast: "sum_" + w.label}))
		require.NoError(t, err)
	}

	dag, err := g.Build()
	require.NoError(t, err)

	res, err := dag.Execute(context.Background(), ExecuteOptions{Parallel: true, MaxThreads: 3})
	require.NoError(t, err)

	// Sum of consecutive integers a..b-1 is (a+b-1)*(b-a)/2.
	windowSum := func(a, b int) int64 {
		return int64(a+b-1) * int64(b-a) / 2
	}
	first, err := res.Int("sum_first")
	require.NoError(t, err)
	middle, err := res.Int("sum_middle")
	require.NoError(t, err)
	last, err := res.Int("sum_last")
	require.NoError(t, err)
	assert.Equal(t, windowSum(0, 1000), first)
	assert.Equal(t, windowSum(400_000, 401_000), middle)
	assert.Equal(t, windowSum(n-1000, n), last)

	require.Len(t, received, 3)
	var handles []GraphData
	for _, w := range windows {
		v, ok := received[w.label]
		require.True(t, ok, "consumer %q never recorded its projected input", w.label)
		handles = append(handles, v)
	}
	for i := 1; i < len(handles); i++ {
		assert.True(t, handles[0].SameHandle(handles[i]),
			"consumer %q and %q should share the source handle, not a copy", windows[0].label, windows[i].label)
	}
}
