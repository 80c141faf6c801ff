// Package graph implements a dataflow DAG builder and executor.
//
// Users register pure functions as nodes. Each node declares which
// broadcast-named values it reads and which it writes; the builder
// resolves producer/consumer edges from those names as nodes are added,
// using a "frontier" of currently-live producers per name. Build
// freezes the accumulated nodes into an immutable Dag with a
// precomputed level-set topology, which the executor walks level by
// level, dispatching each level's nodes sequentially or in a bounded
// parallel pool.
//
// # Basic usage
//
//	g := graph.NewGraph()
//	g.Add(func(_ map[string]graph.GraphData) (map[string]graph.GraphData, error) {
//		return map[string]graph.GraphData{"number": graph.NewInt(10)}, nil
//	}, graph.WithLabel("gen"), graph.WithOutputs(graph.OutputBinding{Impl: "number", Broadcast: "x"}))
//
//	g.Add(func(in map[string]graph.GraphData) (map[string]graph.GraphData, error) {
//		x, _ := in["x"].AsInt()
//		return map[string]graph.GraphData{"result": graph.NewInt(x * 2)}, nil
//	}, graph.WithLabel("double"),
//		graph.WithInputs(graph.InputBinding{Broadcast: "x", Impl: "x"}),
//		graph.WithOutputs(graph.OutputBinding{Impl: "result", Broadcast: "y"}))
//
//	dag, err := g.Build()
//	ctx, err := dag.Execute(context.Background(), graph.ExecuteOptions{Parallel: true})
//	y, _ := ctx.Int("y")
//
// # Branching and variants
//
// Branch splices an independently-built *Graph in as an isolated scope;
// Merge reads named values out of one or more branches into a node that
// lives back in the root scope. Variants fans a broadcast name out into
// N sibling nodes (one per supplied function); chaining Variants calls
// composes as a cartesian product, and any plain Add placed after a
// variant stage replicates once per predecessor combination still live
// on the frontier.
//
// # Concurrency
//
// Node callables must be safe to invoke concurrently from arbitrary
// goroutines and must never mutate a GraphData value reached through a
// shared handle (Str/IntVec/FloatVec/List/Map) — those are shared,
// read-only views once committed to the execution context.
package graph
