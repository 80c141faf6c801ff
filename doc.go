// Package graphsp is a dataflow DAG builder and executor: register pure
// functions as nodes, declare which named values each reads and writes,
// and the builder resolves producer/consumer edges automatically from a
// "frontier" of currently-live producers per name. The frozen Dag runs
// its nodes level by level, serially or with bounded parallel fan-out.
//
// The importable package is graph (github.com/briday1/graph-sp/graph);
// this file only documents the module as a whole. See that package's
// own doc comment for API usage.
//
// # Package layout
//
// graph/
// The core builder, scheduler, data model, and diagram emitter.
//
//	g := graph.NewGraph()
//	g.Add(source, graph.WithOutputs(graph.OutputBinding{Impl: "n", Broadcast: "x"}))
//	dag, _ := g.Build()
//	ctx, _ := dag.Execute(context.Background(), graph.ExecuteOptions{Parallel: true})
//
// log/
// A small leveled-logging facade the graph package logs through, with
// a github.com/kataras/golog-backed implementation alongside the
// standard-library default.
//
// # Branching and variants
//
// Branch splices an independently-built *graph.Graph in as an isolated
// scope; Merge reads named values back out of one or more branches.
// Variants fans a broadcast name out into sibling nodes; chaining
// Variants calls composes as a cartesian product across stages.
//
// # Concurrency
//
// Node callables must be safe to invoke from arbitrary goroutines and
// must not mutate a GraphData value reached through a shared handle —
// those are immutable, shared views once committed to the execution
// context. Level execution uses golang.org/x/sync/errgroup to bound
// fan-out and provide a first-error barrier between levels.
package graphsp // import "github.com/briday1/graph-sp"
