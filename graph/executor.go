package graph

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/briday1/graph-sp/log"
)

// ExecuteOptions configures a Dag run. The zero value runs sequentially
// with an empty initial context and no tracing.
type ExecuteOptions struct {
	// Parallel dispatches each level's nodes through a bounded worker
	// pool instead of running them in ascending NodeID order.
	Parallel bool
	// MaxThreads bounds the parallel worker pool. <= 0 resolves to
	// runtime.GOMAXPROCS(0).
	MaxThreads int
	// InitialContext seeds the root scope before level 0 runs.
	InitialContext map[string]GraphData
	// Tracer, if set, records a TraceSpan per graph/level/node
	// lifecycle event.
	Tracer *Tracer
	// Listeners are notified synchronously around every node's
	// execution.
	Listeners []NodeListener
}

// DetailedResult is the richer return value of ExecuteDetailed.
type DetailedResult struct {
	// Context is the final broadcast-name → GraphData map.
	Context *Context
	// NodeOutputs captures, for every node, the broadcast-keyed output
	// map it wrote at merge time.
	NodeOutputs map[NodeID]map[string]GraphData
	// BranchOutputs captures each branch's final overlay map.
	BranchOutputs map[BranchID]map[string]GraphData
}

type nodeResult struct {
	id      NodeID
	outputs map[string]GraphData
	err     error
}

// Execute runs the Dag to completion and returns the final context.
// ctx is checked for cancellation at each level boundary; it is not
// otherwise consulted unless a node callable honors it itself.
func (d *Dag) Execute(ctx context.Context, opts ExecuteOptions) (*Context, error) {
	res, err := d.ExecuteDetailed(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Context, nil
}

// ExecuteDetailed runs the Dag to completion and additionally captures
// every node's output map and every branch's final overlay.
func (d *Dag) ExecuteDetailed(ctx context.Context, opts ExecuteOptions) (res *DetailedResult, err error) {
	maxThreads := opts.MaxThreads
	if maxThreads <= 0 {
		maxThreads = runtime.GOMAXPROCS(0)
	}

	execCtx := newContext(opts.InitialContext)
	nodeOutputs := make(map[NodeID]map[string]GraphData, len(d.nodes))

	var graphSpan string
	if opts.Tracer != nil {
		graphSpan = opts.Tracer.StartSpan(TraceEventGraphStart, "", -1)
		defer func() { opts.Tracer.EndSpan(graphSpan, err) }()
	}

	for levelIdx, ids := range d.levels {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}

		log.Debug("graph: dispatching level %d with %d node(s)", levelIdx, len(ids))

		var levelSpan string
		if opts.Tracer != nil {
			levelSpan = opts.Tracer.StartSpan(TraceEventLevelStart, "", levelIdx)
		}

		results := make([]nodeResult, len(ids))
		if opts.Parallel {
			eg, gctx := errgroup.WithContext(ctx)
			eg.SetLimit(maxThreads)
			for i, id := range ids {
				i, id := i, id
				eg.Go(func() error {
					out, nerr := d.runNode(gctx, id, execCtx, opts, levelIdx)
					results[i] = nodeResult{id: id, outputs: out, err: nerr}
					return nerr
				})
			}
			if werr := eg.Wait(); werr != nil {
				if opts.Tracer != nil {
					opts.Tracer.EndSpan(levelSpan, werr)
				}
				log.Error("graph: level %d failed: %v", levelIdx, werr)
				return nil, werr
			}
		} else {
			for i, id := range ids {
				out, nerr := d.runNode(ctx, id, execCtx, opts, levelIdx)
				results[i] = nodeResult{id: id, outputs: out, err: nerr}
				if nerr != nil {
					if opts.Tracer != nil {
						opts.Tracer.EndSpan(levelSpan, nerr)
					}
					log.Error("graph: level %d failed: %v", levelIdx, nerr)
					return nil, nerr
				}
			}
		}

		// Each branch scope has its own overlay, so only two writes of
		// one name into the same scope conflict.
		type scopedName struct {
			branch BranchID
			name   string
		}
		written := map[scopedName]NodeID{}
		for _, r := range results {
			n := d.nodes[r.id]
			for name := range r.outputs {
				key := scopedName{branch: n.branch, name: name}
				if owner, dup := written[key]; dup {
					derr := &ExecutionError{Node: r.id, Err: fmt.Errorf("broadcast name %q was also written by node %d in the same level", name, owner)}
					if opts.Tracer != nil {
						opts.Tracer.EndSpan(levelSpan, derr)
					}
					return nil, derr
				}
				written[key] = r.id
			}
			for name, val := range r.outputs {
				execCtx.write(name, n.branch, val)
			}
			nodeOutputs[r.id] = r.outputs
		}

		if opts.Tracer != nil {
			opts.Tracer.EndSpan(levelSpan, nil)
		}
	}

	branchOutputs := make(map[BranchID]map[string]GraphData, len(execCtx.overlays))
	for b, m := range execCtx.overlays {
		cp := make(map[string]GraphData, len(m))
		for k, v := range m {
			cp[k] = v
		}
		branchOutputs[b] = cp
	}

	return &DetailedResult{Context: execCtx, NodeOutputs: nodeOutputs, BranchOutputs: branchOutputs}, nil
}

// runNode projects n's inputs from execCtx, invokes its callable
// (recovering from a panic as an ExecutionError), and remaps its
// returned output map onto broadcast names. It performs no writes.
func (d *Dag) runNode(ctx context.Context, id NodeID, execCtx *Context, opts ExecuteOptions, level int) (result map[string]GraphData, err error) {
	n := d.nodes[id]

	var span string
	if opts.Tracer != nil {
		label := n.label
		span = opts.Tracer.StartSpan(TraceEventNodeStart, label, level)
		defer func() { opts.Tracer.EndSpan(span, err) }()
	}
	notifyListeners(ctx, opts.Listeners, NodeEventStart, id, nil)
	defer func() {
		if err != nil {
			notifyListeners(ctx, opts.Listeners, NodeEventError, id, err)
		} else {
			notifyListeners(ctx, opts.Listeners, NodeEventEnd, id, nil)
		}
	}()

	in := make(map[string]GraphData, len(n.inputs))
	for i, ib := range n.inputs {
		scope := n.branch
		if i < len(n.inputScopes) {
			scope = n.inputScopes[i]
		}
		v, ok := execCtx.lookup(ib.Broadcast, scope)
		if !ok {
			return nil, &ExecutionError{Node: id, Err: fmt.Errorf("required input %q absent from context", ib.Broadcast)}
		}
		in[ib.Impl] = v
	}

	out, callErr := invokeRecovered(n.fn, in)
	if callErr != nil {
		return nil, &ExecutionError{Node: id, Err: callErr}
	}

	result = make(map[string]GraphData, len(n.outputs))
	for _, ob := range n.outputs {
		v, ok := out[ob.Impl]
		if !ok {
			return nil, &ExecutionError{Node: id, Err: fmt.Errorf("callable did not return declared output %q", ob.Impl)}
		}
		result[ob.Broadcast] = v
	}
	return result, nil
}

func invokeRecovered(fn NodeFunc, in map[string]GraphData) (out map[string]GraphData, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("node callable panicked: %v", r)
		}
	}()
	return fn(in)
}
