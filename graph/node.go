package graph

// NodeID identifies a node within a single built Dag. IDs are assigned
// in construction order starting at 0.
type NodeID int

// BranchID identifies an isolated scope created by Branch. RootBranch
// is the scope every Graph starts in.
type BranchID int

// RootBranch is the BranchID of the scope a fresh Graph begins in.
const RootBranch BranchID = 0

// InputBinding maps a broadcast-named value a node reads to the name
// the node's callable sees it under in its input map.
type InputBinding struct {
	Broadcast string
	Impl      string
}

// OutputBinding maps a name a node's callable writes in its returned
// map to the broadcast name other nodes read it under.
type OutputBinding struct {
	Impl      string
	Broadcast string
}

// NodeFunc is the callable every node wraps. It receives its declared
// inputs keyed by Impl name and must return its declared outputs keyed
// by Impl name. Implementations must be safe to call concurrently from
// arbitrary goroutines and must not mutate any GraphData value reached
// through a shared handle.
type NodeFunc func(in map[string]GraphData) (map[string]GraphData, error)

// node is the immutable, fully-resolved record of one Add/Variants/Merge
// call, produced while a Graph is being built and frozen unchanged into
// the Dag by Build.
type node struct {
	id      NodeID
	branch  BranchID
	label   string
	fn      NodeFunc
	inputs  []InputBinding
	outputs []OutputBinding
	// deps lists the NodeIDs this node reads from, one per inputs
	// entry in the same order as inputs; an entry is noProducer when
	// that input had no producer at the time the node was added.
	deps []NodeID
	// inputScopes names, per inputs entry, the branch whose overlay a
	// lookup consults first. For every node but a merge this is just
	// branch repeated; a merge node lives in RootBranch itself but reads
	// each of its inputs out of the specific branch named in its
	// BranchInput, so the two diverge there.
	inputScopes []BranchID
	// variantFamily groups the sibling nodes produced by one Variants
	// call; -1 for a node created by Add or Merge.
	variantFamily int
	// variantTag is this node's index within its variantFamily.
	variantTag int
}

// NodeOption configures an Add, Variants, or Merge call. The zero value
// of nodeConfig (no label, no inputs, no outputs) is valid: a node with
// no declared inputs is a source, and a node with no declared outputs
// contributes nothing to the broadcast context.
type NodeOption func(*nodeConfig)

type nodeConfig struct {
	label   string
	inputs  []InputBinding
	outputs []OutputBinding
}

// WithLabel attaches a human-readable label to a node, used in
// diagrams and as the NodeName of its trace spans. Nodes are unlabeled
// by default.
func WithLabel(label string) NodeOption {
	return func(c *nodeConfig) { c.label = label }
}

// WithInputs declares the broadcast-named values a node reads, and the
// names under which its callable receives them. Bindings may be passed
// in one call or accumulated across several; their order is the order
// of the node's edges and, when several inputs have more than one live
// producer, the order in which replicated nodes are created.
func WithInputs(bindings ...InputBinding) NodeOption {
	return func(c *nodeConfig) { c.inputs = append(c.inputs, bindings...) }
}

// WithOutputs declares the names a node's callable writes and the
// broadcast names other nodes read them under.
func WithOutputs(bindings ...OutputBinding) NodeOption {
	return func(c *nodeConfig) { c.outputs = append(c.outputs, bindings...) }
}

func resolveConfig(opts []NodeOption) nodeConfig {
	var c nodeConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
