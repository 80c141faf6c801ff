package graph

import (
	"fmt"

	"github.com/briday1/graph-sp/log"
)

// missingInput records an input binding that had no resolvable
// producer at the moment its node was added, for later reporting by
// Build.
type missingInput struct {
	node NodeID
	name string
}

// Graph accumulates nodes and the frontier that resolves their
// dependencies. A Graph is not safe for concurrent use; build it from a
// single goroutine, then call Build to obtain an immutable *Dag.
type Graph struct {
	nodes            []*node
	front            frontier
	missing          []missingInput
	branches         map[BranchID]frontier
	nextBranchID     BranchID
	merged           map[BranchID]bool
	nextVariantFamily int
}

// NewGraph returns an empty Graph scoped to the root branch.
func NewGraph() *Graph {
	return &Graph{
		front:        frontier{},
		branches:     map[BranchID]frontier{},
		nextBranchID: RootBranch + 1,
		merged:       map[BranchID]bool{},
	}
}

// noVariant marks a node created by Add or Merge, which belongs to no
// variant family.
const noVariant = -1

func validateBindings(id NodeID, inputs []InputBinding, outputs []OutputBinding) error {
	seenOut := map[string]bool{}
	for _, ob := range outputs {
		if ob.Impl == "" || ob.Broadcast == "" {
			return &BuildError{Kind: ErrMalformedMapping, Node: id, Name: ob.Broadcast + ob.Impl}
		}
		if seenOut[ob.Broadcast] {
			return &BuildError{Kind: ErrDuplicateOutput, Node: id, Name: ob.Broadcast}
		}
		seenOut[ob.Broadcast] = true
	}
	for _, ib := range inputs {
		if ib.Impl == "" || ib.Broadcast == "" {
			return &BuildError{Kind: ErrMalformedMapping, Node: id, Name: ib.Broadcast + ib.Impl}
		}
	}
	return nil
}

// addReplicated is the shared machinery behind Add and Variants: it
// resolves inputs against front into predecessor tuples, then creates
// len(fns) nodes per tuple, all sharing inputs/outputs/label, and
// updates front so each output name is bound to the full set of newly
// created nodes.
func (g *Graph) addReplicated(fns []NodeFunc, branch BranchID, cfg nodeConfig) ([]NodeID, error) {
	// Validate against the id the first node will receive; duplicate
	// output / malformed mapping errors don't depend on the final id,
	// only on cfg, so any placeholder id produces the same verdict.
	placeholder := NodeID(len(g.nodes))
	if err := validateBindings(placeholder, cfg.inputs, cfg.outputs); err != nil {
		return nil, err
	}

	tuples := predecessorTuples(g.front, cfg.inputs)

	family := noVariant
	if len(fns) > 1 {
		family = g.nextVariantFamily
		g.nextVariantFamily++
	}

	created := make([]NodeID, 0, len(tuples)*len(fns))
	for _, tuple := range tuples {
		for fnIdx, fn := range fns {
			id := NodeID(len(g.nodes))
			tag := noVariant
			if family != noVariant {
				tag = fnIdx
			}
			scopes := make([]BranchID, len(cfg.inputs))
			for i := range scopes {
				scopes[i] = branch
			}
			n := &node{
				id:            id,
				branch:        branch,
				label:         cfg.label,
				fn:            fn,
				inputs:        append([]InputBinding(nil), cfg.inputs...),
				outputs:       append([]OutputBinding(nil), cfg.outputs...),
				deps:          append([]NodeID(nil), tuple...),
				inputScopes:   scopes,
				variantFamily: family,
				variantTag:    tag,
			}
			g.nodes = append(g.nodes, n)
			created = append(created, id)

			for i, dep := range tuple {
				if dep == noProducer {
					g.missing = append(g.missing, missingInput{node: id, name: cfg.inputs[i].Broadcast})
				}
			}
		}
	}

	for _, ob := range cfg.outputs {
		g.front.bind(ob.Broadcast, created)
	}

	log.Debug("graph: added %d node(s) (label=%q) producing %v", len(created), cfg.label, outputNames(cfg.outputs))
	return created, nil
}

func outputNames(outputs []OutputBinding) []string {
	names := make([]string, len(outputs))
	for i, ob := range outputs {
		names[i] = ob.Broadcast
	}
	return names
}

// Add registers a node. Its inputs are resolved against the current
// frontier; if an input name currently has m live producers (because a
// Variants stage bound m siblings to it), Add replicates into m
// consumer nodes, one per producer. When more than one input carries
// multiplicity, the replication is the cartesian product across all of
// them. Add returns the id of the last node created.
func (g *Graph) Add(fn NodeFunc, opts ...NodeOption) (NodeID, error) {
	cfg := resolveConfig(opts)
	ids, err := g.addReplicated([]NodeFunc{fn}, RootBranch, cfg)
	if err != nil {
		return 0, err
	}
	return ids[len(ids)-1], nil
}

// Variants registers len(fns) sibling nodes sharing one input/output
// mapping. Chaining Variants calls composes as a cartesian product with
// whatever multiplicity is already live on the frontier; Variants
// returns the id of the last sibling created. Variants([f]) behaves
// exactly like Add(f, ...).
func (g *Graph) Variants(fns []NodeFunc, opts ...NodeOption) (NodeID, error) {
	if len(fns) == 0 {
		return 0, fmt.Errorf("graph: variants requires at least one function")
	}
	cfg := resolveConfig(opts)
	ids, err := g.addReplicated(fns, RootBranch, cfg)
	if err != nil {
		return 0, err
	}
	return ids[len(ids)-1], nil
}

// NodeCount reports how many nodes have been added so far.
func (g *Graph) NodeCount() int { return len(g.nodes) }
