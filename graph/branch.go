package graph

import "github.com/briday1/graph-sp/log"

// BranchInput names a value to pull out of a branch's frontier for
// consumption by a Merge node: the value bound to name in branch's
// frontier is projected into the merge callable's input map under impl.
type BranchInput struct {
	Branch BranchID
	Name   string
	Impl   string
}

// Branch splices sub — an independently-built *Graph — into g as a new,
// isolated scope and returns the BranchID the outer graph now uses to
// refer to it. sub's own nodes (built against its own root-scoped
// frontier) are renumbered to continue g's id range and their scope is
// rewritten from RootBranch to the freshly allocated BranchID. Any
// frontier entries sub produced are exported under that BranchID,
// visible only to a subsequent Merge. An input sub could not resolve
// against its own frontier is bound to g's producer of that name when
// g's frontier holds exactly one; otherwise it stays unresolved and
// Build reports it as a missing input.
func (g *Graph) Branch(sub *Graph) (BranchID, error) {
	branchID := g.nextBranchID
	g.nextBranchID++

	offset := NodeID(len(g.nodes))
	remap := func(id NodeID) NodeID {
		if id == noProducer {
			return noProducer
		}
		return id + offset
	}

	familyOffset := g.nextVariantFamily
	remapFamily := func(f int) int {
		if f == noVariant {
			return noVariant
		}
		return f + familyOffset
	}

	for _, n := range sub.nodes {
		moved := &node{
			id:            remap(n.id),
			branch:        branchID,
			label:         n.label,
			fn:            n.fn,
			inputs:        n.inputs,
			outputs:       n.outputs,
			deps:          make([]NodeID, len(n.deps)),
			inputScopes:   make([]BranchID, len(n.inputScopes)),
			variantFamily: remapFamily(n.variantFamily),
			variantTag:    n.variantTag,
		}
		for i, d := range n.deps {
			moved.deps[i] = remap(d)
			// An input sub had no producer for is read from the outer
			// scope, so it depends on g's current producer of that name.
			if d == noProducer && i < len(n.inputs) {
				if outer := g.front[n.inputs[i].Broadcast]; len(outer) == 1 {
					moved.deps[i] = outer[0]
				}
			}
		}
		for i, sc := range n.inputScopes {
			// sub was built believing itself to be the root graph, so
			// every one of its own nodes carries RootBranch as its
			// scope; once spliced in, that scope becomes branchID. A
			// scope that already names one of sub's own nested
			// branches (sub.Branch called within sub) is left as-is.
			if sc == RootBranch {
				moved.inputScopes[i] = branchID
			} else {
				moved.inputScopes[i] = sc
			}
		}
		g.nodes = append(g.nodes, moved)
	}
	g.nextVariantFamily += sub.nextVariantFamily

	for _, m := range sub.missing {
		if len(g.front[m.name]) == 1 {
			continue
		}
		g.missing = append(g.missing, missingInput{node: remap(m.node), name: m.name})
	}

	exported := make(frontier, len(sub.front))
	for name, ids := range sub.front {
		remapped := make([]NodeID, len(ids))
		for i, id := range ids {
			remapped[i] = remap(id)
		}
		exported[name] = remapped
	}
	g.branches[branchID] = exported

	log.Debug("graph: spliced branch %d with %d node(s)", branchID, len(sub.nodes))
	return branchID, nil
}

// Merge reads named values out of one or more branches and feeds them
// to fn as a node living in the root scope. After Merge, the consumed
// branches' exported names are retired: they are no longer reachable
// except through this merge node's own outputs, and a later Merge that
// reads from one of those branches is rejected with
// ErrNoProducerInBranch.
func (g *Graph) Merge(fn NodeFunc, branchInputs []BranchInput, opts ...NodeOption) (NodeID, error) {
	cfg := resolveConfig(opts)
	placeholder := NodeID(len(g.nodes))
	if err := validateBindings(placeholder, nil, cfg.outputs); err != nil {
		return 0, err
	}

	deps := make([]NodeID, len(branchInputs))
	inputs := make([]InputBinding, len(branchInputs))
	scopes := make([]BranchID, len(branchInputs))
	for i, bi := range branchInputs {
		exported, ok := g.branches[bi.Branch]
		if !ok {
			return 0, &BuildError{Kind: ErrUnknownBranch, Node: placeholder, Name: bi.Name}
		}
		producers, ok := exported[bi.Name]
		if !ok || len(producers) == 0 || g.merged[bi.Branch] {
			return 0, &BuildError{Kind: ErrNoProducerInBranch, Node: placeholder, Name: bi.Name}
		}
		if len(producers) > 1 {
			// An unresolved variant fan-out (the branch never narrowed
			// it with a terminal Add before export) has no single
			// value to hand the merge callable; same discipline as the
			// executor's duplicate-writer check, applied at build time.
			return 0, &BuildError{Kind: ErrAmbiguousBranchExport, Node: placeholder, Name: bi.Name}
		}
		deps[i] = producers[0]
		inputs[i] = InputBinding{Broadcast: bi.Name, Impl: bi.Impl}
		// A merge node itself lives in RootBranch, but each input is
		// read out of the specific branch it names, not out of the
		// merge node's own scope.
		scopes[i] = bi.Branch
	}

	id := NodeID(len(g.nodes))
	n := &node{
		id:            id,
		branch:        RootBranch,
		label:         cfg.label,
		fn:            fn,
		inputs:        inputs,
		outputs:       append([]OutputBinding(nil), cfg.outputs...),
		deps:          deps,
		inputScopes:   scopes,
		variantFamily: noVariant,
		variantTag:    noVariant,
	}
	g.nodes = append(g.nodes, n)

	for _, ob := range cfg.outputs {
		g.front.bind(ob.Broadcast, []NodeID{id})
	}
	for _, bi := range branchInputs {
		g.merged[bi.Branch] = true
	}

	log.Debug("graph: merge node %d reads %d branch value(s)", id, len(branchInputs))
	return id, nil
}
