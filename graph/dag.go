package graph

import "github.com/briday1/graph-sp/log"

// Edge is a resolved producer→consumer dependency, labeled with the
// broadcast name that carries the value.
type Edge struct {
	Producer NodeID
	Consumer NodeID
	Name     string
}

// Dag is the frozen, immutable product of Graph.Build: a node table, a
// precomputed edge set, and a level-set topology. A Dag never changes
// after Build returns it and may be executed any number of times
// concurrently (Execute/ExecuteDetailed do not mutate it).
type Dag struct {
	nodes  []*node
	edges  []Edge
	levels [][]NodeID
}

// NodeCount reports how many nodes the Dag holds.
func (d *Dag) NodeCount() int { return len(d.nodes) }

// Edges returns the Dag's resolved edge set, ordered by consumer id
// then input order.
func (d *Dag) Edges() []Edge {
	out := make([]Edge, len(d.edges))
	copy(out, d.edges)
	return out
}

// Levels returns the level-set topology: levels[i] lists, in ascending
// NodeID order, the nodes that become ready after levels[0..i-1] have
// completed.
func (d *Dag) Levels() [][]NodeID {
	out := make([][]NodeID, len(d.levels))
	for i, l := range d.levels {
		cp := make([]NodeID, len(l))
		copy(cp, l)
		out[i] = cp
	}
	return out
}

// Build validates the accumulated nodes and freezes them into an
// immutable Dag. Validation order: missing-producer inputs are
// reported first (the only error deferred from Add/Variants/Merge,
// since resolving them requires seeing the whole graph); duplicate
// output and malformed-mapping and unknown-branch errors are rejected
// eagerly by Add/Variants/Merge themselves and can never reach Build.
func (g *Graph) Build() (*Dag, error) {
	if len(g.missing) > 0 {
		m := g.missing[0]
		return nil, &BuildError{Kind: ErrMissingInput, Node: m.node, Name: m.name}
	}

	edges := make([]Edge, 0, len(g.nodes))
	for _, n := range g.nodes {
		for i, dep := range n.deps {
			if dep == noProducer {
				continue
			}
			if dep >= n.id {
				// Construction only ever appends edges from an
				// already-added node to a newly-added one; this would
				// mean a cycle slipped through, which Add/Variants/Merge
				// cannot produce.
				return nil, &BuildError{Kind: ErrMalformedMapping, Node: n.id, Name: n.inputs[i].Broadcast}
			}
			edges = append(edges, Edge{Producer: dep, Consumer: n.id, Name: n.inputs[i].Broadcast})
		}
	}

	level := make([]int, len(g.nodes))
	maxLevel := 0
	for _, n := range g.nodes {
		lvl := 0
		for _, dep := range n.deps {
			if dep == noProducer {
				continue
			}
			if l := level[dep] + 1; l > lvl {
				lvl = l
			}
		}
		level[n.id] = lvl
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	levels := make([][]NodeID, maxLevel+1)
	for _, n := range g.nodes {
		levels[level[n.id]] = append(levels[level[n.id]], n.id)
	}

	frozen := make([]*node, len(g.nodes))
	copy(frozen, g.nodes)

	log.Debug("graph: built dag with %d node(s) across %d level(s)", len(frozen), len(levels))
	return &Dag{nodes: frozen, edges: edges, levels: levels}, nil
}
