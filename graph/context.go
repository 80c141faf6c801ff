package graph

// Context is the broadcast-name → GraphData map threaded through
// execution: a root (global) layer plus a stack of branch overlays. A
// lookup from a node in branch b consults overlay b first, then root;
// a write from a node in branch b goes to overlay b, or to root if b is
// RootBranch. Once Execute/ExecuteDetailed returns, a Context is a
// read-only snapshot — nothing further mutates it.
type Context struct {
	root     map[string]GraphData
	overlays map[BranchID]map[string]GraphData
}

func newContext(seed map[string]GraphData) *Context {
	root := make(map[string]GraphData, len(seed))
	for k, v := range seed {
		root[k] = v
	}
	return &Context{root: root, overlays: map[BranchID]map[string]GraphData{}}
}

func (c *Context) lookup(name string, branch BranchID) (GraphData, bool) {
	if branch != RootBranch {
		if overlay, ok := c.overlays[branch]; ok {
			if v, ok := overlay[name]; ok {
				return v, true
			}
		}
	}
	v, ok := c.root[name]
	return v, ok
}

func (c *Context) write(name string, branch BranchID, val GraphData) {
	if branch == RootBranch {
		c.root[name] = val
		return
	}
	overlay, ok := c.overlays[branch]
	if !ok {
		overlay = map[string]GraphData{}
		c.overlays[branch] = overlay
	}
	overlay[name] = val
}

// Has reports whether name is bound in the root (global) scope.
func (c *Context) Has(name string) bool {
	_, ok := c.root[name]
	return ok
}

// Get returns the value bound to name in the root scope, or Null if
// name was never written.
func (c *Context) Get(name string) GraphData {
	if v, ok := c.root[name]; ok {
		return v
	}
	return Null
}

// Int returns the Int value bound to name, or a *TypeError if absent or
// of another kind.
func (c *Context) Int(name string) (int64, error) { return c.Get(name).AsInt() }

// Float returns the Float value bound to name, or a *TypeError if
// absent or of another kind.
func (c *Context) Float(name string) (float64, error) { return c.Get(name).AsFloat() }

// Bool returns the Bool value bound to name, or a *TypeError if absent
// or of another kind.
func (c *Context) Bool(name string) (bool, error) { return c.Get(name).AsBool() }

// String returns the Str value bound to name, or a *TypeError if absent
// or of another kind.
func (c *Context) String(name string) (string, error) { return c.Get(name).AsString() }

// IntVec returns the IntVec value bound to name, or a *TypeError if
// absent or of another kind.
func (c *Context) IntVec(name string) ([]int64, error) { return c.Get(name).AsIntVec() }

// FloatVec returns the FloatVec value bound to name, or a *TypeError if
// absent or of another kind.
func (c *Context) FloatVec(name string) ([]float64, error) { return c.Get(name).AsFloatVec() }

// List returns the List value bound to name, or a *TypeError if absent
// or of another kind.
func (c *Context) List(name string) ([]GraphData, error) { return c.Get(name).AsList() }

// Map returns the Map value bound to name, or a *TypeError if absent or
// of another kind.
func (c *Context) Map(name string) (map[string]GraphData, error) { return c.Get(name).AsMap() }

// Foreign returns the Foreign value bound to name, or a *TypeError if
// absent or of another kind.
func (c *Context) Foreign(name string) (any, error) { return c.Get(name).AsForeign() }

// BranchOutputs returns a read-only view of the overlay map for branch,
// or nil if that branch wrote nothing.
func (c *Context) BranchOutputs(branch BranchID) map[string]GraphData {
	return c.overlays[branch]
}
