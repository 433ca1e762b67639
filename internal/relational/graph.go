package relational

// Edge is one foreign key dependency: From carries the column, To is the
// referenced table.
type Edge struct {
	From     string
	To       string
	Column   string
	Nullable bool
}

// Graph is the table dependency graph. Nodes keep first-discovery order so
// every derived ordering is reproducible for the same input.
type Graph struct {
	nodes []string
	index map[string]int
	out   map[string][]Edge
}

// BuildGraph derives the dependency graph from the finalized table set: one
// node per table, one edge per foreign key column.
func BuildGraph(tables []*Table) *Graph {
	g := &Graph{index: make(map[string]int), out: make(map[string][]Edge)}
	for _, t := range tables {
		g.addNode(t.Name)
	}
	for _, t := range tables {
		for _, col := range t.Columns {
			if !col.ForeignKey {
				continue
			}
			g.addNode(col.References)
			g.out[t.Name] = append(g.out[t.Name], Edge{
				From:     t.Name,
				To:       col.References,
				Column:   col.Name,
				Nullable: col.Nullable,
			})
		}
	}
	return g
}

func (g *Graph) addNode(name string) {
	if _, ok := g.index[name]; ok {
		return
	}
	g.index[name] = len(g.nodes)
	g.nodes = append(g.nodes, name)
}

func (g *Graph) Nodes() []string { return g.nodes }

func (g *Graph) Edges(name string) []Edge { return g.out[name] }

// SimpleCycles enumerates every elementary cycle exactly once, as node
// lists without the closing repeat. Each cycle is rooted at its
// smallest-index node and cycles surface in DFS order, so enumeration is
// deterministic.
func (g *Graph) SimpleCycles() [][]string {
	var cycles [][]string
	for si, start := range g.nodes {
		path := []string{start}
		onPath := map[string]bool{start: true}
		var dfs func(v string)
		dfs = func(v string) {
			for _, e := range g.out[v] {
				wi, ok := g.index[e.To]
				if !ok || wi < si {
					continue
				}
				if e.To == start {
					cycle := make([]string, len(path))
					copy(cycle, path)
					cycles = append(cycles, cycle)
					continue
				}
				if onPath[e.To] {
					continue
				}
				onPath[e.To] = true
				path = append(path, e.To)
				dfs(e.To)
				path = path[:len(path)-1]
				delete(onPath, e.To)
			}
		}
		dfs(start)
	}
	return cycles
}

// BreakCycles removes foreign key edges until no cycle remains, returning
// the removed edges so their constraints can be re-applied after all tables
// exist. When the removal budget runs out the remaining cycles come back as
// a CycleError and no ordering is produced.
func (g *Graph) BreakCycles(budget int) ([]Edge, error) {
	var removed []Edge
	for attempts := 0; ; attempts++ {
		cycles := g.SimpleCycles()
		if len(cycles) == 0 {
			return removed, nil
		}
		if attempts >= budget {
			return nil, &CycleError{Cycles: cycles}
		}
		edge := chooseEdge(g.cycleEdges(cycles[0]))
		g.removeEdge(edge)
		removed = append(removed, edge)
	}
}

// cycleEdges maps a cycle's node sequence back to the concrete edges along
// it.
func (g *Graph) cycleEdges(cycle []string) []Edge {
	edges := make([]Edge, 0, len(cycle))
	for i, from := range cycle {
		to := cycle[(i+1)%len(cycle)]
		for _, e := range g.out[from] {
			if e.To == to {
				edges = append(edges, e)
				break
			}
		}
	}
	return edges
}

// chooseEdge picks which edge of a cycle to defer: a self-referencing edge
// first, then the first nullable foreign key, then the first edge.
func chooseEdge(edges []Edge) Edge {
	for _, e := range edges {
		if e.From == e.To {
			return e
		}
	}
	for _, e := range edges {
		if e.Nullable {
			return e
		}
	}
	return edges[0]
}

func (g *Graph) removeEdge(edge Edge) {
	out := g.out[edge.From]
	for i, e := range out {
		if e.To == edge.To && e.Column == edge.Column {
			g.out[edge.From] = append(out[:i], out[i+1:]...)
			return
		}
	}
}

// TopoSort orders tables so every table appears after everything it
// references. Ready candidates resolve by first-discovery order, making the
// result unique for a given input. Call BreakCycles first; a leftover cycle here
// is an error.
func (g *Graph) TopoSort() ([]string, error) {
	deps := make(map[string]int, len(g.nodes))
	incoming := make(map[string][]string)
	for _, v := range g.nodes {
		for _, e := range g.out[v] {
			if e.To == v {
				continue
			}
			deps[v]++
			incoming[e.To] = append(incoming[e.To], v)
		}
	}

	var ready []string
	for _, v := range g.nodes {
		if deps[v] == 0 {
			ready = append(ready, v)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)
		for _, w := range incoming[v] {
			deps[w]--
			if deps[w] == 0 {
				ready = g.insertByIndex(ready, w)
			}
		}
	}
	if len(order) != len(g.nodes) {
		return nil, &CycleError{Cycles: g.SimpleCycles()}
	}
	return order, nil
}

func (g *Graph) insertByIndex(ready []string, w string) []string {
	wi := g.index[w]
	for i, v := range ready {
		if g.index[v] > wi {
			ready = append(ready, "")
			copy(ready[i+1:], ready[i:])
			ready[i] = w
			return ready
		}
	}
	return append(ready, w)
}
