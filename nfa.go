package automata

import "sort"

// NFA is a directed labeled multigraph over bytes: forward and reverse
// adjacency kept in lockstep, a per-vertex terminal flag, and an implicit
// start at vertex 0. Mutations are total on well-formed inputs; the only
// documented exception to "every request succeeds" is AddVertex silently
// dropping a self-loop request (see AddVertex).
type NFA struct {
	out      [][]edge
	in       [][]redge
	terminal []bool
}

// InEdge describes an edge from an existing vertex into a vertex being
// created by AddVertex.
type InEdge struct {
	From  int
	Label Symbol
}

// OutEdge describes an edge from a vertex being created by AddVertex to an
// existing vertex.
type OutEdge struct {
	Label Symbol
	To    int
}

// NewNFA returns the empty NFA: one non-terminal vertex, numbered 0.
func NewNFA() *NFA {
	return &NFA{
		out:      [][]edge{nil},
		in:       [][]redge{nil},
		terminal: []bool{false},
	}
}

// NewNFAOfSize builds an NFA with n disconnected, non-terminal vertices and
// no edges. It exists for bulk construction (the format package's loader)
// rather than the single-vertex invariant NewNFA documents.
func NewNFAOfSize(n int) *NFA {
	return &NFA{
		out:      make([][]edge, n),
		in:       make([][]redge, n),
		terminal: make([]bool, n),
	}
}

// AddRawEdge appends an edge between two existing vertices without the
// self-loop special-casing AddVertex applies. Callers (the format package)
// are responsible for validating that from/to are in range; this method
// trusts its caller, matching the core's general stance that well-formed
// requests never fail.
func (a *NFA) AddRawEdge(from, to int, label Symbol) {
	a.out[from] = append(a.out[from], edge{label, to})
	a.in[to] = append(a.in[to], redge{label, from})
}

// SetTerminal marks vertex v terminal or not.
func (a *NFA) SetTerminal(v int, terminal bool) {
	a.terminal[v] = terminal
}

// AddVertex appends a new vertex, wires the incoming edges in "from" and the
// outgoing edges in "to", and marks it terminal if requested. A request in
// "to" whose target is the new vertex itself is dropped silently: this
// mirrors the original implementation, not a bug to fix.
func (a *NFA) AddVertex(from []InEdge, to []OutEdge, terminal bool) int {
	v := len(a.out)
	a.out = append(a.out, nil)
	a.in = append(a.in, nil)
	for _, e := range from {
		a.out[e.From] = append(a.out[e.From], edge{e.Label, v})
		a.in[v] = append(a.in[v], redge{e.Label, e.From})
	}
	for _, e := range to {
		if e.To == v {
			continue
		}
		a.out[v] = append(a.out[v], edge{e.Label, e.To})
		a.in[e.To] = append(a.in[e.To], redge{e.Label, v})
	}
	a.terminal = append(a.terminal, terminal)
	return v
}

func removeOutEdge(edges []edge, target edge) []edge {
	for i, e := range edges {
		if e == target {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}

func removeInEdge(edges []redge, target redge) []redge {
	for i, e := range edges {
		if e == target {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}

func (a *NFA) removeEdge(v int, e edge) {
	a.out[v] = removeOutEdge(a.out[v], e)
	a.in[e.to] = removeInEdge(a.in[e.to], redge{e.label, v})
}

// ExpandEdges replaces every edge whose label is two or more bytes with a
// chain of fresh non-terminal vertices so each surviving edge label is a
// single byte or ε. The per-source snapshot of long edges keeps the loop
// from iterating over an edge list that expansion itself modifies.
func (a *NFA) ExpandEdges() {
	for v := 0; v < len(a.out); v++ {
		var saved []edge
		for _, e := range a.out[v] {
			if len(e.label) >= 2 {
				saved = append(saved, e)
			}
		}
		for _, e := range saved {
			a.expandEdge(v, e)
		}
	}
}

func (a *NFA) expandEdge(v int, e edge) {
	n := len(e.label)
	last := v
	for i := 0; i < n-2; i++ {
		last = a.AddVertex([]InEdge{{From: last, Label: Symbol(e.label[i : i+1])}}, nil, false)
	}
	a.AddVertex(
		[]InEdge{{From: last, Label: Symbol(e.label[n-2 : n-1])}},
		[]OutEdge{{Label: Symbol(e.label[n-1:]), To: e.to}},
		false,
	)
	a.removeEdge(v, e)
}

// RemoveEmptyEdges eliminates ε-edges: it computes the transitive closure of
// the ε-relation, promotes terminality and non-ε out-edges across it, then
// deletes the ε-edges themselves.
func (a *NFA) RemoveEmptyEdges() {
	n := len(a.out)
	closure := make([][]bool, n)
	for i := range closure {
		closure[i] = make([]bool, n)
	}
	for v := 0; v < n; v++ {
		for _, e := range a.out[v] {
			if e.label == Epsilon {
				closure[v][e.to] = true
			}
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !closure[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if closure[k][j] {
					closure[i][j] = true
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if closure[i][j] && a.terminal[j] {
				a.terminal[i] = true
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !closure[i][j] {
				continue
			}
			for _, e := range a.out[j] {
				if e.label == Epsilon {
					continue
				}
				if !containsEdge(a.out[i], e) {
					a.out[i] = append(a.out[i], e)
					a.in[e.to] = append(a.in[e.to], redge{e.label, i})
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if closure[i][j] {
				a.removeEdge(i, edge{Epsilon, j})
			}
		}
	}
}

func containsEdge(edges []edge, target edge) bool {
	for _, e := range edges {
		if e == target {
			return true
		}
	}
	return false
}

// Allows reports whether word is accepted, via a reverse DP over word
// positions that handles ε and multi-byte edges directly (no prior
// normalization is required).
func (a *NFA) Allows(word string) bool {
	n := len(a.out)
	m := len(word)
	dp := make([][]bool, m+1)
	dp[m] = append([]bool(nil), a.terminal...)
	for i := m - 1; i >= 0; i-- {
		dp[i] = make([]bool, n)
	}

	for pos := m; pos >= 0; pos-- {
		if pos != m {
			for v := 0; v < n; v++ {
				for _, e := range a.out[v] {
					if len(e.label) == 0 {
						continue
					}
					end := pos + len(e.label)
					if end > m {
						continue
					}
					if word[pos:end] == string(e.label) && dp[end][e.to] {
						dp[pos][v] = true
					}
				}
			}
		}

		queue := make([]int, 0, n)
		for v := 0; v < n; v++ {
			if dp[pos][v] {
				queue = append(queue, v)
			}
		}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, re := range a.in[v] {
				if re.label == Epsilon && !dp[pos][re.from] {
					dp[pos][re.from] = true
					queue = append(queue, re.from)
				}
			}
		}
	}

	return dp[0][0]
}

// TerminalCount returns the number of terminal vertices.
func (a *NFA) TerminalCount() int {
	n := 0
	for _, t := range a.terminal {
		if t {
			n++
		}
	}
	return n
}

// MakeOneTerminalVertex appends a fresh sink vertex with ε-edges from every
// existing terminal, clears the old terminal flags, and marks the sink
// terminal. It is a no-op if the last vertex is already the sole terminal.
func (a *NFA) MakeOneTerminalVertex() {
	if a.TerminalCount() == 1 && a.terminal[len(a.terminal)-1] {
		return
	}
	v := len(a.out)
	a.out = append(a.out, nil)
	a.in = append(a.in, nil)
	for i := range a.terminal {
		if a.terminal[i] {
			a.out[i] = append(a.out[i], edge{Epsilon, v})
			a.in[v] = append(a.in[v], redge{Epsilon, i})
			a.terminal[i] = false
		}
	}
	a.terminal = append(a.terminal, true)
}

// Parallel rewrites the receiver in place as the alternation of itself and
// other, consuming other. A fresh start ε-branches to both operands' starts;
// a fresh sink collects both operands' (consolidated) terminals.
func (a *NFA) Parallel(other *NFA) {
	a.MakeOneTerminalVertex()
	other.MakeOneTerminalVertex()
	n, m := len(a.out), len(other.out)
	sink := n + m + 1

	newOut := make([][]edge, n+m+2)
	newIn := make([][]redge, n+m+2)
	newOut[0] = append(newOut[0], edge{Epsilon, 1})
	newIn[1] = append(newIn[1], redge{Epsilon, 0})
	newOut[0] = append(newOut[0], edge{Epsilon, n + 1})
	newIn[n+1] = append(newIn[n+1], redge{Epsilon, 0})

	for i := 0; i < n; i++ {
		if a.terminal[i] {
			newOut[i+1] = append(newOut[i+1], edge{Epsilon, sink})
			newIn[sink] = append(newIn[sink], redge{Epsilon, i + 1})
		}
		for _, e := range a.out[i] {
			newOut[i+1] = append(newOut[i+1], edge{e.label, e.to + 1})
			newIn[e.to+1] = append(newIn[e.to+1], redge{e.label, i + 1})
		}
	}
	for i := 0; i < m; i++ {
		if other.terminal[i] {
			newOut[i+1+n] = append(newOut[i+1+n], edge{Epsilon, sink})
			newIn[sink] = append(newIn[sink], redge{Epsilon, i + 1 + n})
		}
		for _, e := range other.out[i] {
			newOut[i+1+n] = append(newOut[i+1+n], edge{e.label, e.to + 1 + n})
			newIn[e.to+1+n] = append(newIn[e.to+1+n], redge{e.label, i + 1 + n})
		}
	}

	a.out = newOut
	a.in = newIn
	a.terminal = make([]bool, n+m+2)
	a.terminal[sink] = true
}

// Consecutive rewrites the receiver in place as the concatenation of itself
// followed by other, consuming other: other's vertices are appended, an
// ε-edge links the receiver's (consolidated) terminal to other's start, and
// the terminals become exactly other's (shifted).
func (a *NFA) Consecutive(other *NFA) {
	a.MakeOneTerminalVertex()
	other.MakeOneTerminalVertex()

	base := len(a.out)
	a.out[base-1] = append(a.out[base-1], edge{Epsilon, base})
	a.out = append(a.out, make([][]edge, len(other.out))...)
	a.in = append(a.in, make([][]redge, len(other.out))...)
	a.in[base] = append(a.in[base], redge{Epsilon, base - 1})

	newTerminal := make([]bool, base+len(other.out))
	a.terminal = newTerminal

	for i := range other.out {
		if other.terminal[i] {
			a.terminal[i+base] = true
		}
		for _, e := range other.out[i] {
			a.out[i+base] = append(a.out[i+base], edge{e.label, e.to + base})
			a.in[e.to+base] = append(a.in[e.to+base], redge{e.label, i + base})
		}
	}
}

// KleeneStar rewrites the receiver in place as the Kleene closure of itself:
// a fresh vertex 0 becomes the sole terminal, with an ε-edge to the old
// start and ε-edges back to 0 from every old (consolidated) terminal.
func (a *NFA) KleeneStar() {
	a.MakeOneTerminalVertex()
	n := len(a.out)
	newOut := make([][]edge, n+1)
	newIn := make([][]redge, n+1)

	for i := 0; i < n; i++ {
		if a.terminal[i] {
			newOut[i+1] = append(newOut[i+1], edge{Epsilon, 0})
			newIn[0] = append(newIn[0], redge{Epsilon, i + 1})
		}
		for _, e := range a.out[i] {
			newOut[i+1] = append(newOut[i+1], edge{e.label, e.to + 1})
			newIn[e.to+1] = append(newIn[e.to+1], redge{e.label, i + 1})
		}
	}
	newOut[0] = append(newOut[0], edge{Epsilon, 1})
	newIn[1] = append(newIn[1], redge{Epsilon, 0})

	a.out = newOut
	a.in = newIn
	a.terminal = make([]bool, n+1)
	a.terminal[0] = true
}

// KleenePlus rewrites the receiver in place as the Kleene-plus closure of
// itself, implemented as x · x* with x* built on a clone so the original
// operand structure isn't required after the star.
func (a *NFA) KleenePlus() {
	star := a.Clone()
	star.KleeneStar()
	a.Consecutive(star)
}

// Clone returns a deep copy, for combinators that need their operand's
// shape without mutating the caller's original value.
func (a *NFA) Clone() *NFA {
	out := make([][]edge, len(a.out))
	for i, es := range a.out {
		out[i] = append([]edge(nil), es...)
	}
	in := make([][]redge, len(a.in))
	for i, es := range a.in {
		in[i] = append([]redge(nil), es...)
	}
	return &NFA{
		out:      out,
		in:       in,
		terminal: append([]bool(nil), a.terminal...),
	}
}

// VertexCount returns the number of vertices.
func (a *NFA) VertexCount() int { return len(a.out) }

// Terminal reports whether vertex v is terminal.
func (a *NFA) Terminal(v int) bool { return a.terminal[v] }

// EdgeCount returns the total number of edges.
func (a *NFA) EdgeCount() int {
	n := 0
	for _, es := range a.out {
		n += len(es)
	}
	return n
}

// HasEmptyEdges reports whether any edge is labeled ε.
func (a *NFA) HasEmptyEdges() bool {
	for _, es := range a.out {
		for _, e := range es {
			if e.label == Epsilon {
				return true
			}
		}
	}
	return false
}

// HasLongEdges reports whether any edge carries a label of two or more
// bytes.
func (a *NFA) HasLongEdges() bool {
	for _, es := range a.out {
		for _, e := range es {
			if len(e.label) > 1 {
				return true
			}
		}
	}
	return false
}

// Edges returns every edge, sorted by (From, To, Label) for deterministic
// output regardless of internal slice order.
func (a *NFA) Edges() []NFAEdgeView {
	views := make([]NFAEdgeView, 0, a.EdgeCount())
	for v, es := range a.out {
		for _, e := range es {
			views = append(views, NFAEdgeView{From: v, To: e.to, Label: e.label})
		}
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].From != views[j].From {
			return views[i].From < views[j].From
		}
		if views[i].To != views[j].To {
			return views[i].To < views[j].To
		}
		return views[i].Label < views[j].Label
	})
	return views
}
