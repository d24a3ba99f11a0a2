package automata

import (
	"fmt"
	"sort"
)

// DFA is a deterministic finite automaton over bytes: a partial transition
// function per state (at most one target per byte) and a per-state terminal
// flag. Vertex 0 is always the start.
type DFA struct {
	trans    []map[byte]int
	terminal []bool
}

// NewDFAFromTable builds a DFA directly from a transition table and
// terminal flags, trusting the caller (the format package) to have already
// rejected conflicting transitions.
func NewDFAFromTable(n int, edges []DFAEdgeView, terminal []bool) *DFA {
	trans := make([]map[byte]int, n)
	for i := range trans {
		trans[i] = map[byte]int{}
	}
	for _, e := range edges {
		trans[e.From][e.Symbol] = e.To
	}
	term := make([]bool, n)
	copy(term, terminal)
	return &DFA{trans: trans, terminal: term}
}

// NewDFAFromNFA runs the subset construction: the NFA is first normalized
// (edges expanded to single bytes, ε-edges removed) on a private copy, then
// each reachable subset of NFA states becomes one DFA state, numbered in
// the order it is first discovered (vertex 0 is always the subset {0}).
// Subsets are encoded as a uint64 bitmask, so NFAs with 64 or more states
// are rejected.
func NewDFAFromNFA(nfa *NFA) (*DFA, error) {
	work := nfa.Clone()
	work.ExpandEdges()
	work.RemoveEmptyEdges()

	n := work.VertexCount()
	if n >= 64 {
		return nil, fmt.Errorf("%w: %d NFA states", ErrUnsupportedSize, n)
	}

	const start = uint64(1)
	numbering := map[uint64]int{start: 0}
	order := []uint64{start}
	dfa := &DFA{trans: []map[byte]int{{}}, terminal: []bool{false}}

	for i := 0; i < len(order); i++ {
		subset := order[i]
		from := numbering[subset]
		for c := 0; c < 256; c++ {
			symbol := byte(c)
			var image uint64
			for v := 0; v < n; v++ {
				if subset&(1<<uint(v)) == 0 {
					continue
				}
				for _, e := range work.out[v] {
					if len(e.label) == 1 && e.label[0] == symbol {
						image |= 1 << uint(e.to)
					}
				}
			}
			if image == 0 {
				continue
			}
			to, ok := numbering[image]
			if !ok {
				to = len(numbering)
				numbering[image] = to
				dfa.trans = append(dfa.trans, map[byte]int{})
				dfa.terminal = append(dfa.terminal, false)
				order = append(order, image)
			}
			dfa.trans[from][symbol] = to
		}
	}

	for subset, idx := range numbering {
		for v := 0; v < n; v++ {
			if subset&(1<<uint(v)) != 0 && work.terminal[v] {
				dfa.terminal[idx] = true
				break
			}
		}
	}

	return dfa, nil
}

// ToNFA re-expresses the DFA as an NFA with single-byte edges, used to feed
// an RFA for state elimination.
func (d *DFA) ToNFA() *NFA {
	nfa := NewNFAOfSize(len(d.trans))
	for v, m := range d.trans {
		for c, to := range m {
			nfa.AddRawEdge(v, to, Symbol(string(c)))
		}
	}
	for v, t := range d.terminal {
		nfa.SetTerminal(v, t)
	}
	return nfa
}

// Allows walks word from the start state, rejecting on a missing
// transition, and accepts iff the final state is terminal.
func (d *DFA) Allows(word string) bool {
	cur := 0
	for i := 0; i < len(word); i++ {
		to, ok := d.trans[cur][word[i]]
		if !ok {
			return false
		}
		cur = to
	}
	return d.terminal[cur]
}

// Size returns the number of states.
func (d *DFA) Size() int { return len(d.trans) }

// EdgeCount returns the total number of transitions.
func (d *DFA) EdgeCount() int {
	n := 0
	for _, m := range d.trans {
		n += len(m)
	}
	return n
}

// VertexCount is an alias for Size, matching the NFA accessor name.
func (d *DFA) VertexCount() int { return len(d.trans) }

// Terminal reports whether state v is terminal.
func (d *DFA) Terminal(v int) bool { return d.terminal[v] }

func (d *DFA) alphabet() map[byte]bool {
	alpha := map[byte]bool{}
	for _, m := range d.trans {
		for c := range m {
			alpha[c] = true
		}
	}
	return alpha
}

// IsFull reports whether every state has a transition for every symbol
// actually used anywhere in the automaton.
func (d *DFA) IsFull() bool {
	alpha := d.alphabet()
	for _, m := range d.trans {
		for c := range alpha {
			if _, ok := m[c]; !ok {
				return false
			}
		}
	}
	return true
}

// MakeFull totalizes the DFA: if it isn't already full, a trap state is
// appended (non-terminal, self-looping on every used symbol) and every
// missing (state, symbol) transition is routed to it.
func (d *DFA) MakeFull() {
	if d.IsFull() {
		return
	}
	alpha := d.alphabet()
	trap := len(d.trans)
	d.trans = append(d.trans, map[byte]int{})
	d.terminal = append(d.terminal, false)
	for c := range alpha {
		d.trans[trap][c] = trap
		for i := 0; i < trap; i++ {
			if _, ok := d.trans[i][c]; !ok {
				d.trans[i][c] = trap
			}
		}
	}
}

func sortedByteKeys(m map[byte]int) []byte {
	keys := make([]byte, 0, len(m))
	for c := range m {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Minimize totalizes the automaton in place and runs Hopcroft-style
// partition refinement on it: states split into terminal/non-terminal, then a worklist
// of (block, symbol) pairs, seeded with both blocks crossed with every
// symbol reachable from the start state, refines blocks until stable. The
// block containing the start state becomes state 0 of the quotient
// automaton.
func (d *DFA) Minimize() {
	d.MakeFull()
	n := len(d.trans)

	var nonterm, term []int
	for i := 0; i < n; i++ {
		if d.terminal[i] {
			term = append(term, i)
		} else {
			nonterm = append(nonterm, i)
		}
	}
	var partition [][]int
	if len(nonterm) > 0 {
		partition = append(partition, nonterm)
	}
	if len(term) > 0 {
		partition = append(partition, term)
	}

	startSymbols := sortedByteKeys(d.trans[0])

	type workItem struct {
		block  []int
		symbol byte
	}
	var queue []workItem
	for _, p := range partition {
		for _, c := range startSymbols {
			queue = append(queue, workItem{p, c})
		}
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		splitter := make(map[int]bool, len(item.block))
		for _, v := range item.block {
			splitter[v] = true
		}

		var next [][]int
		for _, r := range partition {
			var r1, r2 []int
			for _, v := range r {
				if to, ok := d.trans[v][item.symbol]; ok && splitter[to] {
					r1 = append(r1, v)
				} else {
					r2 = append(r2, v)
				}
			}
			if len(r1) > 0 && len(r2) > 0 {
				next = append(next, r1, r2)
				for _, c := range startSymbols {
					queue = append(queue, workItem{r1, c}, workItem{r2, c})
				}
			} else {
				next = append(next, r)
			}
		}
		partition = next
	}

	for i, p := range partition {
		found := false
		for _, v := range p {
			if v == 0 {
				found = true
				break
			}
		}
		if found {
			partition[0], partition[i] = partition[i], partition[0]
			break
		}
	}

	blockOf := make([]int, n)
	for bi, p := range partition {
		for _, v := range p {
			blockOf[v] = bi
		}
	}

	newN := len(partition)
	newTrans := make([]map[byte]int, newN)
	newTerminal := make([]bool, newN)
	for i := range newTrans {
		newTrans[i] = map[byte]int{}
	}
	for v := 0; v < n; v++ {
		for c, to := range d.trans[v] {
			newTrans[blockOf[v]][c] = blockOf[to]
		}
		if d.terminal[v] {
			newTerminal[blockOf[v]] = true
		}
	}

	d.trans = newTrans
	d.terminal = newTerminal
}

// Complement totalizes the automaton and flips every terminal flag.
func (d *DFA) Complement() {
	d.MakeFull()
	for i := range d.terminal {
		d.terminal[i] = !d.terminal[i]
	}
}

// Transitions returns every transition, sorted by (From, Symbol) for
// deterministic output.
func (d *DFA) Transitions() []DFAEdgeView {
	views := make([]DFAEdgeView, 0, d.EdgeCount())
	for v, m := range d.trans {
		for c, to := range m {
			views = append(views, DFAEdgeView{From: v, To: to, Symbol: c})
		}
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].From != views[j].From {
			return views[i].From < views[j].From
		}
		return views[i].Symbol < views[j].Symbol
	})
	return views
}
