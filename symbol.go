package automata

// Symbol is a label on an NFA/RFA edge. For an NFA it is zero or more raw
// bytes (zero meaning ε); for an RFA it is a regex fragment. The external
// textual formats spell ε as the sigil "#"; Symbol never holds that sigil
// itself — decoding/encoding happens only at the regex-parser and format
// package boundaries.
type Symbol = string

// Epsilon is the empty label, denoting a transition that consumes no input.
const Epsilon Symbol = ""

// edge is a forward (outgoing) adjacency entry.
type edge struct {
	label Symbol
	to    int
}

// redge is a reverse (incoming) adjacency entry, the mirror of edge.
type redge struct {
	label Symbol
	from  int
}

// NFAEdgeView is a read-only description of one NFA edge, used by callers
// outside the package (the format package's dump routines) that need to
// enumerate edges without reaching into unexported adjacency slices.
type NFAEdgeView struct {
	From  int
	To    int
	Label Symbol
}

// DFAEdgeView is the DFA counterpart of NFAEdgeView; Symbol here is always
// exactly one byte.
type DFAEdgeView struct {
	From   int
	To     int
	Symbol byte
}
