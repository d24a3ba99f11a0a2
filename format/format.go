// Package format reads and writes the plain-text automaton representations
// used to persist NFAs and DFAs between pipeline stages: a vertex count, an
// edge count, that many "from to label" triples, and a trailing list of
// terminal vertex indices. The ε sigil "#" of this text form is
// decoded/encoded here; the automata graphs store ε as the empty label.
package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/regexfa/automata"
)

var (
	// ErrNotDeterministic is returned by LoadDFA when the same state has two
	// outgoing edges on the same symbol to different targets.
	ErrNotDeterministic = errors.New("automaton is not deterministic")
	// ErrIOOrParse is returned for malformed or truncated input: a missing
	// field, an unparseable integer, or an out-of-range vertex index.
	ErrIOOrParse = errors.New("malformed automaton text")
)

// tokenizer splits a reader into whitespace-delimited tokens, mirroring the
// way istream::operator>> skips runs of whitespace including newlines.
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, bool) {
	if t.sc.Scan() {
		return t.sc.Text(), true
	}
	return "", false
}

func (t *tokenizer) nextInt() (int, error) {
	tok, ok := t.next()
	if !ok {
		return 0, fmt.Errorf("%w: unexpected end of input", ErrIOOrParse)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer, got %q", ErrIOOrParse, tok)
	}
	return n, nil
}

func decodeSymbol(tok string) automata.Symbol {
	if tok == "#" {
		return automata.Epsilon
	}
	return automata.Symbol(tok)
}

func encodeSymbol(s automata.Symbol) string {
	if s == automata.Epsilon {
		return "#"
	}
	return string(s)
}

// LoadNFA reads an NFA from its text form. Edge labels may be any non-empty
// byte string, or "#" for ε.
func LoadNFA(r io.Reader) (*automata.NFA, error) {
	t := newTokenizer(r)
	n, err := t.nextInt()
	if err != nil {
		return nil, err
	}
	m, err := t.nextInt()
	if err != nil {
		return nil, err
	}
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("%w: negative count", ErrIOOrParse)
	}

	nfa := automata.NewNFAOfSize(n)
	for i := 0; i < m; i++ {
		u, err := t.nextInt()
		if err != nil {
			return nil, err
		}
		v, err := t.nextInt()
		if err != nil {
			return nil, err
		}
		labelTok, ok := t.next()
		if !ok {
			return nil, fmt.Errorf("%w: missing edge label", ErrIOOrParse)
		}
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, fmt.Errorf("%w: edge vertex out of range (%d, %d)", ErrIOOrParse, u, v)
		}
		nfa.AddRawEdge(u, v, decodeSymbol(labelTok))
	}

	for {
		tok, ok := t.next()
		if !ok {
			break
		}
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: expected terminal index, got %q", ErrIOOrParse, tok)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: terminal index out of range: %d", ErrIOOrParse, idx)
		}
		nfa.SetTerminal(idx, true)
	}
	return nfa, nil
}

// DumpNFA writes nfa in the same text form LoadNFA reads.
func DumpNFA(w io.Writer, nfa *automata.NFA) error {
	edges := nfa.Edges()
	if _, err := fmt.Fprintf(w, "%d %d\n", nfa.VertexCount(), len(edges)); err != nil {
		return err
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%d %d %s\n", e.From, e.To, encodeSymbol(e.Label)); err != nil {
			return err
		}
	}
	first := true
	for v := 0; v < nfa.VertexCount(); v++ {
		if !nfa.Terminal(v) {
			continue
		}
		if !first {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d", v); err != nil {
			return err
		}
		first = false
	}
	_, err := fmt.Fprintln(w)
	return err
}

// LoadDFA reads a DFA from its text form. Edge labels must be exactly one
// byte; a state with two edges on the same byte to different targets is
// rejected as ErrNotDeterministic rather than silently overwritten (an exact
// duplicate edge is accepted).
func LoadDFA(r io.Reader) (*automata.DFA, error) {
	t := newTokenizer(r)
	n, err := t.nextInt()
	if err != nil {
		return nil, err
	}
	m, err := t.nextInt()
	if err != nil {
		return nil, err
	}
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("%w: negative count", ErrIOOrParse)
	}

	seen := make([]map[byte]int, n)
	for i := range seen {
		seen[i] = map[byte]int{}
	}
	edges := make([]automata.DFAEdgeView, 0, m)
	for i := 0; i < m; i++ {
		u, err := t.nextInt()
		if err != nil {
			return nil, err
		}
		v, err := t.nextInt()
		if err != nil {
			return nil, err
		}
		labelTok, ok := t.next()
		if !ok {
			return nil, fmt.Errorf("%w: missing edge label", ErrIOOrParse)
		}
		if len(labelTok) != 1 {
			return nil, fmt.Errorf("%w: DFA edge label must be a single character, got %q", ErrIOOrParse, labelTok)
		}
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, fmt.Errorf("%w: edge vertex out of range (%d, %d)", ErrIOOrParse, u, v)
		}
		c := labelTok[0]
		if to, conflict := seen[u][c]; conflict && to != v {
			return nil, fmt.Errorf("%w: state %d has two edges on %q", ErrNotDeterministic, u, c)
		}
		seen[u][c] = v
		edges = append(edges, automata.DFAEdgeView{From: u, To: v, Symbol: c})
	}

	terminal := make([]bool, n)
	for {
		tok, ok := t.next()
		if !ok {
			break
		}
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: expected terminal index, got %q", ErrIOOrParse, tok)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: terminal index out of range: %d", ErrIOOrParse, idx)
		}
		terminal[idx] = true
	}
	return automata.NewDFAFromTable(n, edges, terminal), nil
}

// DumpDFA writes dfa in the same text form LoadDFA reads.
func DumpDFA(w io.Writer, dfa *automata.DFA) error {
	edges := dfa.Transitions()
	if _, err := fmt.Fprintf(w, "%d %d\n", dfa.VertexCount(), len(edges)); err != nil {
		return err
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "%d %d %c\n", e.From, e.To, e.Symbol); err != nil {
			return err
		}
	}
	first := true
	for v := 0; v < dfa.VertexCount(); v++ {
		if !dfa.Terminal(v) {
			continue
		}
		if !first {
			if _, err := fmt.Fprint(w, " "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%d", v); err != nil {
			return err
		}
		first = false
	}
	_, err := fmt.Fprintln(w)
	return err
}
