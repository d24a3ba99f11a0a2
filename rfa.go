package automata

import (
	"fmt"
	"strings"
)

// RFA is an NFA whose edge labels are regex fragments instead of literal
// bytes, used as the working form for state elimination. It embeds *NFA to
// reuse vertex/terminal bookkeeping (MakeOneTerminalVertex in particular);
// Symbol's meaning is simply reinterpreted.
type RFA struct {
	*NFA
}

// NewRFA wraps nfa as an RFA. Like the NFA combinators, it takes ownership
// of nfa; pass a clone to preserve the original.
func NewRFA(nfa *NFA) *RFA {
	return &RFA{nfa}
}

// removeVertex eliminates v, folding its self-loops into a starred regex
// fragment spliced between every predecessor/successor pair, then clears
// v's outgoing edges. Only the start vertex and the (post-consolidation,
// unique) sink are protected: removing either raises ErrInvariantViolation.
func (a *RFA) removeVertex(v int) error {
	if v == 0 {
		return fmt.Errorf("%w: cannot remove start vertex", ErrInvariantViolation)
	}
	if a.Terminal(v) {
		return fmt.Errorf("%w: cannot remove sink vertex", ErrInvariantViolation)
	}

	var loopParts []string
	var selfLoops []edge
	for _, e := range a.out[v] {
		if e.to == v {
			selfLoops = append(selfLoops, e)
			if e.label != Epsilon {
				loopParts = append(loopParts, "("+string(e.label)+")")
			}
		}
	}
	for _, e := range selfLoops {
		a.removeEdge(v, e)
	}
	loopRegex := ""
	if len(loopParts) > 0 {
		loopRegex = "(" + strings.Join(loopParts, "|") + ")*"
	}

	preds := a.in[v]
	for _, p := range preds {
		a.out[p.from] = removeOutEdge(a.out[p.from], edge{p.label, v})
		for _, succ := range a.out[v] {
			a.out[p.from] = append(a.out[p.from], edge{Symbol(string(p.label) + loopRegex + string(succ.label)), succ.to})
		}
	}
	for _, succ := range a.out[v] {
		a.in[succ.to] = removeInEdge(a.in[succ.to], redge{succ.label, v})
		for _, p := range preds {
			a.in[succ.to] = append(a.in[succ.to], redge{Symbol(string(p.label) + loopRegex + string(succ.label)), p.from})
		}
	}

	a.out[v] = nil
	return nil
}

// ToRegex reduces the automaton to a single regex equivalent to its
// language via state elimination: consolidate to one sink, eliminate every
// internal vertex in turn, then read off the regex from whatever edges
// remain between start and sink. The result is not guaranteed minimal in
// size, only language-equivalent.
func (a *RFA) ToRegex() (string, error) {
	// A sole terminal that is already the last vertex but still has outgoing
	// edges cannot serve as the sink: appending an isolated non-terminal
	// vertex makes MakeOneTerminalVertex add a fresh, edge-free sink.
	last := a.VertexCount() - 1
	if a.TerminalCount() == 1 && a.Terminal(last) && len(a.out[last]) > 0 {
		a.AddVertex(nil, nil, false)
	}
	a.MakeOneTerminalVertex()
	sink := a.VertexCount() - 1
	for v := 1; v < sink; v++ {
		if err := a.removeVertex(v); err != nil {
			return "", err
		}
	}

	var regexParts, loopParts []string
	for _, e := range a.out[0] {
		if e.to == 0 {
			if e.label != Epsilon {
				loopParts = append(loopParts, "("+string(e.label)+")")
			}
			continue
		}
		if e.label == Epsilon {
			regexParts = append(regexParts, "(#)")
		} else {
			regexParts = append(regexParts, "("+string(e.label)+")")
		}
	}

	if len(regexParts) == 0 && len(loopParts) == 0 {
		return "#", nil
	}

	result := strings.Join(regexParts, "|")
	if len(loopParts) > 0 {
		result = "(" + strings.Join(loopParts, "|") + ")*(" + result + ")"
	}
	return result, nil
}
