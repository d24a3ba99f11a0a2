package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddVertexDropsSelfLoop(t *testing.T) {
	a := NewNFA()
	next := a.VertexCount()
	v := a.AddVertex(nil, []OutEdge{{Label: Epsilon, To: next}}, true)
	assert.Equal(t, next, v)
	assert.Empty(t, a.out[v], "a self-loop request in To targeting the new vertex itself should be dropped silently")
	assert.True(t, a.Terminal(v))
}

func TestAddVertexWiresIncomingEdge(t *testing.T) {
	a := NewNFA()
	v := a.AddVertex([]InEdge{{From: 0, Label: "x"}}, nil, true)
	assert.True(t, a.Allows("x"))
	assert.False(t, a.Allows(""))
	assert.False(t, a.Allows("xx"))
	_ = v
}

func TestExpandEdgesSingleByteLabels(t *testing.T) {
	a := NewNFA()
	// vertex 0 -> vertex 1 via a 3-byte edge, vertex 1 terminal
	a.AddVertex([]InEdge{{From: 0, Label: "abc"}}, nil, true)
	before := a.VertexCount()
	a.ExpandEdges()
	assert.Greater(t, a.VertexCount(), before, "expanding a multi-byte edge must add intermediate vertices")
	assert.False(t, a.HasLongEdges())
	assert.True(t, a.Allows("abc"))
	assert.False(t, a.Allows("ab"))
}

func TestEmptyEdgeRemoval(t *testing.T) {
	a := NewNFA()
	mid := a.AddVertex([]InEdge{{From: 0, Label: Epsilon}}, nil, false)
	a.AddVertex([]InEdge{{From: mid, Label: "x"}}, nil, true)
	before := a.EdgeCount()
	a.RemoveEmptyEdges()
	assert.False(t, a.HasEmptyEdges())
	assert.LessOrEqual(t, a.EdgeCount(), before+1, "eliminating epsilon edges should promote, not multiply, edges")
	assert.True(t, a.Allows("x"))
}

func TestNormalizationPreservesLanguage(t *testing.T) {
	nfa, err := ParseRegex("(a|b)*(b|c)+")
	if err != nil {
		t.Fatal(err)
	}
	words := []string{"b", "c", "ab", "abc", "abbab", "bbbbbbbbb", "ababababbcbcbcbc", "", "a", "aaaa", "abaca"}

	expanded := nfa.Clone()
	expanded.ExpandEdges()
	normalized := expanded.Clone()
	normalized.RemoveEmptyEdges()

	for _, w := range words {
		want := nfa.Allows(w)
		assert.Equal(t, want, expanded.Allows(w), "expand_edges must preserve language for %q", w)
		assert.Equal(t, want, normalized.Allows(w), "remove_empty_edges must preserve language for %q", w)
	}
}

func TestMakeOneTerminalVertexIdempotent(t *testing.T) {
	a := NewNFA()
	a.SetTerminal(0, true)
	before := a.VertexCount()
	a.MakeOneTerminalVertex()
	assert.Equal(t, before, a.VertexCount(), "a single already-terminal last vertex is a no-op")
}

func TestParallelAcceptsEitherOperand(t *testing.T) {
	left, err := ParseRegex("a")
	if err != nil {
		t.Fatal(err)
	}
	right, err := ParseRegex("b")
	if err != nil {
		t.Fatal(err)
	}
	left.Parallel(right)
	assert.True(t, left.Allows("a"))
	assert.True(t, left.Allows("b"))
	assert.False(t, left.Allows("ab"))
}

func TestConsecutiveConcatenatesOperands(t *testing.T) {
	left, err := ParseRegex("a")
	if err != nil {
		t.Fatal(err)
	}
	right, err := ParseRegex("b")
	if err != nil {
		t.Fatal(err)
	}
	left.Consecutive(right)
	assert.True(t, left.Allows("ab"))
	assert.False(t, left.Allows("a"))
	assert.False(t, left.Allows("b"))
}

func TestKleenePlusRequiresAtLeastOne(t *testing.T) {
	nfa, err := ParseRegex("a+")
	if err != nil {
		t.Fatal(err)
	}
	assert.False(t, nfa.Allows(""))
	assert.True(t, nfa.Allows("a"))
	assert.True(t, nfa.Allows("aaaa"))
}
