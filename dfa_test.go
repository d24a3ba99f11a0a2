package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDFAFromNFAPreservesLanguage(t *testing.T) {
	regexes := []string{
		"(a|b)*(b|c)+",
		"(#|a|ab|abc)",
		"(aaaa|ab)",
		"((a|ab)(c|cd)+(e|ef)*)",
		"b*a",
	}
	words := []string{"", "a", "b", "c", "ab", "abc", "abbab", "bbbbbbbbb", "ababababbcbcbcbc",
		"aaaa", "abaca", "accde", "abccd", "abccdeefefe", "bbbbbbba", "bbab"}

	for _, r := range regexes {
		nfa, err := ParseRegex(r)
		require.NoError(t, err)
		dfa, err := NewDFAFromNFA(nfa)
		require.NoError(t, err)
		for _, w := range words {
			assert.Equalf(t, nfa.Allows(w), dfa.Allows(w), "regex %q word %q", r, w)
		}
	}
}

func TestDFAUnsupportedSize(t *testing.T) {
	nfa := NewNFAOfSize(64)
	_, err := NewDFAFromNFA(nfa)
	assert.ErrorIs(t, err, ErrUnsupportedSize)
}

func TestDFAIsFullAndMakeFull(t *testing.T) {
	// Two states, only state 0 has a transition on 'a'.
	edges := []DFAEdgeView{{From: 0, To: 1, Symbol: 'a'}}
	terminal := []bool{false, true}
	dfa := NewDFAFromTable(2, edges, terminal)
	assert.False(t, dfa.IsFull())

	dfa.MakeFull()
	assert.True(t, dfa.IsFull())
	assert.Equal(t, 3, dfa.VertexCount(), "make_full appends exactly one trap state")
	assert.False(t, dfa.Terminal(2), "the appended trap state must not be terminal")
	assert.True(t, dfa.Allows("a"))
	assert.False(t, dfa.Allows("aa"), "the second 'a' routes into the trap state")

	// Calling it again is a no-op.
	before := dfa.VertexCount()
	dfa.MakeFull()
	assert.Equal(t, before, dfa.VertexCount())
}

func TestDFAComplementLaw(t *testing.T) {
	// Each word battery is drawn only from the bytes that actually appear in
	// its regex: the complement law holds only within the totalized
	// alphabet Σ, since a byte absent from Σ has no transition at all and so
	// is rejected by both an automaton and its complement alike.
	cases := []struct {
		regex string
		words []string
	}{
		{"(a|b)*(b|c)+", []string{"b", "c", "ab", "abc", "abbab", "bbbbbbbbb", "ababababbcbcbcbc", "", "a", "aaaa", "abaca"}},
		{"(#|a|ab|abc)", []string{"", "a", "ab", "abc", "b", "c", "abbab", "aaaa"}},
		{"(aaaa|ab)", []string{"ab", "aaaa", "", "a", "aaa"}},
		{"((a|ab)(c|cd)+(e|ef)*)", []string{"abc", "accde", "abccd", "abccdeefefe", "", "ab", "accdeff"}},
		{"b*a", []string{"a", "bbbbbbba", "", "b", "bbbbb", "bbab"}},
	}

	for _, c := range cases {
		nfa, err := ParseRegex(c.regex)
		require.NoError(t, err)
		dfa, err := NewDFAFromNFA(nfa)
		require.NoError(t, err)
		dfa.Minimize()
		dfa.MakeFull()
		dfa.Complement()
		for _, w := range c.words {
			assert.NotEqualf(t, nfa.Allows(w), dfa.Allows(w), "regex %q word %q", c.regex, w)
		}
	}
}

// TestMinimizeCollapsesRedundantStates builds a 9-state DFA over a single
// symbol with five redundant duplicates of a canonical 4-state counting
// cycle (terminal only at remainder 0), and checks minimization collapses
// it to exactly 4 states without changing the accepted language.
func TestMinimizeCollapsesRedundantStates(t *testing.T) {
	edges := []DFAEdgeView{
		{From: 0, To: 1, Symbol: 'a'},
		{From: 1, To: 2, Symbol: 'a'},
		{From: 2, To: 3, Symbol: 'a'},
		{From: 3, To: 0, Symbol: 'a'},
		{From: 4, To: 1, Symbol: 'a'}, // duplicate of 0
		{From: 5, To: 2, Symbol: 'a'}, // duplicate of 1
		{From: 6, To: 3, Symbol: 'a'}, // duplicate of 2
		{From: 7, To: 0, Symbol: 'a'}, // duplicate of 3
		{From: 8, To: 1, Symbol: 'a'}, // duplicate of 0
	}
	terminal := []bool{true, false, false, false, true, false, false, false, true}
	dfa := NewDFAFromTable(9, edges, terminal)

	words := []string{"", "a", "aa", "aaa", "aaaa", "aaaaa", "aaaaaaaa", "aaaaaaaaaaaa"}
	before := make([]bool, len(words))
	for i, w := range words {
		before[i] = dfa.Allows(w)
	}

	dfa.Minimize()
	assert.Equal(t, 4, dfa.VertexCount())
	for i, w := range words {
		assert.Equalf(t, before[i], dfa.Allows(w), "word %q", w)
	}
}
