package automata

// RegexToMinDFA implements the regex → minimal DFA pipeline: parse, build
// the Thompson NFA, determinize via subset construction, then minimize.
func RegexToMinDFA(pattern string) (*DFA, error) {
	nfa, err := ParseRegex(pattern)
	if err != nil {
		return nil, err
	}
	dfa, err := NewDFAFromNFA(nfa)
	if err != nil {
		return nil, err
	}
	dfa.Minimize()
	return dfa, nil
}

// RegexToComplementRegex implements the regex → regex-of-complement
// pipeline: parse, build the minimal DFA, totalize and complement it, then
// read the complement's language back off as a regex via RFA state
// elimination.
func RegexToComplementRegex(pattern string) (string, error) {
	nfa, err := ParseRegex(pattern)
	if err != nil {
		return "", err
	}
	dfa, err := NewDFAFromNFA(nfa)
	if err != nil {
		return "", err
	}
	dfa.Minimize()
	dfa.MakeFull()
	dfa.Complement()

	rfa := NewRFA(dfa.ToNFA())
	return rfa.ToRegex()
}
