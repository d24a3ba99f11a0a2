package automata

import "errors"

// Error kinds raised by the core engine. Each is a sentinel usable with
// errors.Is; callers decide whether to abort or recover, the core never
// retries.
var (
	// ErrMalformedRegex covers an empty regex, unbalanced parens, a stray
	// operator, a missing operand, or an operator-only subexpression.
	ErrMalformedRegex = errors.New("malformed regex")

	// ErrUnsupportedSize is raised by subset construction when the source
	// NFA has 64 or more vertices; the bitmask-of-states encoding can't
	// represent the subset.
	ErrUnsupportedSize = errors.New("unsupported automaton size")

	// ErrInvariantViolation is raised when RFA state elimination is asked
	// to remove a protected vertex (the start state or the sink).
	ErrInvariantViolation = errors.New("invariant violation")
)
