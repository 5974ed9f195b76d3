package consensus

import (
	"fmt"

	"github.com/psanford/generals/internal/transport"
)

// Quorum is floor(n/2)+1 (spec.md GLOSSARY).
func Quorum(n int) int {
	return n/2 + 1
}

// Required is the 3f+1 fault bound (spec.md GLOSSARY).
func Required(f int) int {
	return 3*f + 1
}

// RefusalMessage is returned by execute_order when invoked on a
// non-commander (spec.md §6 "Non-commander refusal string").
const RefusalMessage = "Cannot execute order from a secondary general"

// Verdict renders the commander's verdict string (spec.md §6 "Verdict
// string grammar"). n is the node count at dispatch time, f the observed
// faulty lieutenant count, majority/hasMajority the outcome of Majority
// over the commander's opinion buffer.
//
// The trailing "suggest attack"/"suggest retreat" literals are fixed
// tokens from the source grammar and do not vary with majority — spec.md
// calls this out explicitly as a quirk to preserve verbatim.
func Verdict(n, f int, majority transport.Opinion, hasMajority bool) string {
	q := Quorum(n)

	if Required(f) > n || !hasMajority {
		return fmt.Sprintf(
			"Execute order: cannot be determined - not enough generals in the system! %d faulty node(s) in the system - %d out of %d quorum not consistent",
			f, q, n,
		)
	}

	if f == 0 {
		return fmt.Sprintf(
			"Execute order: %s! Non-faulty nodes in the system - %d out of %d quorum suggest attack",
			majority, q, n,
		)
	}

	return fmt.Sprintf(
		"Execute order: %s! %d faulty node(s) in the system - %d out of %d quorum suggest retreat",
		majority, f, q, n,
	)
}
