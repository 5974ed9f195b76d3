// Package consensus implements the protocol-level rules shared by the
// commander-side Order Dispatch (spec.md §4.5, C5) and lieutenant-side
// Opinion Exchange (spec.md §4.4, C6): the faulty mutation rule, the
// majority tie-break, the verdict grammar, and the buffered fan-in
// primitive ("opinion_buffer") both sides wait on.
package consensus

import (
	"math/rand/v2"

	"github.com/psanford/generals/internal/transport"
)

// Mutate implements spec.md §4.6: a non-faulty node forwards an opinion
// unchanged; a faulty node independently flips it with probability ~1/2
// on every call. Per spec.md §9 ("Open question: mutate probability"),
// the contract is "approximately 1/2, independent per call" — the source
// project's randint(1,10)%2==0 detail is not load-bearing and is not
// reproduced.
func Mutate(faulty bool, o transport.Opinion) transport.Opinion {
	if !faulty {
		return o
	}
	if rand.IntN(2) == 0 {
		return flip(o)
	}
	return o
}

func flip(o transport.Opinion) transport.Opinion {
	if o == transport.Attack {
		return transport.Retreat
	}
	return transport.Attack
}
