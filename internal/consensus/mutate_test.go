package consensus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psanford/generals/internal/consensus"
	"github.com/psanford/generals/internal/transport"
)

func TestMutate_NonFaultyNeverFlips(t *testing.T) {
	for range 50 {
		assert.Equal(t, transport.Attack, consensus.Mutate(false, transport.Attack))
		assert.Equal(t, transport.Retreat, consensus.Mutate(false, transport.Retreat))
	}
}

func TestMutate_FaultyFlipsRoughlyHalfTheTime(t *testing.T) {
	const n = 2000
	flips := 0
	for range n {
		if consensus.Mutate(true, transport.Attack) == transport.Retreat {
			flips++
		}
	}
	// wide tolerance: this asserts the distribution isn't degenerate
	// (always-flip or never-flip), not an exact 50% split.
	assert.Greater(t, flips, n/4)
	assert.Less(t, flips, n-n/4)
}

func TestMutate_OnlyEverProducesAKnownOpinion(t *testing.T) {
	for range 100 {
		got := consensus.Mutate(true, transport.Attack)
		assert.Contains(t, []transport.Opinion{transport.Attack, transport.Retreat}, got)
	}
}
