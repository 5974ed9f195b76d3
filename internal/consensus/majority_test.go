package consensus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psanford/generals/internal/consensus"
	"github.com/psanford/generals/internal/transport"
)

func TestMajority_Empty(t *testing.T) {
	m, ok := consensus.Majority(nil)
	assert.False(t, ok)
	assert.Equal(t, transport.Opinion(""), m)
}

func TestMajority_ClearWinner(t *testing.T) {
	m, ok := consensus.Majority([]transport.Opinion{
		transport.Attack, transport.Retreat, transport.Attack, transport.Attack,
	})
	assert.True(t, ok)
	assert.Equal(t, transport.Attack, m)
}

func TestMajority_TieBreaksByFirstAppearance(t *testing.T) {
	m, ok := consensus.Majority([]transport.Opinion{
		transport.Retreat, transport.Attack,
	})
	assert.True(t, ok)
	assert.Equal(t, transport.Retreat, m, "equal counts must favor the first-seen opinion")

	m, ok = consensus.Majority([]transport.Opinion{
		transport.Attack, transport.Retreat,
	})
	assert.True(t, ok)
	assert.Equal(t, transport.Attack, m)
}

func TestMajority_Single(t *testing.T) {
	m, ok := consensus.Majority([]transport.Opinion{transport.Retreat})
	assert.True(t, ok)
	assert.Equal(t, transport.Retreat, m)
}
