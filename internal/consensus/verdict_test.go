package consensus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psanford/generals/internal/consensus"
	"github.com/psanford/generals/internal/transport"
)

func TestVerdict_NotEnoughGenerals(t *testing.T) {
	// n=3, f=1: 3f+1=4 > n=3.
	got := consensus.Verdict(3, 1, transport.Retreat, true)
	want := "Execute order: cannot be determined - not enough generals in the system! 1 faulty node(s) in the system - 2 out of 3 quorum not consistent"
	assert.Equal(t, want, got)
}

func TestVerdict_NoMajorityIsAlsoIndeterminate(t *testing.T) {
	got := consensus.Verdict(3, 0, "", false)
	want := "Execute order: cannot be determined - not enough generals in the system! 0 faulty node(s) in the system - 2 out of 3 quorum not consistent"
	assert.Equal(t, want, got)
}

func TestVerdict_HonestConsensus(t *testing.T) {
	// n=3, f=0.
	got := consensus.Verdict(3, 0, transport.Attack, true)
	want := "Execute order: attack! Non-faulty nodes in the system - 2 out of 3 quorum suggest attack"
	assert.Equal(t, want, got)
}

func TestVerdict_TolerableFault(t *testing.T) {
	// n=4, f=1: 3f+1=4 <= n=4.
	got := consensus.Verdict(4, 1, transport.Attack, true)
	want := "Execute order: attack! 1 faulty node(s) in the system - 3 out of 4 quorum suggest retreat"
	assert.Equal(t, want, got)
}

func TestVerdict_SingleNodeCluster(t *testing.T) {
	got := consensus.Verdict(1, 0, transport.Attack, true)
	want := "Execute order: attack! Non-faulty nodes in the system - 1 out of 1 quorum suggest attack"
	assert.Equal(t, want, got)
}

func TestQuorumAndRequired(t *testing.T) {
	assert.Equal(t, 1, consensus.Quorum(1))
	assert.Equal(t, 2, consensus.Quorum(3))
	assert.Equal(t, 3, consensus.Quorum(4))
	assert.Equal(t, 1, consensus.Required(0))
	assert.Equal(t, 4, consensus.Required(1))
}
