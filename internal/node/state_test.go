package node_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psanford/generals/internal/node"
	"github.com/psanford/generals/internal/transport"
)

func TestNewState_Defaults(t *testing.T) {
	s := node.NewState()
	assert.Equal(t, node.RoleLieutenant, s.Role())
	assert.True(t, s.Alive())
	assert.False(t, s.Faulty())

	_, ok := s.KnownCoordinator()
	assert.False(t, ok)

	_, ok = s.LastMajority()
	assert.False(t, ok)
}

func TestState_KnownCoordinatorSetAndClear(t *testing.T) {
	s := node.NewState()
	s.SetKnownCoordinator(18814)

	port, ok := s.KnownCoordinator()
	assert.True(t, ok)
	assert.Equal(t, int64(18814), port)

	s.ClearKnownCoordinator()
	_, ok = s.KnownCoordinator()
	assert.False(t, ok)
}

func TestState_LastMajority(t *testing.T) {
	s := node.NewState()
	s.SetLastMajority(transport.Retreat)

	m, ok := s.LastMajority()
	assert.True(t, ok)
	assert.Equal(t, transport.Retreat, m)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "primary", node.RoleCommander.String())
	assert.Equal(t, "secondary", node.RoleLieutenant.String())
}
