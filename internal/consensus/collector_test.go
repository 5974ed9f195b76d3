package consensus_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psanford/generals/internal/consensus"
	"github.com/psanford/generals/internal/transport"
)

func TestCollector_WaitZeroReturnsImmediately(t *testing.T) {
	c := consensus.NewCollector()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	got, err := c.Wait(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollector_WaitReturnsExactlyN(t *testing.T) {
	c := consensus.NewCollector()

	go func() {
		c.Push(transport.Attack)
		c.Push(transport.Retreat)
		c.Push(transport.Attack)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := c.Wait(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.ElementsMatch(t, []transport.Opinion{transport.Attack, transport.Retreat, transport.Attack}, got)
}

func TestCollector_WaitRespectsContextCancellation(t *testing.T) {
	c := consensus.NewCollector()
	c.Push(transport.Attack)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Wait(ctx, 2)
	assert.Error(t, err, "only one of the two expected opinions ever arrives")
}
