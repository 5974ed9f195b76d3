package cluster_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psanford/generals/internal/cluster"
	"github.com/psanford/generals/internal/config"
	"github.com/psanford/generals/internal/logging"
	"github.com/psanford/generals/internal/transport"
)

func testConfig(basePort int) config.Config {
	return config.Config{
		BasePort:       basePort,
		ElectionPeriod: 50 * time.Millisecond,
		StopGraceDelay: 50 * time.Millisecond,
		AuthorTag:      "test cluster",
	}
}

func newTestCluster(t *testing.T, basePort int) *cluster.Cluster {
	cfg := testConfig(basePort)
	log := logging.New(false, io.Discard)
	cl := cluster.New(cfg, log)
	t.Cleanup(func() {
		ctx := context.Background()
		for _, p := range cl.Snapshot() {
			_ = cl.Kill(ctx, p.ID)
		}
	})
	return cl
}

func TestCluster_ElectsMaxIDCommander(t *testing.T) {
	cl := newTestCluster(t, 19100)
	_, err := cl.Add(3)
	require.NoError(t, err)

	ctx := context.Background()
	var coordPort int64
	require.Eventually(t, func() bool {
		port, found := cl.FindCoordinator(ctx)
		coordPort = port
		return found
	}, 3*time.Second, 20*time.Millisecond)

	assert.Equal(t, int64(19102), coordPort, "node id 3 (highest) must win the election")
}

func TestCluster_HonestConsensusVerdict(t *testing.T) {
	cl := newTestCluster(t, 19200)
	_, err := cl.Add(3)
	require.NoError(t, err)

	ctx := context.Background()
	var coordPort int64
	require.Eventually(t, func() bool {
		port, found := cl.FindCoordinator(ctx)
		coordPort = port
		return found
	}, 3*time.Second, 20*time.Millisecond)

	verdict, ok := cl.ExecuteOrder(ctx, coordPort, transport.Attack)
	require.True(t, ok)
	assert.Equal(t, "Execute order: attack! Non-faulty nodes in the system - 2 out of 3 quorum suggest attack", verdict)
}

func TestCluster_ReelectsAfterCommanderKilled(t *testing.T) {
	cl := newTestCluster(t, 19300)
	_, err := cl.Add(3)
	require.NoError(t, err)

	ctx := context.Background()
	require.Eventually(t, func() bool {
		port, found := cl.FindCoordinator(ctx)
		return found && port == 19302
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, cl.Kill(ctx, 3))

	require.Eventually(t, func() bool {
		port, found := cl.FindCoordinator(ctx)
		return found && port == 19301
	}, 3*time.Second, 20*time.Millisecond, "node id 2 must become the new commander")
}
