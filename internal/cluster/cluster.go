// Package cluster is the top-level orchestrator: it owns the registry,
// spawns and tears down endpoint.Node instances and their election
// loops, and is the surface internal/shell drives (spec.md §4.1, C7,
// wired to C2/C4).
package cluster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/psanford/generals/internal/config"
	"github.com/psanford/generals/internal/election"
	"github.com/psanford/generals/internal/endpoint"
	"github.com/psanford/generals/internal/node"
	"github.com/psanford/generals/internal/registry"
	"github.com/psanford/generals/internal/transport"
)

// running bundles a live node with the goroutines servicing it, so Kill
// can cancel them without reaching into endpoint internals.
type running struct {
	ep     *endpoint.Node
	cancel context.CancelFunc
	done   chan struct{}
}

// Cluster owns the registry and every currently-live node.
type Cluster struct {
	cfg    config.Config
	log    zerolog.Logger
	dialer *node.Dialer
	reg    *registry.Registry

	mu    sync.Mutex
	nodes map[int64]*running
}

// New constructs an empty cluster.
func New(cfg config.Config, log zerolog.Logger) *Cluster {
	return &Cluster{
		cfg:    cfg,
		log:    log,
		dialer: node.NewDialer(cfg.ElectionPeriod),
		reg:    registry.New(int64(cfg.BasePort)),
		nodes:  make(map[int64]*running),
	}
}

// Add spawns k new nodes (spec.md §4.1 add(k)), each with its own gRPC
// listener and election loop, and returns their identities.
func (c *Cluster) Add(k int) ([]registry.Peer, error) {
	peers := c.reg.Add(k)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range peers {
		id := node.Identity{ID: p.ID, Port: p.Port}
		ep := endpoint.NewNode(id, c.reg, c.dialer, c.cfg, c.log)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		ready := make(chan error, 1)
		go func() {
			defer close(done)
			go func() { ready <- waitListening(ctx, p.Port) }()
			if err := ep.Serve(ctx); err != nil && ctx.Err() == nil {
				c.log.Error().Err(err).Int64("id", p.ID).Msg("node server exited")
			}
		}()
		if err := <-ready; err != nil {
			cancel()
			return nil, fmt.Errorf("start node %d: %w", p.ID, err)
		}

		loop := election.NewLoop(p, ep.State(), c.reg, c.dialer, c.cfg.ElectionPeriod, c.log)
		go loop.Run(ctx)

		c.nodes[p.ID] = &running{ep: ep, cancel: cancel, done: done}
	}

	return peers, nil
}

// waitListening polls is_alive until the node answers or a two-second
// deadline passes, so Add doesn't return before the listener can
// actually accept dials.
func waitListening(ctx context.Context, port int64) error {
	d := node.NewDialer(time.Second)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if d.IsAlive(ctx, port) {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("port %d never came up", port)
}

// Kill stops and removes the named node (spec.md §4.1 kill(id)).
func (c *Cluster) Kill(ctx context.Context, id int64) error {
	c.mu.Lock()
	r, ok := c.nodes[id]
	if ok {
		delete(c.nodes, id)
	}
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("not found")
	}

	c.dialer.Stop(ctx, r.ep.Identity().Port)
	r.cancel()
	<-r.done
	c.reg.Remove(id)
	return nil
}

// SetState toggles a node's faulty flag (spec.md §4.1 set_state).
func (c *Cluster) SetState(id int64, faulty bool) error {
	c.mu.Lock()
	r, ok := c.nodes[id]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("not found")
	}
	r.ep.State().SetFaulty(faulty)
	return nil
}

// Snapshot exposes the live registry ordering.
func (c *Cluster) Snapshot() []registry.Peer {
	return c.reg.Snapshot()
}

// Dialer exposes the shared RPC client helper, for callers (the shell)
// that need to reach a node without going through Cluster itself.
func (c *Cluster) Dialer() *node.Dialer {
	return c.dialer
}

// List formats a node's requested properties by calling its list RPC
// (spec.md §4.2 list). The call goes to the named node itself, since the
// properties are that node's own state.
func (c *Cluster) List(ctx context.Context, id int64, properties []string) (string, bool) {
	p, ok := c.reg.Lookup(id)
	if !ok {
		return "", false
	}
	return c.dialer.List(ctx, p.Port, properties)
}

// FindCoordinator asks every live node, in registry order, for its known
// coordinator port (spec.md §6 actual-order: "Find any live peer's
// known_coordinator_port").
func (c *Cluster) FindCoordinator(ctx context.Context) (port int64, found bool) {
	for _, p := range c.reg.Snapshot() {
		if coordPort, known, ok := c.dialer.GetKnownCoordinatorPort(ctx, p.Port); ok && known {
			return coordPort, true
		}
	}
	return 0, false
}

// ExecuteOrder dispatches an order via the named coordinator port
// (spec.md §4.5, invoked over RPC exactly as a peer would).
func (c *Cluster) ExecuteOrder(ctx context.Context, coordPort int64, opinion transport.Opinion) (string, bool) {
	return c.dialer.ExecuteOrder(ctx, coordPort, opinion)
}
