// Package endpoint implements the RPC Endpoint (spec.md §4.2, C2): it
// glues a node's identity, mutable state, registry view, dialer, and
// opinion collector into a transport.Server, and owns that node's gRPC
// listener for the process lifetime of the node.
package endpoint

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"google.golang.org/grpc"

	"github.com/rs/zerolog"

	"github.com/psanford/generals/internal/config"
	"github.com/psanford/generals/internal/consensus"
	"github.com/psanford/generals/internal/election"
	"github.com/psanford/generals/internal/node"
	"github.com/psanford/generals/internal/registry"
	"github.com/psanford/generals/internal/transport"
)

// Node is one general: the RPC-facing half of spec.md's Node entity. It
// implements transport.Server directly.
type Node struct {
	id        node.Identity
	state     *node.State
	reg       *registry.Registry
	dialer    *node.Dialer
	collector *consensus.Collector
	cfg       config.Config
	log       zerolog.Logger

	server *grpc.Server
}

// NewNode constructs a Node with fresh state, not yet serving.
func NewNode(id node.Identity, reg *registry.Registry, dialer *node.Dialer, cfg config.Config, log zerolog.Logger) *Node {
	return &Node{
		id:        id,
		state:     node.NewState(),
		reg:       reg,
		dialer:    dialer,
		collector: consensus.NewCollector(),
		cfg:       cfg,
		log:       log.With().Int64("id", id.ID).Int64("port", id.Port).Logger(),
	}
}

// Identity returns the node's immutable id/port.
func (n *Node) Identity() node.Identity { return n.id }

// State returns the node's mutable state, for use by the election loop
// and the cluster orchestrator.
func (n *Node) State() *node.State { return n.state }

// Serve binds this node's listener and runs its gRPC server until ctx is
// canceled or the Stop RPC tears it down.
func (n *Node) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", n.id.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", n.id.Port, err)
	}

	n.server = grpc.NewServer()
	transport.RegisterServer(n.server, n)
	n.state.SetAlive(true)

	errCh := make(chan error, 1)
	go func() { errCh <- n.server.Serve(lis) }()

	select {
	case <-ctx.Done():
		n.server.Stop()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (n *Node) List(ctx context.Context, req *transport.ListRequest) (*transport.ListReply, error) {
	parts := make([]string, 0, len(req.Properties))
	for _, p := range req.Properties {
		switch p {
		case "id":
			parts = append(parts, fmt.Sprintf("G%d", n.id.ID))
		case "role":
			parts = append(parts, n.state.Role().String())
		case "majority":
			if m, ok := n.state.LastMajority(); ok {
				parts = append(parts, fmt.Sprintf("majority=%s", m))
			} else {
				parts = append(parts, "majority=undefined")
			}
		case "state":
			if n.state.Faulty() {
				parts = append(parts, "state=F")
			} else {
				parts = append(parts, "state=NF")
			}
		}
	}
	return &transport.ListReply{Text: strings.Join(parts, ", ")}, nil
}

func (n *Node) GetID(ctx context.Context, req *transport.Empty) (*transport.IDReply, error) {
	return &transport.IDReply{ID: n.id.ID}, nil
}

func (n *Node) GetState(ctx context.Context, req *transport.Empty) (*transport.StateReply, error) {
	return &transport.StateReply{Faulty: n.state.Faulty()}, nil
}

func (n *Node) SetState(ctx context.Context, req *transport.SetStateRequest) (*transport.Empty, error) {
	n.state.SetFaulty(req.Faulty)
	return &transport.Empty{}, nil
}

func (n *Node) IsAlive(ctx context.Context, req *transport.Empty) (*transport.AliveReply, error) {
	return &transport.AliveReply{Alive: n.state.Alive()}, nil
}

func (n *Node) GetKnownCoordinatorPort(ctx context.Context, req *transport.Empty) (*transport.KnownCoordinatorReply, error) {
	port, ok := n.state.KnownCoordinator()
	return &transport.KnownCoordinatorReply{Port: port, Known: ok}, nil
}

func (n *Node) SendMessage(ctx context.Context, req *transport.ElectionMessage) (*transport.ElectionReply, error) {
	reply := election.Respond(n.state, n.id.ID, req)
	return &reply, nil
}

// SendOrder implements the lieutenant-side opinion exchange of spec.md
// §4.4. A message from the known coordinator triggers this node's own
// fan-out to its lieutenant peers and starts the wait for the round to
// fill; a message from a peer lieutenant is just a buffer append.
func (n *Node) SendOrder(ctx context.Context, req *transport.OrderMessage) (*transport.Empty, error) {
	n.collector.Push(req.Opinion)

	coordPort, known := n.state.KnownCoordinator()
	if !known || req.SenderPort != coordPort {
		return &transport.Empty{}, nil
	}

	peers := n.reg.Snapshot()
	mutated := consensus.Mutate(n.state.Faulty(), req.Opinion)
	for _, p := range peers {
		if p.Port == n.id.Port || p.Port == coordPort {
			continue
		}
		n.dialer.SendOrder(ctx, p.Port, &transport.OrderMessage{SenderPort: n.id.Port, Opinion: mutated})
	}

	expected := len(peers) - 1
	go n.reportWhenFull(context.Background(), coordPort, expected)

	return &transport.Empty{}, nil
}

// reportWhenFull waits for this round's buffer to reach expected and
// reports the resulting majority back to the coordinator (spec.md §4.4
// step 3).
func (n *Node) reportWhenFull(ctx context.Context, coordPort int64, expected int) {
	opinions, err := n.collector.Wait(ctx, expected)
	if err != nil {
		n.log.Warn().Err(err).Msg("opinion exchange buffer never filled")
		return
	}
	majority, ok := consensus.Majority(opinions)
	if ok {
		n.state.SetLastMajority(majority)
	}
	n.dialer.ReportConsensus(ctx, coordPort, majority, ok)
}

// ExecuteOrder implements the commander-side Order Dispatch of spec.md
// §4.5.
func (n *Node) ExecuteOrder(ctx context.Context, req *transport.OrderRequest) (*transport.VerdictReply, error) {
	if n.state.Role() != node.RoleCommander {
		return &transport.VerdictReply{Verdict: consensus.RefusalMessage}, nil
	}

	peers := n.reg.Snapshot()
	total := len(peers)
	faultyCount := 0
	mutated := consensus.Mutate(n.state.Faulty(), req.Opinion)

	for _, p := range peers {
		if p.Port == n.id.Port {
			continue
		}
		if faulty, ok := n.dialer.GetState(ctx, p.Port); ok && faulty {
			faultyCount++
		}
		n.dialer.SendOrder(ctx, p.Port, &transport.OrderMessage{SenderPort: n.id.Port, Opinion: mutated})
	}

	opinions, err := n.collector.Wait(ctx, total-1)
	if err != nil {
		n.log.Warn().Err(err).Msg("order dispatch buffer never filled")
	}
	majority, ok := consensus.Majority(opinions)
	if ok {
		n.state.SetLastMajority(majority)
	}

	return &transport.VerdictReply{Verdict: consensus.Verdict(total, faultyCount, majority, ok)}, nil
}

func (n *Node) ReportConsensus(ctx context.Context, req *transport.ConsensusReport) (*transport.Empty, error) {
	if req.HasOpinion {
		n.collector.Push(req.Opinion)
	}
	return &transport.Empty{}, nil
}

// Stop implements the half-close shutdown of spec.md §5/§9 "Shutdown
// race": the node stops reporting itself alive immediately, but the
// listener keeps draining in-flight handlers (including the reply to
// this very call) for StopGraceDelay before grpc.Server.GracefulStop
// refuses new work and shuts down.
func (n *Node) Stop(ctx context.Context, req *transport.Empty) (*transport.Empty, error) {
	n.state.SetAlive(false)
	go func() {
		time.Sleep(n.cfg.StopGraceDelay)
		n.server.GracefulStop()
	}()
	return &transport.Empty{}, nil
}
