// Package election implements the Bully leader election loop (spec.md
// §4.3, C4): per-node coordinator liveness detection and the election
// procedure itself, plus the pure responder logic invoked from a node's
// send_message RPC handler.
package election

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/psanford/generals/internal/node"
	"github.com/psanford/generals/internal/registry"
	"github.com/psanford/generals/internal/transport"
)

// Loop runs the periodic election tick for a single node (spec.md §4.3).
type Loop struct {
	self   registry.Peer
	state  *node.State
	reg    *registry.Registry
	dialer *node.Dialer
	period time.Duration
	log    zerolog.Logger
}

// NewLoop constructs a Loop for the given node.
func NewLoop(self registry.Peer, state *node.State, reg *registry.Registry, dialer *node.Dialer, period time.Duration, log zerolog.Logger) *Loop {
	return &Loop{self: self, state: state, reg: reg, dialer: dialer, period: period, log: log}
}

// Run drives the tick on a fixed cadence until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

// tick implements the per-cycle steps of spec.md §4.3.
func (l *Loop) tick(ctx context.Context) {
	if l.state.Role() == node.RoleLieutenant {
		if port, ok := l.state.KnownCoordinator(); ok {
			if !l.dialer.IsAlive(ctx, port) {
				l.log.Debug().Int64("coordinator_port", port).Msg("coordinator unreachable, clearing")
				l.state.ClearKnownCoordinator()
			}
		}
	}

	if _, ok := l.state.KnownCoordinator(); !ok {
		l.runElection(ctx)
	}
}

// runElection implements the Bully election procedure of spec.md §4.3:
// peers are contacted in descending registry order (equivalently,
// higher-port-first, since ports are assigned in registry order).
func (l *Loop) runElection(ctx context.Context) {
	peers := l.reg.Snapshot()

	for i := len(peers) - 1; i >= 0; i-- {
		p := peers[i]
		if p.ID == l.self.ID {
			continue
		}

		kind, present := l.dialer.SendMessage(ctx, p.Port, &transport.ElectionMessage{
			SenderPort: l.self.Port,
			SenderID:   l.self.ID,
			Kind:       transport.KindElection,
		})
		if !present {
			// unreachable, or a silent abstention — continue.
			continue
		}

		switch kind {
		case transport.KindCoordinator:
			l.log.Debug().Int64("coordinator_port", p.Port).Msg("found sitting coordinator")
			l.state.SetKnownCoordinator(p.Port)
			return
		case transport.KindOK:
			l.log.Debug().Int64("contested_by_port", p.Port).Msg("election contested, backing off")
			return
		}
	}

	l.log.Info().Msg("won election, becoming coordinator")
	l.state.SetRole(node.RoleCommander)
	l.state.SetKnownCoordinator(l.self.Port)

	for _, p := range peers {
		if p.ID == l.self.ID {
			continue
		}
		l.dialer.SendMessage(ctx, p.Port, &transport.ElectionMessage{
			SenderPort: l.self.Port,
			SenderID:   l.self.ID,
			Kind:       transport.KindCoordinator,
		})
	}
}

// Respond implements the send_message responder logic of spec.md §4.3, to
// be called directly from a node's RPC handler.
func Respond(state *node.State, selfID int64, msg *transport.ElectionMessage) transport.ElectionReply {
	switch msg.Kind {
	case transport.KindCoordinator:
		state.SetKnownCoordinator(msg.SenderPort)
		return transport.ElectionReply{Present: false}

	case transport.KindElection:
		if state.Role() == node.RoleCommander {
			return transport.ElectionReply{Kind: transport.KindCoordinator, Present: true}
		}
		if msg.SenderID < selfID {
			return transport.ElectionReply{Kind: transport.KindOK, Present: true}
		}
		return transport.ElectionReply{Present: false}

	default:
		return transport.ElectionReply{Present: false}
	}
}
