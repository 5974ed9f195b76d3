package node

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/joeycumines/go-catrate"

	"github.com/psanford/generals/internal/transport"
)

// Dialer is the RPC Client Helper (spec.md §4/C3): a short-lived request
// to a peer endpoint that flattens any transport failure into a boolean
// "unreachable" rather than propagating a Go error into the caller's
// election/consensus logic (spec.md §7a). Every call here dials a fresh
// connection and closes it afterward — there is no persistent connection
// pool, matching the "short-lived request" framing in spec.md §2.
type Dialer struct {
	// probes rate-limits is_alive liveness checks per peer port, so a
	// busy election period doesn't hammer a slow-to-respond (but not
	// actually dead) peer. Modeled on catrate's documented per-category
	// sliding window limiter.
	probes *catrate.Limiter
}

// NewDialer constructs a Dialer with a conservative is_alive probe rate:
// at most 4 probes per peer per election period's worth of wall time.
func NewDialer(electionPeriod time.Duration) *Dialer {
	return &Dialer{
		probes: catrate.NewLimiter(map[time.Duration]int{
			electionPeriod: 4,
		}),
	}
}

func addr(port int64) string {
	return fmt.Sprintf("127.0.0.1:%d", port)
}

// call dials port, invokes fn with a client stub bound to that connection,
// and reports whether the whole exchange (dial + RPC) succeeded.
func (d *Dialer) call(port int64, fn func(transport.Client) error) bool {
	cc, err := grpc.NewClient(addr(port), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return false
	}
	defer cc.Close()
	return fn(transport.NewClient(cc)) == nil
}

// IsAlive reports whether the peer at port responds to is_alive. A
// throttled probe (see probes) conservatively reports false for this
// call; the next election tick will try again.
func (d *Dialer) IsAlive(ctx context.Context, port int64) bool {
	if _, ok := d.probes.Allow(port); !ok {
		return false
	}
	var alive bool
	ok := d.call(port, func(c transport.Client) error {
		rep, err := c.IsAlive(ctx, &transport.Empty{})
		if err != nil {
			return err
		}
		alive = rep.Alive
		return nil
	})
	return ok && alive
}

// SendMessage performs a Bully send_message step (spec.md §4.3). present
// is false for the "reply none" abstention case, or when the peer is
// unreachable.
func (d *Dialer) SendMessage(ctx context.Context, port int64, msg *transport.ElectionMessage) (kind transport.MessageKind, present bool) {
	d.call(port, func(c transport.Client) error {
		rep, err := c.SendMessage(ctx, msg)
		if err != nil {
			return err
		}
		kind, present = rep.Kind, rep.Present
		return nil
	})
	return kind, present
}

// SendOrder fans out an opinion to a peer lieutenant (spec.md §4.4). The
// return value is best-effort: callers that need to know whether the
// round can still complete rely on the buffer-fullness wait, not this
// boolean.
func (d *Dialer) SendOrder(ctx context.Context, port int64, msg *transport.OrderMessage) bool {
	return d.call(port, func(c transport.Client) error {
		_, err := c.SendOrder(ctx, msg)
		return err
	})
}

// GetState reads a peer's faulty flag (spec.md §4.2 get_state).
func (d *Dialer) GetState(ctx context.Context, port int64) (faulty bool, ok bool) {
	ok = d.call(port, func(c transport.Client) error {
		rep, err := c.GetState(ctx, &transport.Empty{})
		if err != nil {
			return err
		}
		faulty = rep.Faulty
		return nil
	})
	return faulty, ok
}

// SetState writes a peer's faulty flag (spec.md §4.2 set_state).
func (d *Dialer) SetState(ctx context.Context, port int64, faulty bool) bool {
	return d.call(port, func(c transport.Client) error {
		_, err := c.SetState(ctx, &transport.SetStateRequest{Faulty: faulty})
		return err
	})
}

// ReportConsensus reports a lieutenant's majority back to the commander
// (spec.md §4.2 report_consensus).
func (d *Dialer) ReportConsensus(ctx context.Context, port int64, opinion transport.Opinion, has bool) bool {
	return d.call(port, func(c transport.Client) error {
		_, err := c.ReportConsensus(ctx, &transport.ConsensusReport{Opinion: opinion, HasOpinion: has})
		return err
	})
}

// ExecuteOrder invokes a peer's commander-side dispatch (spec.md §4.2
// execute_order), used by the operator shell once it knows which peer is
// the coordinator.
func (d *Dialer) ExecuteOrder(ctx context.Context, port int64, opinion transport.Opinion) (verdict string, ok bool) {
	ok = d.call(port, func(c transport.Client) error {
		rep, err := c.ExecuteOrder(ctx, &transport.OrderRequest{Opinion: opinion})
		if err != nil {
			return err
		}
		verdict = rep.Verdict
		return nil
	})
	return verdict, ok
}

// List reads a peer's formatted property listing (spec.md §4.2 list).
func (d *Dialer) List(ctx context.Context, port int64, properties []string) (text string, ok bool) {
	ok = d.call(port, func(c transport.Client) error {
		rep, err := c.List(ctx, &transport.ListRequest{Properties: properties})
		if err != nil {
			return err
		}
		text = rep.Text
		return nil
	})
	return text, ok
}

// GetKnownCoordinatorPort reads a peer's cached election result (spec.md
// §4.2 get_known_coordinator_port).
func (d *Dialer) GetKnownCoordinatorPort(ctx context.Context, port int64) (coordPort int64, known bool, ok bool) {
	ok = d.call(port, func(c transport.Client) error {
		rep, err := c.GetKnownCoordinatorPort(ctx, &transport.Empty{})
		if err != nil {
			return err
		}
		coordPort, known = rep.Port, rep.Known
		return nil
	})
	return coordPort, known, ok
}

// Stop instructs a peer to shut down (spec.md §4.2 stop).
func (d *Dialer) Stop(ctx context.Context, port int64) bool {
	return d.call(port, func(c transport.Client) error {
		_, err := c.Stop(ctx, &transport.Empty{})
		return err
	})
}
