package consensus

import (
	"context"

	"github.com/joeycumines/go-longpoll"

	"github.com/psanford/generals/internal/transport"
)

// bufferCapacity generously upper-bounds how many opinions a node's
// buffer channel can hold without blocking a Push. A round pushes exactly
// len(registry)-1 values; this comfortably covers every cluster size this
// simulation is meant for.
const bufferCapacity = 4096

// Collector is a node's opinion_buffer (spec.md §3): a per-node buffer
// that accumulates Opinion values pushed by inbound send_order/
// report_consensus RPCs, and that the owning node's dispatch or exchange
// logic waits on until it reaches an expected size (spec.md §4.4 step 3,
// §4.5 step 4). This is the "task-local condition variable... to wake the
// commander when its opinion buffer fills" called for in spec.md §9,
// implemented with longpoll.Channel's exact-size receive instead of a
// hand-rolled sync.Cond.
//
// A single Collector instance is shared by whichever role the node is
// currently playing: the same buffer receives a lieutenant's incoming
// opinions (§4.4) and a commander's incoming majority reports (§4.5),
// exactly as spec.md's single per-node opinion_buffer field does.
type Collector struct {
	ch chan transport.Opinion
}

// NewCollector allocates an empty Collector.
func NewCollector() *Collector {
	return &Collector{ch: make(chan transport.Opinion, bufferCapacity)}
}

// Push appends an opinion to the buffer. It never blocks in practice: see
// bufferCapacity.
func (c *Collector) Push(o transport.Opinion) {
	c.ch <- o
}

// Wait blocks until exactly n opinions have been pushed, then returns
// them in arrival order (spec.md §5: arrival order is otherwise
// unconstrained; only the count is a synchronization barrier). n == 0
// returns immediately with no values — longpoll.ChannelConfig treats a
// zero MinSize/MaxSize as "use the default", not literal zero, so that
// case is special-cased here rather than handed to longpoll.Channel.
func (c *Collector) Wait(ctx context.Context, n int) ([]transport.Opinion, error) {
	if n <= 0 {
		return nil, nil
	}

	buf := make([]transport.Opinion, 0, n)
	// PartialTimeout defaults to 50ms and would otherwise let Channel return
	// early with fewer than n values once a value has arrived (longpoll's
	// partialTimeout > 0 gate). A negative value disables that gate
	// entirely, so this genuinely blocks for all n, matching the "no round
	// timeout" decision in DESIGN.md.
	cfg := &longpoll.ChannelConfig{MinSize: n, MaxSize: n, PartialTimeout: -1}
	err := longpoll.Channel(ctx, cfg, c.ch, func(o transport.Opinion) error {
		buf = append(buf, o)
		return nil
	})
	if err != nil {
		return buf, err
	}
	return buf, nil
}
