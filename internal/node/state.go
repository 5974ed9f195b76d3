package node

import (
	"sync"

	"github.com/psanford/generals/internal/transport"
)

// State holds the mutable fields of a Node that are touched concurrently
// by RPC handlers and the election tick (spec.md §5: "A single mutex per
// node protecting these fields is sufficient and recommended"). Handlers
// must not hold the mutex across outbound calls, to avoid deadlocking
// during elections — every method here is a short, local read or write.
type State struct {
	mu sync.Mutex

	role Role
	// alive is false once Stop has been invoked; handlers may still be
	// in flight during the stop grace delay, so this guards is_alive
	// rather than gating the handlers themselves.
	alive bool

	faulty bool

	knownCoordinatorPort int64
	knownCoordinatorSet  bool

	lastMajority    transport.Opinion
	lastMajoritySet bool
}

// NewState returns a State initialized per spec.md §3: role lieutenant,
// non-faulty, no known coordinator, no cached majority.
func NewState() *State {
	return &State{role: RoleLieutenant, alive: true}
}

func (s *State) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *State) SetRole(r Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = r
}

func (s *State) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

func (s *State) SetAlive(alive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alive = alive
}

func (s *State) Faulty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faulty
}

func (s *State) SetFaulty(faulty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faulty = faulty
}

// KnownCoordinator returns the cached coordinator port, and whether one is
// set at all (spec.md §3: "optional known_coordinator_port").
func (s *State) KnownCoordinator() (port int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.knownCoordinatorPort, s.knownCoordinatorSet
}

func (s *State) SetKnownCoordinator(port int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knownCoordinatorPort = port
	s.knownCoordinatorSet = true
}

func (s *State) ClearKnownCoordinator() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knownCoordinatorPort = 0
	s.knownCoordinatorSet = false
}

// LastMajority returns the cached majority opinion from the most recently
// completed round, if any.
func (s *State) LastMajority() (transport.Opinion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMajority, s.lastMajoritySet
}

func (s *State) SetLastMajority(o transport.Opinion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMajority = o
	s.lastMajoritySet = true
}
