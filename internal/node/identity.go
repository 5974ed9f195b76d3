// Package node holds the per-node identity and mutable state (spec.md §3
// Node, component C1), plus the RPC client helper (C3) used to talk to
// peers. It intentionally knows nothing about the registry, the election
// algorithm, or the consensus protocol — those live in sibling packages
// and are handed a *State/Dialer to operate on.
package node

// Role is a node's position in the cluster (spec.md §3).
type Role int

const (
	RoleLieutenant Role = iota
	RoleCommander
)

func (r Role) String() string {
	if r == RoleCommander {
		return "primary"
	}
	return "secondary"
}

// Identity is the immutable half of a Node: an id and a port that never
// change over the node's lifetime (spec.md §3 invariants).
type Identity struct {
	ID   int64
	Port int64
}
