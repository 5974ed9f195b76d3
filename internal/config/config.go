// Package config holds the tunable constants of the simulation.
//
// Every value here is the kind spec.md calls out as "must be a configurable
// constant" (election cadence, shutdown grace delay, base port). None of
// it is sourced from flags or environment variables: the process takes
// exactly one positional argument (the cluster size), so a
// general-purpose config loader would be speculative.
package config

import "time"

// Config is the set of tunables shared by every node in a cluster.
type Config struct {
	// BasePort is the TCP port of the first node (id 1); the node at
	// position i in [0,N) binds BasePort+i (spec.md §6).
	BasePort int

	// ElectionPeriod is the cadence of the election loop's tick (§4.3).
	ElectionPeriod time.Duration

	// StopGraceDelay is how long a node's RPC endpoint waits, after
	// receiving stop, before closing its listener, so the reply to the
	// stop call itself can drain (§5).
	StopGraceDelay time.Duration

	// AuthorTag is printed verbatim by the whoami command.
	AuthorTag string
}

// Default returns the standard configuration used by cmd/generals.
func Default() Config {
	return Config{
		BasePort:       18812,
		ElectionPeriod: 5 * time.Second,
		StopGraceDelay: 500 * time.Millisecond,
		AuthorTag:      "generals simulator",
	}
}
