// Package transport defines the wire messages and gRPC service surface
// exposed by every node's RPC endpoint (spec.md §4.2).
//
// There is no .proto file: messages are plain Go structs carried over a
// JSON [google.golang.org/grpc/encoding.Codec] (see codec.go) rather than
// protobuf-generated types, since no protoc toolchain is available here.
// The service descriptor and client/server stubs in service.go are
// hand-written in the same shape protoc-gen-go-grpc would produce.
package transport

// Opinion is the vote value exchanged during a round (spec.md §3).
type Opinion string

const (
	Attack  Opinion = "attack"
	Retreat Opinion = "retreat"
)

// MessageKind tags the variant of a Bully election message (spec.md §4.3).
// The original design used stringly-typed messages; REDESIGN FLAGS calls
// for a tagged variant instead (spec.md §9 "Dynamic dispatch on message
// kind").
type MessageKind int32

const (
	KindElection MessageKind = iota
	KindOK
	KindCoordinator
)

// Empty is sent/received where an operation carries no data.
type Empty struct{}

// ListRequest names the properties list requests (spec.md §6 list
// formatting).
type ListRequest struct {
	Properties []string `json:"properties"`
}

// ListReply carries the formatted, comma-joined property string.
type ListReply struct {
	Text string `json:"text"`
}

// IDReply carries a node's id.
type IDReply struct {
	ID int64 `json:"id"`
}

// StateReply carries a node's faulty flag.
type StateReply struct {
	Faulty bool `json:"faulty"`
}

// SetStateRequest sets a node's faulty flag.
type SetStateRequest struct {
	Faulty bool `json:"faulty"`
}

// AliveReply answers is_alive.
type AliveReply struct {
	Alive bool `json:"alive"`
}

// KnownCoordinatorReply answers get_known_coordinator_port. Known is false
// when the node has no cached coordinator (the "optional port" of spec.md
// §4.2).
type KnownCoordinatorReply struct {
	Port  int64 `json:"port"`
	Known bool  `json:"known"`
}

// ElectionMessage is a Bully send_message step (spec.md §4.3).
type ElectionMessage struct {
	SenderPort int64       `json:"sender_port"`
	SenderID   int64       `json:"sender_id"`
	Kind       MessageKind `json:"kind"`
}

// ElectionReply is the (optional) reply to an ElectionMessage. Present is
// false for the "reply none" case spec.md §4.3 describes for silent
// abstention.
type ElectionReply struct {
	Kind    MessageKind `json:"kind"`
	Present bool        `json:"present"`
}

// OrderMessage is a send_order opinion-exchange step (spec.md §4.4).
type OrderMessage struct {
	SenderPort int64   `json:"sender_port"`
	Opinion    Opinion `json:"opinion"`
}

// OrderRequest is the commander-side execute_order request (spec.md §4.5).
type OrderRequest struct {
	Opinion Opinion `json:"opinion"`
}

// VerdictReply carries the verdict string computed per spec.md §6.
type VerdictReply struct {
	Verdict string `json:"verdict"`
}

// ConsensusReport is a lieutenant's report_consensus call (spec.md §4.2).
// HasOpinion is false for the "optional opinion" case (a lieutenant whose
// buffer never filled would have nothing to report; not expected in
// practice, but the wire shape allows it).
type ConsensusReport struct {
	Opinion    Opinion `json:"opinion"`
	HasOpinion bool    `json:"has_opinion"`
}
