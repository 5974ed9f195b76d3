package transport

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype under which jsonCodec is
// registered. Clients select it per-call via grpc.CallContentSubtype;
// gRPC servers pick the matching registered codec from the subtype the
// client advertises, so the server never needs to force it explicitly.
const CodecName = "json"

// jsonCodec implements encoding.Codec by marshaling messages as JSON. It
// stands in for the protobuf codec gRPC normally uses: there's no protoc
// toolchain available to generate .pb.go types for this project, and the
// messages here are plain structs, not proto.Message. The same
// encoding.Codec seam is what lets github.com/joeycumines/go-inprocgrpc's
// Cloner wrap an arbitrary codec (see its CodecCloner helper); here it's
// used the straightforward way, as the wire codec gRPC itself calls.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
