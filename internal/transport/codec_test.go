package transport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"

	"github.com/psanford/generals/internal/transport"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := encoding.GetCodec(transport.CodecName)
	require.NotNil(t, codec, "jsonCodec must self-register via init()")

	in := &transport.ElectionMessage{SenderPort: 18813, SenderID: 2, Kind: transport.KindElection}
	data, err := codec.Marshal(in)
	require.NoError(t, err)

	out := new(transport.ElectionMessage)
	require.NoError(t, codec.Unmarshal(data, out))
	assert.Equal(t, in, out)
}

func TestCodecName(t *testing.T) {
	assert.Equal(t, "json", transport.CodecName)
}
