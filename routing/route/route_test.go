package route

import (
	"bytes"
	"testing"

	"github.com/lnroute/pathfinder/lnwire"
	"github.com/stretchr/testify/require"
)

func testVertex(b byte) Vertex {
	var v Vertex
	v[0] = 0x02
	v[VertexSize-1] = b

	return v
}

func TestPathTotalAmountIsTerminalFee(t *testing.T) {
	path := Path{
		{PubKeyBytes: testVertex(1), FeeMsat: 100},
		{PubKeyBytes: testVertex(2), FeeMsat: 250},
	}

	require.Equal(t, lnwire.MilliSatoshi(250), path.TotalAmount())
	require.Equal(t, lnwire.MilliSatoshi(100), path.TotalFees())
}

func TestRouteTotals(t *testing.T) {
	route := &Route{
		Paths: []Path{
			{
				{PubKeyBytes: testVertex(1), FeeMsat: 10},
				{PubKeyBytes: testVertex(2), FeeMsat: 100},
			},
			{
				{PubKeyBytes: testVertex(3), FeeMsat: 5},
				{PubKeyBytes: testVertex(2), FeeMsat: 50},
			},
		},
	}

	require.Equal(t, lnwire.MilliSatoshi(150), route.TotalAmount())
	require.Equal(t, lnwire.MilliSatoshi(15), route.TotalFees())
}

func TestVertexLess(t *testing.T) {
	a := testVertex(1)
	b := testVertex(2)

	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Less(a))
}

func TestVertexFromBytesRoundTrip(t *testing.T) {
	v := testVertex(7)

	parsed, err := NewVertexFromBytes(v[:])
	require.NoError(t, err)
	require.Equal(t, v, parsed)

	_, err = NewVertexFromBytes(v[:10])
	require.Error(t, err)
}

func TestRouteEncodeDecodeRoundTrip(t *testing.T) {
	features := lnwire.NewFeatureVector(lnwire.MPPOptional)

	route := &Route{
		Paths: []Path{
			{
				{
					PubKeyBytes:     testVertex(1),
					NodeFeatures:    lnwire.ToNodeContext(features),
					ChannelID:       2,
					ChannelFeatures: lnwire.EmptyChannelFeatures(),
					FeeMsat:         100,
					CltvExpiryDelta: (4 << 8) | 1,
				},
				{
					PubKeyBytes:     testVertex(2),
					NodeFeatures:    lnwire.EmptyNodeFeatures(),
					ChannelID:       4,
					ChannelFeatures: lnwire.EmptyChannelFeatures(),
					FeeMsat:         100,
					CltvExpiryDelta: 42,
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, route.Encode(&buf))

	decoded, err := DecodeRoute(&buf)
	require.NoError(t, err)

	require.Len(t, decoded.Paths, 1)
	require.Len(t, decoded.Paths[0], 2)
	require.Equal(t, testVertex(1), decoded.Paths[0][0].PubKeyBytes)
	require.Equal(t, uint64(2), decoded.Paths[0][0].ChannelID)
	require.Equal(t, lnwire.MilliSatoshi(100), decoded.Paths[0][0].FeeMsat)
	require.True(t, decoded.Paths[0][0].NodeFeatures.SupportsBasicMPP())
	require.Equal(t, uint32(42), decoded.Paths[0][1].CltvExpiryDelta)
}
