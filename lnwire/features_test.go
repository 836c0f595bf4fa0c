package lnwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureVectorIsSet(t *testing.T) {
	fv := NewFeatureVector(MPPOptional, DataLossProtectRequired)

	require.True(t, fv.IsSet(MPPOptional))
	require.True(t, fv.IsSet(DataLossProtectRequired))
	require.False(t, fv.IsSet(StaticRemoteKeyOptional))
}

func TestFeatureVectorNilIsSafe(t *testing.T) {
	var fv *FeatureVector

	require.False(t, fv.IsSet(MPPOptional))
	require.False(t, fv.RequiresUnknownBits())
	require.Nil(t, fv.RawBytes())
}

func TestRequiresUnknownBits(t *testing.T) {
	known := NewFeatureVector(MPPRequired)
	require.False(t, known.RequiresUnknownBits())

	unknownOptional := NewFeatureVector(FeatureBit(100))
	require.False(t, unknownOptional.RequiresUnknownBits())

	unknownRequired := NewFeatureVector(FeatureBit(101))
	require.True(t, unknownRequired.RequiresUnknownBits())
}

func TestSupportsBasicMPP(t *testing.T) {
	require.True(t, NewFeatureVector(MPPOptional).SupportsBasicMPP())
	require.True(t, NewFeatureVector(MPPRequired).SupportsBasicMPP())
	require.False(t, NewFeatureVector(StaticRemoteKeyOptional).SupportsBasicMPP())
}

func TestRawBytesRoundTrip(t *testing.T) {
	fv := NewFeatureVector(MPPOptional, AnchorsZeroFeeHtlcTxRequired)

	raw := fv.RawBytes()
	parsed := FeatureVectorFromRawBytes(raw)

	require.True(t, parsed.IsSet(MPPOptional))
	require.True(t, parsed.IsSet(AnchorsZeroFeeHtlcTxRequired))
	require.False(t, parsed.IsSet(StaticRemoteKeyOptional))
}

func TestFeatureVectorClone(t *testing.T) {
	fv := NewFeatureVector(MPPOptional)
	clone := fv.Clone()

	clone.bits[StaticRemoteKeyOptional] = struct{}{}

	require.True(t, clone.IsSet(StaticRemoteKeyOptional))
	require.False(t, fv.IsSet(StaticRemoteKeyOptional))
}

func TestNodeFeaturesContextConversion(t *testing.T) {
	raw := NewFeatureVector(MPPRequired)
	init := InitFeatures{FeatureVector: raw}

	node := init.ToContext()
	require.True(t, node.IsSet(MPPRequired))
}

func TestEmptyNodeFeatures(t *testing.T) {
	empty := EmptyNodeFeatures()
	require.False(t, empty.IsSet(MPPOptional))
	require.False(t, empty.RequiresUnknownBits())
}
