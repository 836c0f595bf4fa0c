package routing

import (
	"testing"

	"github.com/lnroute/pathfinder/channeldb"
	"github.com/stretchr/testify/require"
)

func samplePath() paymentPath {
	mid, payee := vtx(1), vtx(2)

	return paymentPath{
		{
			node:            mid,
			channelID:       1,
			htlcMinimumMsat: 0,
			feeMsat:         1500,
			cltvExpiryDelta: 40,
		},
		{
			node:            payee,
			channelID:       2,
			fees:            channeldb.RoutingFees{BaseMsat: 150},
			htlcMinimumMsat: 0,
			feeMsat:         1_000_000,
			cltvExpiryDelta: 9,
		},
	}
}

func TestPaymentPathTotalValueAndFees(t *testing.T) {
	p := samplePath()

	require.Equal(t, uint64(1_000_000), p.totalValue())
	require.Equal(t, uint64(1500), p.totalFees())
}

func TestPaymentPathChannelAmounts(t *testing.T) {
	p := samplePath()

	amounts := p.channelAmounts()
	require.Equal(t, []uint64{1_000_000 + 1500, 1_000_000}, amounts)
}

func TestPaymentPathCloneIsIndependent(t *testing.T) {
	p := samplePath()
	cp := p.clone()

	cp[0].feeMsat = 999

	require.Equal(t, uint64(1500), p[0].feeMsat)
	require.Equal(t, uint64(999), cp[0].feeMsat)
}

func TestUpdateValueAndRecomputeFeesReducesTerminalValue(t *testing.T) {
	p := samplePath()

	updateValueAndRecomputeFees(p, 500_000)

	require.Equal(t, uint64(500_000), p.totalValue())
	require.Equal(t, uint64(150), p[0].feeMsat)
}

func TestUpdateValueAndRecomputeFeesRaisesValueToHtlcMinimum(t *testing.T) {
	p := samplePath()
	p[1].htlcMinimumMsat = 600_000

	updateValueAndRecomputeFees(p, 500_000)

	require.Equal(t, uint64(600_000), p.totalValue())
}
