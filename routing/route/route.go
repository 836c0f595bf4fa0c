// Package route defines the data types returned by the path-finding core: a
// Vertex identifying a node, a Hop describing one realized link in a path,
// and a Route aggregating one or more paths into a single payment.
package route

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lnroute/pathfinder/lnwire"
)

// VertexSize is the size, in bytes, of a serialized compressed public key
// used to identify a node in the channel graph.
const VertexSize = 33

// Vertex is a serialized compressed public key, used as a stable,
// comparable identifier for a node in the channel graph.
type Vertex [VertexSize]byte

// NewVertex returns the Vertex representation of a node's public key.
func NewVertex(pubKey *btcec.PublicKey) Vertex {
	var v Vertex
	copy(v[:], pubKey.SerializeCompressed())

	return v
}

// NewVertexFromBytes returns the Vertex representation of the raw serialized
// compressed public key provided, failing if it is not exactly VertexSize
// bytes long.
func NewVertexFromBytes(b []byte) (Vertex, error) {
	var v Vertex

	if len(b) != VertexSize {
		return v, fmt.Errorf("invalid vertex length: expected %v, "+
			"got %v", VertexSize, len(b))
	}

	copy(v[:], b)

	return v, nil
}

// NewVertexFromStr parses a Vertex from its hex-encoded string form.
func NewVertexFromStr(s string) (Vertex, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Vertex{}, err
	}

	return NewVertexFromBytes(b)
}

// String returns the hex-encoded string representation of the vertex.
func (v Vertex) String() string {
	return hex.EncodeToString(v[:])
}

// Less reports whether v sorts before other, byte-wise. Used as the
// deterministic tie-breaker for nodes carrying equal priority in the path
// finding frontier (§4.3).
func (v Vertex) Less(other Vertex) bool {
	return bytes.Compare(v[:], other[:]) < 0
}

// Hop is one realized hop in a finished path: the channel used to reach a
// node, and the fee/timelock the payment carries across it.
//
// FeeMsat is the fee deducted at the *previous* link to cover this hop's
// use, except for a path's terminal hop, where it instead carries the
// amount actually delivered to the payee.
type Hop struct {
	// PubKeyBytes is the node reached by this hop.
	PubKeyBytes Vertex

	// NodeFeatures are the features advertised by PubKeyBytes. For the
	// terminal hop of a path, these may be overwritten with the payee's
	// invoice features.
	NodeFeatures lnwire.NodeFeatures

	// ChannelID is the short channel id of the channel traversed to
	// reach PubKeyBytes from the previous hop.
	ChannelID uint64

	// ChannelFeatures are the features advertised for ChannelID.
	ChannelFeatures lnwire.ChannelFeatures

	// FeeMsat is the fee paid at the previous link for the use of this
	// hop, or for the terminal hop, the value delivered to the payee.
	FeeMsat lnwire.MilliSatoshi

	// CltvExpiryDelta is the timelock delta contributed by this hop, or
	// for the terminal hop, the final CLTV expiry requested by the
	// payee.
	CltvExpiryDelta uint32
}

// Copy returns a deep copy of the hop.
func (h *Hop) Copy() *Hop {
	cp := *h
	cp.NodeFeatures = lnwire.NodeFeatures{
		FeatureVector: h.NodeFeatures.Clone(),
	}
	cp.ChannelFeatures = lnwire.ChannelFeatures{
		FeatureVector: h.ChannelFeatures.Clone(),
	}

	return &cp
}

// Path is an ordered, payer-to-payee sequence of hops. It is non-empty; its
// last hop's PubKeyBytes is the payee.
type Path []*Hop

// TotalAmount returns the amount delivered to the payee by this path: the
// terminal hop's FeeMsat (§3: "Its transferred value is the last hop's
// fee_msat").
func (p Path) TotalAmount() lnwire.MilliSatoshi {
	if len(p) == 0 {
		return 0
	}

	return p[len(p)-1].FeeMsat
}

// TotalFees returns the sum of fees paid across the path, excluding the
// amount delivered by the terminal hop.
func (p Path) TotalFees() lnwire.MilliSatoshi {
	var total lnwire.MilliSatoshi
	for i, hop := range p {
		if i == len(p)-1 {
			continue
		}

		total += hop.FeeMsat
	}

	return total
}

// Route is a non-empty ordered sequence of paths from payer to payee. When
// it holds more than one path, the aggregate is a multi-path payment and the
// sum of each path's TotalAmount equals the requested payment amount.
type Route struct {
	// Paths holds one payer-to-payee hop sequence per path.
	Paths []Path
}

// TotalAmount sums TotalAmount across every path in the route.
func (r *Route) TotalAmount() lnwire.MilliSatoshi {
	var total lnwire.MilliSatoshi
	for _, path := range r.Paths {
		total += path.TotalAmount()
	}

	return total
}

// TotalFees sums TotalFees across every path in the route.
func (r *Route) TotalFees() lnwire.MilliSatoshi {
	var total lnwire.MilliSatoshi
	for _, path := range r.Paths {
		total += path.TotalFees()
	}

	return total
}
