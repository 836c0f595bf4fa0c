package route

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lnroute/pathfinder/lnwire"
)

// maxPathCountOnRead is the soft DoS bound §6 requires a reader to cap
// path_count at when allocating up front, while still reading every
// declared entry off the wire.
const maxPathCountOnRead = 128

func writeFeatures(w io.Writer, raw []byte) error {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(raw)))

	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	_, err := w.Write(raw)

	return err
}

func readFeatures(r io.Reader) (*lnwire.FeatureVector, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint16(lenBuf[:])
	if n == 0 {
		return lnwire.EmptyFeatureVector(), nil
	}

	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}

	return lnwire.FeatureVectorFromRawBytes(raw), nil
}

func writeHop(w io.Writer, hop *Hop) error {
	if _, err := w.Write(hop.PubKeyBytes[:]); err != nil {
		return err
	}

	if err := writeFeatures(w, hop.NodeFeatures.RawBytes()); err != nil {
		return err
	}

	var u64Buf [8]byte
	binary.BigEndian.PutUint64(u64Buf[:], hop.ChannelID)
	if _, err := w.Write(u64Buf[:]); err != nil {
		return err
	}

	if err := writeFeatures(w, hop.ChannelFeatures.RawBytes()); err != nil {
		return err
	}

	binary.BigEndian.PutUint64(u64Buf[:], uint64(hop.FeeMsat))
	if _, err := w.Write(u64Buf[:]); err != nil {
		return err
	}

	var u32Buf [4]byte
	binary.BigEndian.PutUint32(u32Buf[:], hop.CltvExpiryDelta)
	_, err := w.Write(u32Buf[:])

	return err
}

func readHop(r io.Reader) (*Hop, error) {
	hop := &Hop{}

	if _, err := io.ReadFull(r, hop.PubKeyBytes[:]); err != nil {
		return nil, err
	}

	nodeFeatures, err := readFeatures(r)
	if err != nil {
		return nil, err
	}
	hop.NodeFeatures = lnwire.ToNodeContext(nodeFeatures)

	var u64Buf [8]byte
	if _, err := io.ReadFull(r, u64Buf[:]); err != nil {
		return nil, err
	}
	hop.ChannelID = binary.BigEndian.Uint64(u64Buf[:])

	chanFeatures, err := readFeatures(r)
	if err != nil {
		return nil, err
	}
	hop.ChannelFeatures = lnwire.ToChannelContext(chanFeatures)

	if _, err := io.ReadFull(r, u64Buf[:]); err != nil {
		return nil, err
	}
	hop.FeeMsat = lnwire.MilliSatoshi(binary.BigEndian.Uint64(u64Buf[:]))

	var u32Buf [4]byte
	if _, err := io.ReadFull(r, u32Buf[:]); err != nil {
		return nil, err
	}
	hop.CltvExpiryDelta = binary.BigEndian.Uint32(u32Buf[:])

	return hop, nil
}

// Encode serializes the route per §6's wire format: a u64 path count
// followed by, for each path, a u8 hop count and that many hops.
func (r *Route) Encode(w io.Writer) error {
	var countBuf [8]byte
	binary.BigEndian.PutUint64(countBuf[:], uint64(len(r.Paths)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return err
	}

	for _, path := range r.Paths {
		if len(path) > 255 {
			return fmt.Errorf("path has %d hops, exceeds the "+
				"u8 hop count field", len(path))
		}

		if _, err := w.Write([]byte{byte(len(path))}); err != nil {
			return err
		}

		for _, hop := range path {
			if err := writeHop(w, hop); err != nil {
				return err
			}
		}
	}

	return nil
}

// DecodeRoute deserializes a Route written by Encode. Per §6, path_count is
// capped at maxPathCountOnRead only for the purposes of the initial
// allocation; every declared path is still read off the wire.
func DecodeRoute(r io.Reader) (*Route, error) {
	var countBuf [8]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, err
	}
	pathCount := binary.BigEndian.Uint64(countBuf[:])

	allocCount := pathCount
	if allocCount > maxPathCountOnRead {
		allocCount = maxPathCountOnRead
	}

	route := &Route{Paths: make([]Path, 0, allocCount)}

	for i := uint64(0); i < pathCount; i++ {
		var hopCountBuf [1]byte
		if _, err := io.ReadFull(r, hopCountBuf[:]); err != nil {
			return nil, err
		}

		hopCount := int(hopCountBuf[0])
		path := make(Path, 0, hopCount)
		for j := 0; j < hopCount; j++ {
			hop, err := readHop(r)
			if err != nil {
				return nil, err
			}

			path = append(path, hop)
		}

		route.Paths = append(route.Paths, path)
	}

	return route, nil
}

// Bytes returns the Encode-d form of the route as a byte slice.
func (r *Route) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
