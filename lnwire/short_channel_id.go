package lnwire

import "fmt"

// ShortChannelID encodes the block height, transaction index and output
// index of a channel's funding transaction into a single u64, per BOLT 7.
type ShortChannelID struct {
	BlockHeight uint32
	TxIndex     uint32
	TxPosition  uint16
}

// ToUint64 packs the short channel ID into its canonical u64 representation.
func (c ShortChannelID) ToUint64() uint64 {
	return (uint64(c.BlockHeight) << 40) |
		(uint64(c.TxIndex) << 16) |
		uint64(c.TxPosition)
}

// NewShortChanIDFromInt unpacks a u64 scid into its block/tx/output parts.
func NewShortChanIDFromInt(id uint64) ShortChannelID {
	return ShortChannelID{
		BlockHeight: uint32(id >> 40),
		TxIndex:     uint32(id>>16) & 0xFFFFFF,
		TxPosition:  uint16(id),
	}
}

// String returns the scid in the conventional HEIGHTxINDEXxPOSITION form.
func (c ShortChannelID) String() string {
	return fmt.Sprintf("%dx%dx%d", c.BlockHeight, c.TxIndex, c.TxPosition)
}
