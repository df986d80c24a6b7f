package ofbase

// Uint128 holds a 128-bit value as two big-endian halves, the shape
// IPv6 addresses and IPv6-ND targets need once split across a PutUint64
// pair. Hi is the most significant 64 bits.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// PadToWord rounds n up to the next multiple of 8, the padding rule
// every OpenFlow compound structure (ofp_match, ofp_multipart_reply
// bodies, actions, instructions) is tail-aligned to.
func PadToWord(n uint16) uint16 {
	return (n + 7) / 8 * 8
}
