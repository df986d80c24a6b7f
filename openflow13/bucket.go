package openflow13

// Bucket (ofp_bucket), used by GroupMod and GroupDescStats: a weighted
// set of actions executed together, grounded on §4.5's bucket
// description and the original source's group-mod handling.

import (
	"encoding/binary"
	"fmt"
)

type Bucket struct {
	Length     uint16
	Weight     uint16
	WatchPort  uint32
	WatchGroup uint32
	pad        [4]uint8
	Actions    []Action
}

func NewBucket() *Bucket {
	return &Bucket{WatchPort: PortAny, WatchGroup: GroupAny}
}

func (b *Bucket) AddAction(a Action) {
	b.Actions = append(b.Actions, a)
}

func (b *Bucket) Len() uint16 {
	n := uint16(16)
	for _, a := range b.Actions {
		n += a.Len()
	}
	return n
}

func (b *Bucket) MarshalBinary() (data []byte, err error) {
	b.Length = b.Len()
	data = make([]byte, b.Length)
	binary.BigEndian.PutUint16(data[0:2], b.Length)
	binary.BigEndian.PutUint16(data[2:4], b.Weight)
	binary.BigEndian.PutUint32(data[4:8], b.WatchPort)
	binary.BigEndian.PutUint32(data[8:12], b.WatchGroup)
	n := 16
	for _, a := range b.Actions {
		ab, err := a.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], ab)
		n += int(a.Len())
	}
	return
}

func (b *Bucket) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full Bucket header")
	}
	b.Length = binary.BigEndian.Uint16(data[0:2])
	b.Weight = binary.BigEndian.Uint16(data[2:4])
	b.WatchPort = binary.BigEndian.Uint32(data[4:8])
	b.WatchGroup = binary.BigEndian.Uint32(data[8:12])
	if int(b.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full Bucket")
	}
	b.Actions = nil
	n := 16
	for n+8 <= int(b.Length) {
		hdr := new(ActionHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		alen := int(hdr.Length)
		if alen < 8 || n+alen > int(b.Length) {
			break
		}
		a, err := DecodeAction(data[n : n+alen])
		if err != nil {
			return err
		}
		b.Actions = append(b.Actions, a)
		n += alen
	}
	return nil
}

// BucketCounter is the per-bucket packet/byte counter record embedded
// in a GroupStats reply.
type BucketCounter struct {
	PacketCount uint64
	ByteCount   uint64
}

func (c *BucketCounter) Len() uint16 { return 16 }

func (c *BucketCounter) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 16)
	binary.BigEndian.PutUint64(data[0:8], c.PacketCount)
	binary.BigEndian.PutUint64(data[8:16], c.ByteCount)
	return
}

func (c *BucketCounter) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full BucketCounter")
	}
	c.PacketCount = binary.BigEndian.Uint64(data[0:8])
	c.ByteCount = binary.BigEndian.Uint64(data[8:16])
	return nil
}
