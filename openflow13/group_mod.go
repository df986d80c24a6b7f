package openflow13

// GroupMod, supplementing the distilled OXM/message-codec spec with the
// group table management message its source implementation carries
// (see ruby/trema/messages/group-mod.c in the original): a command
// (add/modify/delete), a group type, and a bucket list.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/common"
)

// ofp_group
const (
	GroupMax = 0xffffff00
	GroupAll = 0xfffffffc
	GroupAny = 0xffffffff
)

// ofp_group_mod_command
const (
	GroupCommandAdd    = 0
	GroupCommandModify = 1
	GroupCommandDelete = 2
)

// ofp_group_type
const (
	GroupTypeAll      = 0
	GroupTypeSelect   = 1
	GroupTypeIndirect = 2
	GroupTypeFF       = 3
)

// GroupMod creates, modifies or deletes a group table entry.
type GroupMod struct {
	common.Header
	Command uint16
	Type    uint8
	pad     uint8
	GroupId uint32
	Buckets []Bucket
}

func NewGroupMod() *GroupMod {
	g := new(GroupMod)
	g.Header = NewOfp13Header()
	g.Header.Type = Type_GroupMod
	return g
}

func (g *GroupMod) AddBucket(b Bucket) {
	g.Buckets = append(g.Buckets, b)
}

func (g *GroupMod) Len() uint16 {
	n := g.Header.Len() + 8
	for _, b := range g.Buckets {
		n += b.Len()
	}
	return n
}

func (g *GroupMod) MarshalBinary() (data []byte, err error) {
	g.Header.Length = g.Len()
	hdrBytes, err := g.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, g.Len())
	copy(data, hdrBytes)
	n := int(g.Header.Len())
	binary.BigEndian.PutUint16(data[n:n+2], g.Command)
	data[n+2] = g.Type
	binary.BigEndian.PutUint32(data[n+4:n+8], g.GroupId)
	n += 8
	for _, b := range g.Buckets {
		bb, err := b.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], bb)
		n += int(b.Len())
	}
	return
}

func (g *GroupMod) UnmarshalBinary(data []byte) error {
	if err := g.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(g.Header.Len())
	if len(data) < n+8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupMod header")
	}
	g.Command = binary.BigEndian.Uint16(data[n : n+2])
	g.Type = data[n+2]
	g.GroupId = binary.BigEndian.Uint32(data[n+4 : n+8])
	n += 8
	g.Buckets = nil
	for n+16 <= int(g.Header.Length) {
		var b Bucket
		if err := b.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		blen := int(b.Length)
		if blen < 16 || n+blen > int(g.Header.Length) {
			break
		}
		g.Buckets = append(g.Buckets, b)
		n += blen
	}
	return nil
}
