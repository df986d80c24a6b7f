package openflow13

// FlowMod, supplementing the distilled spec with the top-level message
// that actually carries a Match block (§4.2.4) and an instruction list
// (§4.4) onto the wire - the natural home for both codecs' output.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/common"
)

// ofp_flow_mod_command
const (
	FlowModCommandAdd          = 0
	FlowModCommandModify       = 1
	FlowModCommandModifyStrict = 2
	FlowModCommandDelete       = 3
	FlowModCommandDeleteStrict = 4
)

// ofp_flow_mod_flags
const (
	FlowModFlagSendFlowRem  = 1 << 0
	FlowModFlagCheckOverlap = 1 << 1
	FlowModFlagResetCounts  = 1 << 2
	FlowModFlagNoPktCounts  = 1 << 3
	FlowModFlagNoBytCounts  = 1 << 4
)

const (
	OFPTT_MAX = 0xfe
	OFPTT_ALL = 0xff
)

// FlowMod adds, modifies or deletes an entry in a flow table.
type FlowMod struct {
	common.Header
	Cookie       uint64
	CookieMask   uint64
	TableId      uint8
	Command      uint8
	IdleTimeout  uint16
	HardTimeout  uint16
	Priority     uint16
	BufferId     uint32
	OutPort      uint32
	OutGroup     uint32
	Flags        uint16
	pad          [2]uint8
	Match        Match
	Instructions []Instruction
}

func NewFlowMod() *FlowMod {
	f := new(FlowMod)
	f.Header = NewOfp13Header()
	f.Header.Type = Type_FlowMod
	f.BufferId = 0xffffffff
	f.OutPort = PortAny
	f.OutGroup = GroupAny
	f.Match = *NewMatch()
	return f
}

func (f *FlowMod) AddInstruction(i Instruction) {
	f.Instructions = append(f.Instructions, i)
}

func (f *FlowMod) Len() uint16 {
	n := f.Header.Len() + 40 + f.Match.Len()
	for _, i := range f.Instructions {
		n += i.Len()
	}
	return n
}

func (f *FlowMod) MarshalBinary() (data []byte, err error) {
	f.Header.Length = f.Len()
	hdrBytes, err := f.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, f.Len())
	copy(data, hdrBytes)
	n := int(f.Header.Len())
	binary.BigEndian.PutUint64(data[n:n+8], f.Cookie)
	binary.BigEndian.PutUint64(data[n+8:n+16], f.CookieMask)
	data[n+16] = f.TableId
	data[n+17] = f.Command
	binary.BigEndian.PutUint16(data[n+18:n+20], f.IdleTimeout)
	binary.BigEndian.PutUint16(data[n+20:n+22], f.HardTimeout)
	binary.BigEndian.PutUint16(data[n+22:n+24], f.Priority)
	binary.BigEndian.PutUint32(data[n+24:n+28], f.BufferId)
	binary.BigEndian.PutUint32(data[n+28:n+32], f.OutPort)
	binary.BigEndian.PutUint32(data[n+32:n+36], f.OutGroup)
	binary.BigEndian.PutUint16(data[n+36:n+38], f.Flags)
	n += 40

	matchBytes, err := f.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[n:], matchBytes)
	n += int(f.Match.Len())

	for _, i := range f.Instructions {
		ib, err := i.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], ib)
		n += int(i.Len())
	}
	return
}

func (f *FlowMod) UnmarshalBinary(data []byte) error {
	if err := f.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(f.Header.Len())
	if len(data) < n+40 {
		return fmt.Errorf("the []byte is too short to unmarshal a full FlowMod header")
	}
	f.Cookie = binary.BigEndian.Uint64(data[n : n+8])
	f.CookieMask = binary.BigEndian.Uint64(data[n+8 : n+16])
	f.TableId = data[n+16]
	f.Command = data[n+17]
	f.IdleTimeout = binary.BigEndian.Uint16(data[n+18 : n+20])
	f.HardTimeout = binary.BigEndian.Uint16(data[n+20 : n+22])
	f.Priority = binary.BigEndian.Uint16(data[n+22 : n+24])
	f.BufferId = binary.BigEndian.Uint32(data[n+24 : n+28])
	f.OutPort = binary.BigEndian.Uint32(data[n+28 : n+32])
	f.OutGroup = binary.BigEndian.Uint32(data[n+32 : n+36])
	f.Flags = binary.BigEndian.Uint16(data[n+36 : n+38])
	n += 40

	if err := f.Match.UnmarshalBinary(data[n:]); err != nil {
		return err
	}
	n += int(f.Match.Len())

	f.Instructions = nil
	for n+4 <= int(f.Header.Length) {
		hdr := new(InstrHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		ilen := int(hdr.Length)
		if ilen < 4 || n+ilen > int(f.Header.Length) {
			break
		}
		i, err := DecodeInstr(data[n:])
		if err != nil {
			return err
		}
		f.Instructions = append(f.Instructions, i)
		n += int(i.Len())
	}
	return nil
}

// FlowRemoved is sent by the switch when a flow entry is evicted or
// expires, carrying the counters it accumulated and the match that
// identified it.
type FlowRemoved struct {
	common.Header
	Cookie       uint64
	Priority     uint16
	Reason       uint8
	TableId      uint8
	DurationSec  uint32
	DurationNsec uint32
	IdleTimeout  uint16
	HardTimeout  uint16
	PacketCount  uint64
	ByteCount    uint64
	Match        Match
}

// ofp_flow_removed_reason
const (
	FlowRemovedReasonIdleTimeout = 0
	FlowRemovedReasonHardTimeout = 1
	FlowRemovedReasonDelete      = 2
	FlowRemovedReasonGroupDelete = 3
)

func (f *FlowRemoved) Len() uint16 {
	return f.Header.Len() + 40 + f.Match.Len()
}

func (f *FlowRemoved) MarshalBinary() (data []byte, err error) {
	f.Header.Length = f.Len()
	hdrBytes, err := f.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, f.Len())
	copy(data, hdrBytes)
	n := int(f.Header.Len())
	binary.BigEndian.PutUint64(data[n:n+8], f.Cookie)
	binary.BigEndian.PutUint16(data[n+8:n+10], f.Priority)
	data[n+10] = f.Reason
	data[n+11] = f.TableId
	binary.BigEndian.PutUint32(data[n+12:n+16], f.DurationSec)
	binary.BigEndian.PutUint32(data[n+16:n+20], f.DurationNsec)
	binary.BigEndian.PutUint16(data[n+20:n+22], f.IdleTimeout)
	binary.BigEndian.PutUint16(data[n+22:n+24], f.HardTimeout)
	binary.BigEndian.PutUint64(data[n+24:n+32], f.PacketCount)
	binary.BigEndian.PutUint64(data[n+32:n+40], f.ByteCount)
	n += 40
	matchBytes, err := f.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[n:], matchBytes)
	return
}

func (f *FlowRemoved) UnmarshalBinary(data []byte) error {
	if err := f.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(f.Header.Len())
	if len(data) < n+40 {
		return fmt.Errorf("the []byte is too short to unmarshal a full FlowRemoved header")
	}
	f.Cookie = binary.BigEndian.Uint64(data[n : n+8])
	f.Priority = binary.BigEndian.Uint16(data[n+8 : n+10])
	f.Reason = data[n+10]
	f.TableId = data[n+11]
	f.DurationSec = binary.BigEndian.Uint32(data[n+12 : n+16])
	f.DurationNsec = binary.BigEndian.Uint32(data[n+16 : n+20])
	f.IdleTimeout = binary.BigEndian.Uint16(data[n+20 : n+22])
	f.HardTimeout = binary.BigEndian.Uint16(data[n+22 : n+24])
	f.PacketCount = binary.BigEndian.Uint64(data[n+24 : n+32])
	f.ByteCount = binary.BigEndian.Uint64(data[n+32 : n+40])
	n += 40
	return f.Match.UnmarshalBinary(data[n:])
}
