package openflow13

// This file implements the OpenFlow 1.3 instruction codec (§4.4).
// Unlike the action codec, a "short" instruction is valid: any
// instruction whose declared length equals the 4-byte common header is
// converted header-only and carries no body.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/ofbase"
)

// ofp_instruction_type
const (
	InstrType_GotoTable     = 1
	InstrType_WriteMetadata = 2
	InstrType_WriteActions  = 3
	InstrType_ApplyActions  = 4
	InstrType_ClearActions  = 5
	InstrType_Meter         = 6
	InstrType_Experimenter  = 0xffff
)

// Instruction is satisfied by every ofp_instruction variant.
type Instruction interface {
	Header() *InstrHeader
	Len() uint16
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}

// ofp_instruction_header (the 4-byte common prefix every instruction
// variant shares; full-width variants extend it with their own body).
type InstrHeader struct {
	Type   uint16
	Length uint16
}

func (h *InstrHeader) Header() *InstrHeader { return h }

func (h *InstrHeader) Len() uint16 { return 4 }

func (h *InstrHeader) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], h.Type)
	binary.BigEndian.PutUint16(data[2:4], h.Length)
	return
}

func (h *InstrHeader) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstrHeader")
	}
	h.Type = binary.BigEndian.Uint16(data[0:2])
	h.Length = binary.BigEndian.Uint16(data[2:4])
	return nil
}

// InstrGotoTable: jump execution to a later flow table.
type InstrGotoTable struct {
	InstrHeader
	TableId uint8
	pad     [3]uint8
}

func NewInstrGotoTable(tableId uint8) *InstrGotoTable {
	return &InstrGotoTable{InstrHeader: InstrHeader{Type: InstrType_GotoTable, Length: 8}, TableId: tableId}
}

func (i *InstrGotoTable) Len() uint16 { return 8 }

func (i *InstrGotoTable) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := i.InstrHeader.MarshalBinary()
	copy(data, hdrBytes)
	data[4] = i.TableId
	return
}

func (i *InstrGotoTable) UnmarshalBinary(data []byte) error {
	if err := i.InstrHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstrGotoTable")
	}
	i.TableId = data[4]
	return nil
}

// InstrWriteMetadata ANDs-and-ORs a 64-bit metadata value into the
// pipeline's metadata register, masked by Mask.
type InstrWriteMetadata struct {
	InstrHeader
	pad      [4]uint8
	Metadata uint64
	Mask     uint64
}

func NewInstrWriteMetadata(metadata, mask uint64) *InstrWriteMetadata {
	return &InstrWriteMetadata{InstrHeader: InstrHeader{Type: InstrType_WriteMetadata, Length: 24}, Metadata: metadata, Mask: mask}
}

func (i *InstrWriteMetadata) Len() uint16 { return 24 }

func (i *InstrWriteMetadata) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 24)
	hdrBytes, _ := i.InstrHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint64(data[8:16], i.Metadata)
	binary.BigEndian.PutUint64(data[16:24], i.Mask)
	return
}

func (i *InstrWriteMetadata) UnmarshalBinary(data []byte) error {
	if err := i.InstrHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 24 {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstrWriteMetadata")
	}
	i.Metadata = binary.BigEndian.Uint64(data[8:16])
	i.Mask = binary.BigEndian.Uint64(data[16:24])
	return nil
}

// InstrActions covers WRITE_ACTIONS, APPLY_ACTIONS and CLEAR_ACTIONS: a
// common header, four pad bytes, then a walked action list.
type InstrActions struct {
	InstrHeader
	pad     [4]uint8
	Actions []Action
}

func NewInstrActions(instrType uint16) *InstrActions {
	return &InstrActions{InstrHeader: InstrHeader{Type: instrType, Length: 8}}
}

func (i *InstrActions) AddAction(a Action) {
	i.Actions = append(i.Actions, a)
	i.Length += a.Len()
}

func (i *InstrActions) Len() uint16 {
	n := uint16(8)
	for _, a := range i.Actions {
		n += a.Len()
	}
	return n
}

func (i *InstrActions) MarshalBinary() (data []byte, err error) {
	i.Length = i.Len()
	data = make([]byte, i.Length)
	hdrBytes, _ := i.InstrHeader.MarshalBinary()
	copy(data, hdrBytes)
	n := 8
	for _, a := range i.Actions {
		ab, err := a.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], ab)
		n += int(a.Len())
	}
	return
}

func (i *InstrActions) UnmarshalBinary(data []byte) error {
	if err := i.InstrHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if int(i.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstrActions")
	}
	i.Actions = nil
	n := 8
	for n+8 <= int(i.Length) {
		hdr := new(ActionHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		alen := int(hdr.Length)
		if alen < 8 || n+alen > int(i.Length) {
			break
		}
		a, err := DecodeAction(data[n : n+alen])
		if err != nil {
			return err
		}
		i.Actions = append(i.Actions, a)
		n += alen
	}
	return nil
}

// InstrMeter directs the flow through a meter before further processing.
type InstrMeter struct {
	InstrHeader
	MeterId uint32
}

func NewInstrMeter(meterId uint32) *InstrMeter {
	return &InstrMeter{InstrHeader: InstrHeader{Type: InstrType_Meter, Length: 8}, MeterId: meterId}
}

func (i *InstrMeter) Len() uint16 { return 8 }

func (i *InstrMeter) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := i.InstrHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[4:8], i.MeterId)
	return
}

func (i *InstrMeter) UnmarshalBinary(data []byte) error {
	if err := i.InstrHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstrMeter")
	}
	i.MeterId = binary.BigEndian.Uint32(data[4:8])
	return nil
}

// InstrExperimenter preserves experimenter_id and copies its trailing
// opaque payload through verbatim, per §4.4's passthrough rule.
type InstrExperimenter struct {
	InstrHeader
	Experimenter uint32
	Data         []byte
}

func (i *InstrExperimenter) Len() uint16 {
	return ofbase.PadToWord(8 + uint16(len(i.Data)))
}

func (i *InstrExperimenter) MarshalBinary() (data []byte, err error) {
	i.Length = i.Len()
	data = make([]byte, i.Length)
	hdrBytes, _ := i.InstrHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[4:8], i.Experimenter)
	copy(data[8:], i.Data)
	return
}

func (i *InstrExperimenter) UnmarshalBinary(data []byte) error {
	if err := i.InstrHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if int(i.Length) > len(data) || i.Length < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstrExperimenter")
	}
	i.Experimenter = binary.BigEndian.Uint32(data[4:8])
	i.Data = append([]byte(nil), data[8:i.Length]...)
	return nil
}

// DecodeInstr peeks at an InstrHeader and returns the concrete
// instruction variant it introduces. A short instruction (Length == 4)
// is returned as a bare InstrHeader; unrecognized types return
// UnknownInstruction rather than a nil interface.
func DecodeInstr(data []byte) (Instruction, error) {
	hdr := new(InstrHeader)
	if err := hdr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	if hdr.Length == 4 {
		return hdr, nil
	}
	var i Instruction
	switch hdr.Type {
	case InstrType_GotoTable:
		i = new(InstrGotoTable)
	case InstrType_WriteMetadata:
		i = new(InstrWriteMetadata)
	case InstrType_WriteActions, InstrType_ApplyActions, InstrType_ClearActions:
		i = new(InstrActions)
	case InstrType_Meter:
		i = new(InstrMeter)
	case InstrType_Experimenter:
		i = new(InstrExperimenter)
	default:
		return nil, &UnknownInstruction{Type: hdr.Type}
	}
	if err := i.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return i, nil
}
