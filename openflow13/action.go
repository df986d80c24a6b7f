package openflow13

// This file implements the OpenFlow 1.3 action codec (§4.3): every
// action variant shares an 8-byte header (type, len) and converts its
// own integer fields and padding, with SET_FIELD delegating to the OXM
// codec and EXPERIMENTER passing its payload through verbatim.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/ofbase"
)

// ofp_action_type
const (
	ActionType_Output       = 0
	ActionType_CopyTTLOut   = 11
	ActionType_CopyTTLIn    = 12
	ActionType_SetMPLSTTL   = 15
	ActionType_DecMPLSTTL   = 16
	ActionType_PushVLAN     = 17
	ActionType_PopVLAN      = 18
	ActionType_PushMPLS     = 19
	ActionType_PopMPLS      = 20
	ActionType_SetQueue     = 21
	ActionType_Group        = 22
	ActionType_SetNWTTL     = 23
	ActionType_DecNWTTL     = 24
	ActionType_SetField     = 25
	ActionType_PushPBB      = 26
	ActionType_PopPBB       = 27
	ActionType_Experimenter = 0xffff
)

const (
	ControllerMaxLenMax      = 0xffe5
	ControllerMaxLenNoBuffer = 0xffff
)

// Action is satisfied by every ofp_action_header variant.
type Action interface {
	Header() *ActionHeader
	Len() uint16
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}

// ofp_action_header
type ActionHeader struct {
	Type   uint16
	Length uint16
}

func (h *ActionHeader) Header() *ActionHeader { return h }

func (h *ActionHeader) Len() uint16 { return 8 }

func (h *ActionHeader) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint16(data[0:2], h.Type)
	binary.BigEndian.PutUint16(data[2:4], h.Length)
	return
}

func (h *ActionHeader) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionHeader")
	}
	h.Type = binary.BigEndian.Uint16(data[0:2])
	h.Length = binary.BigEndian.Uint16(data[2:4])
	return nil
}

// ActionOutput: send the packet out a port (or OFPP_CONTROLLER, with
// max_len bytes buffered).
type ActionOutput struct {
	ActionHeader
	Port   uint32
	MaxLen uint16
	pad    [6]uint8
}

func NewActionOutput(port uint32) *ActionOutput {
	return &ActionOutput{
		ActionHeader: ActionHeader{Type: ActionType_Output, Length: 16},
		Port:         port,
		MaxLen:       ControllerMaxLenNoBuffer,
	}
}

func (a *ActionOutput) Len() uint16 { return 16 }

func (a *ActionOutput) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 16)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[4:8], a.Port)
	binary.BigEndian.PutUint16(data[8:10], a.MaxLen)
	return
}

func (a *ActionOutput) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionOutput")
	}
	a.Port = binary.BigEndian.Uint32(data[4:8])
	a.MaxLen = binary.BigEndian.Uint16(data[8:10])
	return nil
}

// actionHeaderOnly covers the bare-header actions (COPY_TTL_OUT/IN,
// DEC_MPLS_TTL, POP_VLAN, DEC_NW_TTL) that carry no fields of their own
// beyond four padding bytes.
type actionHeaderOnly struct {
	ActionHeader
	pad [4]uint8
}

func (a *actionHeaderOnly) Len() uint16 { return 8 }

func (a *actionHeaderOnly) MarshalBinary() (data []byte, err error) {
	return a.ActionHeader.MarshalBinary()
}

func (a *actionHeaderOnly) UnmarshalBinary(data []byte) error {
	return a.ActionHeader.UnmarshalBinary(data)
}

type ActionCopyTTLOut struct{ actionHeaderOnly }
type ActionCopyTTLIn struct{ actionHeaderOnly }
type ActionDecMPLSTTL struct{ actionHeaderOnly }
type ActionPopVLAN struct{ actionHeaderOnly }
type ActionDecNWTTL struct{ actionHeaderOnly }

// ActionMPLSTTL sets the MPLS TTL (SET_MPLS_TTL).
type ActionMPLSTTL struct {
	ActionHeader
	MPLSTTL uint8
	pad     [3]uint8
}

func (a *ActionMPLSTTL) Len() uint16 { return 8 }

func (a *ActionMPLSTTL) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	data[4] = a.MPLSTTL
	return
}

func (a *ActionMPLSTTL) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionMPLSTTL")
	}
	a.MPLSTTL = data[4]
	return nil
}

// ActionNWTTL sets the IP TTL (SET_NW_TTL).
type ActionNWTTL struct {
	ActionHeader
	NWTTL uint8
	pad   [3]uint8
}

func (a *ActionNWTTL) Len() uint16 { return 8 }

func (a *ActionNWTTL) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	data[4] = a.NWTTL
	return
}

func (a *ActionNWTTL) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionNWTTL")
	}
	a.NWTTL = data[4]
	return nil
}

// ActionPush covers PUSH_VLAN, PUSH_MPLS and PUSH_PBB: a 16-bit
// ethertype of the new outermost tag/header.
type ActionPush struct {
	ActionHeader
	EtherType uint16
	pad       [2]uint8
}

func newActionPush(actionType uint16, etherType uint16) *ActionPush {
	return &ActionPush{ActionHeader: ActionHeader{Type: actionType, Length: 8}, EtherType: etherType}
}

func NewActionPushVLAN(etherType uint16) *ActionPush { return newActionPush(ActionType_PushVLAN, etherType) }
func NewActionPushMPLS(etherType uint16) *ActionPush { return newActionPush(ActionType_PushMPLS, etherType) }
func NewActionPushPBB(etherType uint16) *ActionPush  { return newActionPush(ActionType_PushPBB, etherType) }

func (a *ActionPush) Len() uint16 { return 8 }

func (a *ActionPush) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint16(data[4:6], a.EtherType)
	return
}

func (a *ActionPush) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionPush")
	}
	a.EtherType = binary.BigEndian.Uint16(data[4:6])
	return nil
}

// ActionPopMPLS pops the outermost MPLS tag, exposing ethertype as the
// new outer ethertype.
type ActionPopMPLS struct {
	ActionHeader
	EtherType uint16
	pad       [2]uint8
}

func (a *ActionPopMPLS) Len() uint16 { return 8 }

func (a *ActionPopMPLS) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint16(data[4:6], a.EtherType)
	return
}

func (a *ActionPopMPLS) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionPopMPLS")
	}
	a.EtherType = binary.BigEndian.Uint16(data[4:6])
	return nil
}

// ActionSetQueue directs the packet at a particular queue on its
// outbound port.
type ActionSetQueue struct {
	ActionHeader
	QueueId uint32
}

func (a *ActionSetQueue) Len() uint16 { return 8 }

func (a *ActionSetQueue) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[4:8], a.QueueId)
	return
}

func (a *ActionSetQueue) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionSetQueue")
	}
	a.QueueId = binary.BigEndian.Uint32(data[4:8])
	return nil
}

// ActionGroup forwards the packet to a group table entry.
type ActionGroup struct {
	ActionHeader
	GroupId uint32
}

func (a *ActionGroup) Len() uint16 { return 8 }

func (a *ActionGroup) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[4:8], a.GroupId)
	return
}

func (a *ActionGroup) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionGroup")
	}
	a.GroupId = binary.BigEndian.Uint32(data[4:8])
	return nil
}

// ActionSetField carries a single OXM TLV in its field region, per
// §4.3's SET_FIELD delegation to the OXM codec.
type ActionSetField struct {
	ActionHeader
	Field MatchField
}

func NewActionSetField(field MatchField) *ActionSetField {
	a := &ActionSetField{ActionHeader: ActionHeader{Type: ActionType_SetField}, Field: field}
	a.Length = a.Len()
	return a
}

func (a *ActionSetField) Len() uint16 {
	return ofbase.PadToWord(4 + a.Field.Len())
}

func (a *ActionSetField) MarshalBinary() (data []byte, err error) {
	a.Length = a.Len()
	fieldBytes, err := a.Field.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, a.Length)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	copy(data[4:], fieldBytes)
	return data, nil
}

func (a *ActionSetField) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if int(a.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionSetField")
	}
	return a.Field.UnmarshalBinary(data[4:a.Length])
}

// ActionExperimenter preserves experimenter_id and copies its trailing
// opaque payload through verbatim, per §4.3's passthrough rule.
type ActionExperimenter struct {
	ActionHeader
	Experimenter uint32
	Data         []byte
}

func (a *ActionExperimenter) Len() uint16 {
	return ofbase.PadToWord(8 + uint16(len(a.Data)))
}

func (a *ActionExperimenter) MarshalBinary() (data []byte, err error) {
	a.Length = a.Len()
	data = make([]byte, a.Length)
	hdrBytes, _ := a.ActionHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[4:8], a.Experimenter)
	copy(data[8:], a.Data)
	return
}

func (a *ActionExperimenter) UnmarshalBinary(data []byte) error {
	if err := a.ActionHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if int(a.Length) > len(data) || a.Length < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionExperimenter")
	}
	a.Experimenter = binary.BigEndian.Uint32(data[4:8])
	a.Data = append([]byte(nil), data[8:a.Length]...)
	return nil
}

// DecodeAction peeks at an ActionHeader and returns the concrete action
// variant it introduces, or UnknownAction if the type is not recognized.
// Both PUSH_PBB and POP_PBB are included in the recognized set (§9).
func DecodeAction(data []byte) (Action, error) {
	hdr := new(ActionHeader)
	if err := hdr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	var a Action
	switch hdr.Type {
	case ActionType_Output:
		a = new(ActionOutput)
	case ActionType_CopyTTLOut:
		a = new(ActionCopyTTLOut)
	case ActionType_CopyTTLIn:
		a = new(ActionCopyTTLIn)
	case ActionType_SetMPLSTTL:
		a = new(ActionMPLSTTL)
	case ActionType_DecMPLSTTL:
		a = new(ActionDecMPLSTTL)
	case ActionType_PushVLAN:
		a = new(ActionPush)
	case ActionType_PopVLAN:
		a = new(ActionPopVLAN)
	case ActionType_PushMPLS:
		a = new(ActionPush)
	case ActionType_PopMPLS:
		a = new(ActionPopMPLS)
	case ActionType_SetQueue:
		a = new(ActionSetQueue)
	case ActionType_Group:
		a = new(ActionGroup)
	case ActionType_SetNWTTL:
		a = new(ActionNWTTL)
	case ActionType_DecNWTTL:
		a = new(ActionDecNWTTL)
	case ActionType_SetField:
		a = new(ActionSetField)
	case ActionType_PushPBB:
		a = new(ActionPush)
	case ActionType_PopPBB:
		a = new(ActionPopPBB)
	case ActionType_Experimenter:
		a = new(ActionExperimenter)
	default:
		return nil, &UnknownAction{Type: hdr.Type}
	}
	if err := a.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return a, nil
}

// ActionPopPBB pops the outermost PBB (802.1ah) service instance tag.
type ActionPopPBB struct{ actionHeaderOnly }
