package openflow13

// The remaining ofp_header-framed control messages: connection setup
// (Hello lives in common), liveness (echo), capability exchange
// (features), table configuration, asynchronous packet delivery, and
// barrier synchronization. Most carry only fixed fields; PacketIn embeds
// a Match and PacketOut embeds an action list, so they round out the
// message set that actually exercises the codecs above on the wire.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/common"
)

// EchoRequest/EchoReply carry an opaque payload the peer must mirror
// back verbatim.
type EchoRequest struct {
	common.Header
	Data []byte
}

func NewEchoRequest() *EchoRequest {
	e := new(EchoRequest)
	e.Header = NewOfp13Header()
	e.Header.Type = Type_EchoRequest
	return e
}

func (e *EchoRequest) Len() uint16 { return e.Header.Len() + uint16(len(e.Data)) }

func (e *EchoRequest) MarshalBinary() (data []byte, err error) {
	e.Header.Length = e.Len()
	hdrBytes, err := e.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = append(hdrBytes, e.Data...)
	return
}

func (e *EchoRequest) UnmarshalBinary(data []byte) error {
	if err := e.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(e.Header.Len())
	if int(e.Header.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full EchoRequest")
	}
	e.Data = append([]byte(nil), data[n:e.Header.Length]...)
	return nil
}

type EchoReply struct {
	common.Header
	Data []byte
}

func NewEchoReply() *EchoReply {
	e := new(EchoReply)
	e.Header = NewOfp13Header()
	e.Header.Type = Type_EchoReply
	return e
}

func (e *EchoReply) Len() uint16 { return e.Header.Len() + uint16(len(e.Data)) }

func (e *EchoReply) MarshalBinary() (data []byte, err error) {
	e.Header.Length = e.Len()
	hdrBytes, err := e.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = append(hdrBytes, e.Data...)
	return
}

func (e *EchoReply) UnmarshalBinary(data []byte) error {
	if err := e.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(e.Header.Len())
	if int(e.Header.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full EchoReply")
	}
	e.Data = append([]byte(nil), data[n:e.Header.Length]...)
	return nil
}

// ofp_error_type (a representative subset; experimenter errors carry
// their own type/code space this library does not interpret).
const (
	ErrorTypeHelloFailed         = 0
	ErrorTypeBadRequest          = 1
	ErrorTypeBadAction           = 2
	ErrorTypeBadInstruction      = 3
	ErrorTypeBadMatch            = 4
	ErrorTypeFlowModFailed       = 5
	ErrorTypeGroupModFailed      = 6
	ErrorTypePortModFailed       = 7
	ErrorTypeTableModFailed      = 8
	ErrorTypeQueueOpFailed       = 9
	ErrorTypeSwitchConfigFailed  = 10
	ErrorTypeRoleRequestFailed   = 11
	ErrorTypeMeterModFailed      = 12
	ErrorTypeTableFeaturesFailed = 13
	ErrorTypeExperimenter        = 0xffff
)

// ErrorMsg reports that a previous request could not be satisfied; Data
// holds as much of the offending request as fit, copied verbatim.
type ErrorMsg struct {
	common.Header
	Type uint16
	Code uint16
	Data []byte
}

func (e *ErrorMsg) Len() uint16 { return e.Header.Len() + 4 + uint16(len(e.Data)) }

func (e *ErrorMsg) MarshalBinary() (data []byte, err error) {
	e.Header.Length = e.Len()
	hdrBytes, err := e.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, e.Len())
	copy(data, hdrBytes)
	n := int(e.Header.Len())
	binary.BigEndian.PutUint16(data[n:n+2], e.Type)
	binary.BigEndian.PutUint16(data[n+2:n+4], e.Code)
	copy(data[n+4:], e.Data)
	return
}

func (e *ErrorMsg) UnmarshalBinary(data []byte) error {
	if err := e.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(e.Header.Len())
	if len(data) < n+4 || int(e.Header.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full ErrorMsg")
	}
	e.Type = binary.BigEndian.Uint16(data[n : n+2])
	e.Code = binary.BigEndian.Uint16(data[n+2 : n+4])
	e.Data = append([]byte(nil), data[n+4:e.Header.Length]...)
	return nil
}

// ofp_capabilities
const (
	CapabilityFlowStats   = 1 << 0
	CapabilityTableStats  = 1 << 1
	CapabilityPortStats   = 1 << 2
	CapabilityGroupStats  = 1 << 3
	CapabilityIPReasm     = 1 << 5
	CapabilityQueueStats  = 1 << 6
	CapabilityPortBlocked = 1 << 8
)

// FeaturesRequest asks the switch to describe itself.
type FeaturesRequest struct {
	common.Header
}

func NewFeaturesRequest() *FeaturesRequest {
	f := new(FeaturesRequest)
	f.Header = NewOfp13Header()
	f.Header.Type = Type_FeaturesRequest
	return f
}

func (f *FeaturesRequest) Len() uint16 { return f.Header.Len() }

func (f *FeaturesRequest) MarshalBinary() (data []byte, err error) {
	f.Header.Length = f.Len()
	return f.Header.MarshalBinary()
}

func (f *FeaturesRequest) UnmarshalBinary(data []byte) error {
	return f.Header.UnmarshalBinary(data)
}

// FeaturesReply (ofp_switch_features) describes the switch's datapath
// id, buffer/table capacity, and capabilities. It carries no port list.
type FeaturesReply struct {
	common.Header
	DatapathId   uint64
	NBuffers     uint32
	NTables      uint8
	AuxiliaryId  uint8
	pad          [2]uint8
	Capabilities uint32
	Reserved     uint32
}

func NewFeaturesReply() *FeaturesReply {
	f := new(FeaturesReply)
	f.Header = NewOfp13Header()
	f.Header.Type = Type_FeaturesReply
	return f
}

func (f *FeaturesReply) Len() uint16 { return f.Header.Len() + 24 }

func (f *FeaturesReply) MarshalBinary() (data []byte, err error) {
	f.Header.Length = f.Len()
	hdrBytes, err := f.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, f.Len())
	copy(data, hdrBytes)
	n := int(f.Header.Len())
	binary.BigEndian.PutUint64(data[n:n+8], f.DatapathId)
	binary.BigEndian.PutUint32(data[n+8:n+12], f.NBuffers)
	data[n+12] = f.NTables
	data[n+13] = f.AuxiliaryId
	binary.BigEndian.PutUint32(data[n+16:n+20], f.Capabilities)
	binary.BigEndian.PutUint32(data[n+20:n+24], f.Reserved)
	return
}

func (f *FeaturesReply) UnmarshalBinary(data []byte) error {
	if err := f.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(f.Header.Len())
	if len(data) < n+24 {
		return fmt.Errorf("the []byte is too short to unmarshal a full FeaturesReply")
	}
	f.DatapathId = binary.BigEndian.Uint64(data[n : n+8])
	f.NBuffers = binary.BigEndian.Uint32(data[n+8 : n+12])
	f.NTables = data[n+12]
	f.AuxiliaryId = data[n+13]
	f.Capabilities = binary.BigEndian.Uint32(data[n+16 : n+20])
	f.Reserved = binary.BigEndian.Uint32(data[n+20 : n+24])
	return nil
}

// TableMod configures table-wide behavior (currently just OFPTC_*
// eviction/vacancy flags in 1.3).
type TableMod struct {
	common.Header
	TableId uint8
	pad     [3]uint8
	Config  uint32
}

func (t *TableMod) Len() uint16 { return t.Header.Len() + 8 }

func (t *TableMod) MarshalBinary() (data []byte, err error) {
	t.Header.Length = t.Len()
	hdrBytes, err := t.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, t.Len())
	copy(data, hdrBytes)
	n := int(t.Header.Len())
	data[n] = t.TableId
	binary.BigEndian.PutUint32(data[n+4:n+8], t.Config)
	return
}

func (t *TableMod) UnmarshalBinary(data []byte) error {
	if err := t.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(t.Header.Len())
	if len(data) < n+8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full TableMod")
	}
	t.TableId = data[n]
	t.Config = binary.BigEndian.Uint32(data[n+4 : n+8])
	return nil
}

// ofp_packet_in_reason
const (
	PacketInReasonNoMatch    = 0
	PacketInReasonAction     = 1
	PacketInReasonInvalidTTL = 2
)

// PacketIn delivers a packet the pipeline sent to the controller,
// together with the match computed over it and however much of the
// packet fit after BufferId truncation.
type PacketIn struct {
	common.Header
	BufferId uint32
	TotalLen uint16
	Reason   uint8
	TableId  uint8
	Cookie   uint64
	Match    Match
	pad      [2]uint8
	Data     []byte
}

func (p *PacketIn) Len() uint16 {
	return p.Header.Len() + 16 + p.Match.Len() + 2 + uint16(len(p.Data))
}

func (p *PacketIn) MarshalBinary() (data []byte, err error) {
	p.Header.Length = p.Len()
	hdrBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, p.Len())
	copy(data, hdrBytes)
	n := int(p.Header.Len())
	binary.BigEndian.PutUint32(data[n:n+4], p.BufferId)
	binary.BigEndian.PutUint16(data[n+4:n+6], p.TotalLen)
	data[n+6] = p.Reason
	data[n+7] = p.TableId
	binary.BigEndian.PutUint64(data[n+8:n+16], p.Cookie)
	n += 16
	matchBytes, err := p.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[n:], matchBytes)
	n += int(p.Match.Len()) + 2
	copy(data[n:], p.Data)
	return
}

func (p *PacketIn) UnmarshalBinary(data []byte) error {
	if err := p.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(p.Header.Len())
	if len(data) < n+16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PacketIn header")
	}
	p.BufferId = binary.BigEndian.Uint32(data[n : n+4])
	p.TotalLen = binary.BigEndian.Uint16(data[n+4 : n+6])
	p.Reason = data[n+6]
	p.TableId = data[n+7]
	p.Cookie = binary.BigEndian.Uint64(data[n+8 : n+16])
	n += 16
	if err := p.Match.UnmarshalBinary(data[n:]); err != nil {
		return err
	}
	n += int(p.Match.Len()) + 2
	if n > int(p.Header.Length) {
		return fmt.Errorf("PacketIn match block overruns its declared length")
	}
	p.Data = append([]byte(nil), data[n:p.Header.Length]...)
	return nil
}

// PacketOut instructs the switch to inject a packet and apply a list of
// actions to it.
type PacketOut struct {
	common.Header
	BufferId uint32
	InPort   uint32
	Actions  []Action
	Data     []byte
}

func NewPacketOut() *PacketOut {
	p := new(PacketOut)
	p.Header = NewOfp13Header()
	p.Header.Type = Type_PacketOut
	p.BufferId = 0xffffffff
	p.InPort = PortController
	return p
}

func (p *PacketOut) Len() uint16 {
	n := p.Header.Len() + 16
	for _, a := range p.Actions {
		n += a.Len()
	}
	return n + uint16(len(p.Data))
}

func (p *PacketOut) MarshalBinary() (data []byte, err error) {
	p.Header.Length = p.Len()
	hdrBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, p.Len())
	copy(data, hdrBytes)
	n := int(p.Header.Len())
	binary.BigEndian.PutUint32(data[n:n+4], p.BufferId)
	binary.BigEndian.PutUint32(data[n+4:n+8], p.InPort)
	actionsLen := uint16(0)
	for _, a := range p.Actions {
		actionsLen += a.Len()
	}
	binary.BigEndian.PutUint16(data[n+8:n+10], actionsLen)
	n += 16
	for _, a := range p.Actions {
		ab, err := a.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], ab)
		n += int(a.Len())
	}
	copy(data[n:], p.Data)
	return
}

func (p *PacketOut) UnmarshalBinary(data []byte) error {
	if err := p.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(p.Header.Len())
	if len(data) < n+16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PacketOut header")
	}
	p.BufferId = binary.BigEndian.Uint32(data[n : n+4])
	p.InPort = binary.BigEndian.Uint32(data[n+4 : n+8])
	actionsLen := int(binary.BigEndian.Uint16(data[n+8 : n+10]))
	n += 16
	p.Actions = nil
	end := n + actionsLen
	for n+8 <= end {
		hdr := new(ActionHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		alen := int(hdr.Length)
		if alen < 8 || n+alen > end {
			break
		}
		a, err := DecodeAction(data[n : n+alen])
		if err != nil {
			return err
		}
		p.Actions = append(p.Actions, a)
		n += alen
	}
	n = end
	if int(p.Header.Length) > len(data) {
		return fmt.Errorf("PacketOut declared length overruns the buffer")
	}
	p.Data = append([]byte(nil), data[n:p.Header.Length]...)
	return nil
}

// BarrierRequest/BarrierReply bracket a batch of requests: the switch
// must finish processing everything before the barrier before replying.
type BarrierRequest struct {
	common.Header
}

func (b *BarrierRequest) Len() uint16 { return b.Header.Len() }
func (b *BarrierRequest) MarshalBinary() (data []byte, err error) {
	b.Header.Length = b.Len()
	return b.Header.MarshalBinary()
}
func (b *BarrierRequest) UnmarshalBinary(data []byte) error { return b.Header.UnmarshalBinary(data) }

type BarrierReply struct {
	common.Header
}

func (b *BarrierReply) Len() uint16 { return b.Header.Len() }
func (b *BarrierReply) MarshalBinary() (data []byte, err error) {
	b.Header.Length = b.Len()
	return b.Header.MarshalBinary()
}
func (b *BarrierReply) UnmarshalBinary(data []byte) error { return b.Header.UnmarshalBinary(data) }
