package openflow13

// This file implements the OpenFlow Extensible Match (OXM) codec: the
// per-field header layout, the field dispatch table, and the ofp_match
// container that walks a sequence of OXM TLVs.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/ofbase"
	"github.com/go-ofcodec/libopenflow13/util"
)

// ofp_oxm_class
const (
	OXM_CLASS_NXM_0          = 0x0000
	OXM_CLASS_NXM_1          = 0x0001
	OXM_CLASS_OPENFLOW_BASIC = 0x8000
	OXM_CLASS_EXPERIMENTER   = 0xffff
)

// oxm_ofb_match_fields - the standard OpenFlow 1.3 basic match fields.
const (
	OXM_FIELD_IN_PORT = iota
	OXM_FIELD_IN_PHY_PORT
	OXM_FIELD_METADATA
	OXM_FIELD_ETH_DST
	OXM_FIELD_ETH_SRC
	OXM_FIELD_ETH_TYPE
	OXM_FIELD_VLAN_VID
	OXM_FIELD_VLAN_PCP
	OXM_FIELD_IP_DSCP
	OXM_FIELD_IP_ECN
	OXM_FIELD_IP_PROTO
	OXM_FIELD_IPV4_SRC
	OXM_FIELD_IPV4_DST
	OXM_FIELD_TCP_SRC
	OXM_FIELD_TCP_DST
	OXM_FIELD_UDP_SRC
	OXM_FIELD_UDP_DST
	OXM_FIELD_SCTP_SRC
	OXM_FIELD_SCTP_DST
	OXM_FIELD_ICMPV4_TYPE
	OXM_FIELD_ICMPV4_CODE
	OXM_FIELD_ARP_OP
	OXM_FIELD_ARP_SPA
	OXM_FIELD_ARP_TPA
	OXM_FIELD_ARP_SHA
	OXM_FIELD_ARP_THA
	OXM_FIELD_IPV6_SRC
	OXM_FIELD_IPV6_DST
	OXM_FIELD_IPV6_FLABEL
	OXM_FIELD_ICMPV6_TYPE
	OXM_FIELD_ICMPV6_CODE
	OXM_FIELD_IPV6_ND_TARGET
	OXM_FIELD_IPV6_ND_SLL
	OXM_FIELD_IPV6_ND_TLL
	OXM_FIELD_MPLS_LABEL
	OXM_FIELD_MPLS_TC
	OXM_FIELD_MPLS_BOS
	OXM_FIELD_PBB_ISID
	OXM_FIELD_TUNNEL_ID
	OXM_FIELD_IPV6_EXTHDR
)

// UnknownOxm is returned when an OXM TLV's (class, field) pair is not in
// the recognized field table, or when its has-mask bit requests a masked
// variant that the field does not support.
type UnknownOxm struct {
	Header uint32
}

func (e *UnknownOxm) Error() string {
	return fmt.Sprintf("unknown OXM header: 0x%08x", e.Header)
}

// oxmFieldSpec describes how to decode the payload that follows an OXM
// header once its (class, field) has identified it: the unmasked payload
// width in bits and whether a masked (value, mask) variant exists. This
// is the single dispatch table that §4.2.1/§4.2.2 asks for, replacing
// the doubled masked/unmasked case lists of the original C switches.
type oxmFieldSpec struct {
	name       string
	bits       int
	maskable   bool
	rawPayload bool // true: payload bytes are copied verbatim, no integer swap (MACs, IPv6 addresses, PBB_ISID)
}

type oxmKey struct {
	class uint16
	field uint8
}

var oxmFieldTable = map[oxmKey]oxmFieldSpec{
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IN_PORT}:        {"OXM_OF_IN_PORT", 32, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IN_PHY_PORT}:    {"OXM_OF_IN_PHY_PORT", 32, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_METADATA}:       {"OXM_OF_METADATA", 64, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ETH_DST}:        {"OXM_OF_ETH_DST", 48, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ETH_SRC}:        {"OXM_OF_ETH_SRC", 48, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ETH_TYPE}:       {"OXM_OF_ETH_TYPE", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_VLAN_VID}:       {"OXM_OF_VLAN_VID", 16, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_VLAN_PCP}:       {"OXM_OF_VLAN_PCP", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IP_DSCP}:        {"OXM_OF_IP_DSCP", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IP_ECN}:         {"OXM_OF_IP_ECN", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IP_PROTO}:       {"OXM_OF_IP_PROTO", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV4_SRC}:       {"OXM_OF_IPV4_SRC", 32, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV4_DST}:       {"OXM_OF_IPV4_DST", 32, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_TCP_SRC}:        {"OXM_OF_TCP_SRC", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_TCP_DST}:        {"OXM_OF_TCP_DST", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_UDP_SRC}:        {"OXM_OF_UDP_SRC", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_UDP_DST}:        {"OXM_OF_UDP_DST", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_SCTP_SRC}:       {"OXM_OF_SCTP_SRC", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_SCTP_DST}:       {"OXM_OF_SCTP_DST", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ICMPV4_TYPE}:    {"OXM_OF_ICMPV4_TYPE", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ICMPV4_CODE}:    {"OXM_OF_ICMPV4_CODE", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ARP_OP}:         {"OXM_OF_ARP_OP", 16, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ARP_SPA}:        {"OXM_OF_ARP_SPA", 32, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ARP_TPA}:        {"OXM_OF_ARP_TPA", 32, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ARP_SHA}:        {"OXM_OF_ARP_SHA", 48, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ARP_THA}:        {"OXM_OF_ARP_THA", 48, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_SRC}:       {"OXM_OF_IPV6_SRC", 128, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_DST}:       {"OXM_OF_IPV6_DST", 128, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_FLABEL}:    {"OXM_OF_IPV6_FLABEL", 32, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ICMPV6_TYPE}:    {"OXM_OF_ICMPV6_TYPE", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_ICMPV6_CODE}:    {"OXM_OF_ICMPV6_CODE", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_ND_TARGET}: {"OXM_OF_IPV6_ND_TARGET", 128, false, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_ND_SLL}:    {"OXM_OF_IPV6_ND_SLL", 48, false, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_ND_TLL}:    {"OXM_OF_IPV6_ND_TLL", 48, false, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_MPLS_LABEL}:     {"OXM_OF_MPLS_LABEL", 32, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_MPLS_TC}:        {"OXM_OF_MPLS_TC", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_MPLS_BOS}:       {"OXM_OF_MPLS_BOS", 8, false, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_PBB_ISID}:       {"OXM_OF_PBB_ISID", 24, true, true},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_TUNNEL_ID}:      {"OXM_OF_TUNNEL_ID", 64, true, false},
	{OXM_CLASS_OPENFLOW_BASIC, OXM_FIELD_IPV6_EXTHDR}:    {"OXM_OF_IPV6_EXTHDR", 16, true, false},
}

var oxmFieldByName = func() map[string]oxmKey {
	m := make(map[string]oxmKey, len(oxmFieldTable))
	for k, v := range oxmFieldTable {
		m[v.name] = k
	}
	return m
}()

// oxm_header view helpers (class:16 | field:7 | hasmask:1 | length:8).

func oxmClass(header uint32) uint16 { return uint16(header >> 16) }
func oxmField(header uint32) uint8  { return uint8((header >> 9) & 0x7f) }
func oxmHasMask(header uint32) bool { return (header>>8)&0x1 != 0 }
func oxmLength(header uint32) uint8 { return uint8(header) }

func oxmMakeHeader(class uint16, field uint8, hasMask bool, length uint8) uint32 {
	h := uint32(class) << 16
	h |= uint32(field&0x7f) << 9
	if hasMask {
		h |= 1 << 8
	}
	h |= uint32(length)
	return h
}

func findOxmSpec(header uint32) (oxmKey, oxmFieldSpec, error) {
	key := oxmKey{class: oxmClass(header), field: oxmField(header)}
	spec, ok := oxmFieldTable[key]
	if !ok {
		return key, oxmFieldSpec{}, &UnknownOxm{Header: header}
	}
	if oxmHasMask(header) && !spec.maskable {
		return key, oxmFieldSpec{}, &UnknownOxm{Header: header}
	}
	return key, spec, nil
}

// newValueMessage allocates the util.Message that holds the payload of
// width bits bits: an integer message for numeric fields, or a raw byte
// message for fields the spec requires to be memcpy'd verbatim.
func newValueMessage(spec oxmFieldSpec) util.Message {
	if spec.rawPayload {
		return NewByteArrayField(spec.bits / 8)
	}
	switch spec.bits {
	case 8:
		return new(Uint8Message)
	case 16:
		return new(Uint16Message)
	case 24:
		return NewByteArrayField(3)
	case 32:
		return new(Uint32Message)
	case 64:
		return new(Uint64Message)
	case 128:
		return new(Uint128Message)
	default:
		return NewByteArrayField(spec.bits / 8)
	}
}

// MatchField is a single OXM TLV: the OXM header plus its value and,
// when the has-mask bit is set, a mask of equal width.
type MatchField struct {
	Class   uint16
	Field   uint8
	HasMask bool
	Value   util.Message
	Mask    util.Message
}

// NewMatchField looks the field up by its OXM_OF_* name and returns an
// empty MatchField of the right shape, ready to have Value (and Mask,
// if hasMask) populated.
func NewMatchField(name string, hasMask bool) (*MatchField, error) {
	key, ok := oxmFieldByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown OXM field name: %s", name)
	}
	spec := oxmFieldTable[key]
	if hasMask && !spec.maskable {
		return nil, fmt.Errorf("OXM field %s has no masked variant", name)
	}
	field := &MatchField{
		Class:   key.class,
		Field:   key.field,
		HasMask: hasMask,
		Value:   newValueMessage(spec),
	}
	if hasMask {
		field.Mask = newValueMessage(spec)
	}
	return field, nil
}

func (f *MatchField) payloadLen() uint16 {
	n := f.Value.Len()
	if f.HasMask {
		n += f.Mask.Len()
	}
	return n
}

func (f *MatchField) Len() uint16 {
	return 4 + f.payloadLen()
}

// MarshalBinary implements encode_oxm (§4.2.2): the header is converted
// first (from the host-order field id the caller set), then the value
// and, if present, the mask are written in the same order.
func (f *MatchField) MarshalBinary() (data []byte, err error) {
	header := oxmMakeHeader(f.Class, f.Field, f.HasMask, uint8(f.payloadLen()))
	data = make([]byte, 4, f.Len())
	binary.BigEndian.PutUint32(data, header)

	valueBytes, err := f.Value.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = append(data, valueBytes...)

	if f.HasMask {
		maskBytes, err := f.Mask.MarshalBinary()
		if err != nil {
			return nil, err
		}
		data = append(data, maskBytes...)
	}
	return data, nil
}

// UnmarshalBinary implements decode_oxm (§4.2.2): the header must be
// converted to host order before the field id is known, so the payload
// shape (width, masked-ness) can only be resolved after that first step.
func (f *MatchField) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("the []byte is too short to unmarshal an OXM header")
	}
	header := binary.BigEndian.Uint32(data[0:4])
	_, spec, err := findOxmSpec(header)
	if err != nil {
		return err
	}

	f.Class = oxmClass(header)
	f.Field = oxmField(header)
	f.HasMask = oxmHasMask(header)

	declared := int(oxmLength(header))
	if len(data) < 4+declared {
		return fmt.Errorf("the []byte is too short to unmarshal a full OXM TLV for %s", spec.name)
	}

	f.Value = newValueMessage(spec)
	n := 4
	if err := f.Value.UnmarshalBinary(data[n:]); err != nil {
		return err
	}
	n += int(f.Value.Len())

	if f.HasMask {
		f.Mask = newValueMessage(spec)
		if err := f.Mask.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
	}
	return nil
}

// ofp_match_type
const (
	OFPMT_STANDARD = 0
	OFPMT_OXM      = 1
)

// Match is the ofp_match block: a fixed two-word header followed by a
// run of OXM TLVs, tail-padded to a multiple of 8 bytes.
type Match struct {
	Type   uint16
	Length uint16
	Fields []MatchField
}

func NewMatch() *Match {
	return &Match{Type: OFPMT_OXM, Length: 4}
}

func (m *Match) AddField(f MatchField) {
	m.Fields = append(m.Fields, f)
	m.Length += f.Len()
}

func (m *Match) Len() uint16 {
	return ofbase.PadToWord(m.Length)
}

func (m *Match) MarshalBinary() (data []byte, err error) {
	length := uint16(4)
	fieldBytes := make([][]byte, len(m.Fields))
	for i, f := range m.Fields {
		b, err := f.MarshalBinary()
		if err != nil {
			return nil, err
		}
		fieldBytes[i] = b
		length += uint16(len(b))
	}
	m.Length = length

	data = make([]byte, ofbase.PadToWord(length))
	binary.BigEndian.PutUint16(data[0:2], m.Type)
	binary.BigEndian.PutUint16(data[2:4], m.Length)
	n := 4
	for _, b := range fieldBytes {
		copy(data[n:], b)
		n += len(b)
	}
	// tail already zero: make() zero-initializes, satisfying the
	// padding-normalization invariant without an explicit memset.
	return data, nil
}

// UnmarshalBinary implements decode_match (§4.2.4): it walks embedded
// OXM TLVs using the authoritative per-TLV length, stopping cleanly at
// the first truncated or malformed entry instead of raising an error.
func (m *Match) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("the []byte is too short to unmarshal an ofp_match header")
	}
	m.Type = binary.BigEndian.Uint16(data[0:2])
	m.Length = binary.BigEndian.Uint16(data[2:4])

	m.Fields = nil
	if m.Length < 4 {
		return nil
	}
	remaining := int(m.Length) - 4
	cursor := 4
	for remaining > 4 {
		if cursor+4 > len(data) {
			break
		}
		header := binary.BigEndian.Uint32(data[cursor : cursor+4])
		tlvLen := 4 + int(oxmLength(header))
		if tlvLen < 4 || tlvLen > remaining || cursor+tlvLen > len(data) {
			break
		}
		var field MatchField
		if err := field.UnmarshalBinary(data[cursor : cursor+tlvLen]); err != nil {
			return err
		}
		m.Fields = append(m.Fields, field)
		cursor += tlvLen
		remaining -= tlvLen
	}
	return nil
}
