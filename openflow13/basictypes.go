package openflow13

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/ofbase"
)

// Uint8Message, Uint16Message, Uint32Message, Uint64Message and
// Uint128Message wrap a fixed-width integer as a util.Message so OXM
// values and masks of that width can be marshaled/unmarshaled like any
// other field. Same idiom as the wire-primitive wrappers used elsewhere
// in this codebase for single-value TLV payloads.

type Uint8Message uint8

func (m *Uint8Message) Len() uint16 { return 1 }
func (m *Uint8Message) MarshalBinary() (data []byte, err error) {
	return []byte{byte(*m)}, nil
}
func (m *Uint8Message) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return fmt.Errorf("the []byte is too short to unmarshal a Uint8Message")
	}
	*m = Uint8Message(data[0])
	return nil
}

type Uint16Message uint16

func (m *Uint16Message) Len() uint16 { return 2 }
func (m *Uint16Message) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(*m))
	return
}
func (m *Uint16Message) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("the []byte is too short to unmarshal a Uint16Message")
	}
	*m = Uint16Message(binary.BigEndian.Uint16(data))
	return nil
}

type Uint32Message uint32

func (m *Uint32Message) Len() uint16 { return 4 }
func (m *Uint32Message) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 4)
	binary.BigEndian.PutUint32(data, uint32(*m))
	return
}
func (m *Uint32Message) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("the []byte is too short to unmarshal a Uint32Message")
	}
	*m = Uint32Message(binary.BigEndian.Uint32(data))
	return nil
}

type Uint64Message uint64

func (m *Uint64Message) Len() uint16 { return 8 }
func (m *Uint64Message) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(*m))
	return
}
func (m *Uint64Message) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a Uint64Message")
	}
	*m = Uint64Message(binary.BigEndian.Uint64(data))
	return nil
}

// Uint128Message wraps ofbase.Uint128, exercising the C1 primitive-swap
// kit's 128-bit support. The standard 128-bit OXM fields (IPV6_SRC/DST,
// IPV6_ND_TARGET) are raw payloads and decode as ByteArrayField instead.
type Uint128Message ofbase.Uint128

func (m *Uint128Message) Len() uint16 { return 16 }
func (m *Uint128Message) MarshalBinary() (data []byte, err error) {
	e := ofbase.NewEncoder()
	e.PutUint128(ofbase.Uint128(*m))
	return e.Bytes(), nil
}
func (m *Uint128Message) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a Uint128Message")
	}
	d := ofbase.NewDecoder(data)
	*m = Uint128Message(d.ReadUint128())
	return nil
}

// ByteArrayField holds a fixed-width payload that is copied verbatim,
// with no integer byte-swap: Ethernet/ARP hardware addresses, IPv6
// addresses and ND targets, and the non-standard 3-byte PBB_ISID are
// already laid out in wire order and only need a length-preserving copy.
type ByteArrayField struct {
	Bytes []byte
}

func NewByteArrayField(width int) *ByteArrayField {
	return &ByteArrayField{Bytes: make([]byte, width)}
}

func (f *ByteArrayField) Len() uint16 {
	return uint16(len(f.Bytes))
}

func (f *ByteArrayField) MarshalBinary() (data []byte, err error) {
	data = make([]byte, len(f.Bytes))
	copy(data, f.Bytes)
	return
}

func (f *ByteArrayField) UnmarshalBinary(data []byte) error {
	if len(data) < len(f.Bytes) {
		return fmt.Errorf("the []byte is too short to unmarshal a %d-byte ByteArrayField", len(f.Bytes))
	}
	copy(f.Bytes, data[:len(f.Bytes)])
	return nil
}
