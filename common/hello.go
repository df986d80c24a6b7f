package common

import (
	"encoding/binary"
	"fmt"
)

// ofp_hello_elem_type
const (
	HelloElemTypeVersionBitmap = 1
)

// HelloElement is satisfied by every ofp_hello_elem_header variant.
type HelloElement interface {
	Header() *HelloElemHeader
	Len() uint16
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}

// ofp_hello_elem_header
type HelloElemHeader struct {
	Type   uint16
	Length uint16
}

func (h *HelloElemHeader) Len() uint16 {
	return 4
}

func (h *HelloElemHeader) MarshalBinary() (data []byte, err error) {
	data = make([]byte, h.Len())
	binary.BigEndian.PutUint16(data[0:2], h.Type)
	binary.BigEndian.PutUint16(data[2:4], h.Length)
	return
}

func (h *HelloElemHeader) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("the []byte is too short to unmarshal a full HelloElemHeader")
	}
	h.Type = binary.BigEndian.Uint16(data[0:2])
	h.Length = binary.BigEndian.Uint16(data[2:4])
	return nil
}

func (h *HelloElemHeader) paddedLen() uint16 {
	return (h.Length + 7) / 8 * 8
}

// HelloElemVersionBitmap is the OFPHET_VERSIONBITMAP element: a bitmap of
// supported wire versions, bit N set meaning version N is supported.
type HelloElemVersionBitmap struct {
	HelloElemHeader
	Bitmaps []uint32
}

func NewHelloElemVersionBitmap(versions ...uint8) *HelloElemVersionBitmap {
	e := new(HelloElemVersionBitmap)
	e.Type = HelloElemTypeVersionBitmap
	maxWord := 0
	for _, v := range versions {
		if int(v)/32 > maxWord {
			maxWord = int(v) / 32
		}
	}
	e.Bitmaps = make([]uint32, maxWord+1)
	for _, v := range versions {
		e.Bitmaps[v/32] |= 1 << (v % 32)
	}
	e.Length = e.HelloElemHeader.Len() + uint16(4*len(e.Bitmaps))
	return e
}

func (e *HelloElemVersionBitmap) Header() *HelloElemHeader {
	return &e.HelloElemHeader
}

func (e *HelloElemVersionBitmap) Len() uint16 {
	return e.HelloElemHeader.paddedLen()
}

func (e *HelloElemVersionBitmap) MarshalBinary() (data []byte, err error) {
	data = make([]byte, e.Len())
	hdr, err := e.HelloElemHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, hdr)
	n := int(e.HelloElemHeader.Len())
	for _, w := range e.Bitmaps {
		binary.BigEndian.PutUint32(data[n:], w)
		n += 4
	}
	return
}

func (e *HelloElemVersionBitmap) UnmarshalBinary(data []byte) error {
	if err := e.HelloElemHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < int(e.Length) {
		return fmt.Errorf("the []byte is too short to unmarshal a full HelloElemVersionBitmap")
	}
	n := int(e.HelloElemHeader.Len())
	e.Bitmaps = nil
	for n+4 <= int(e.Length) {
		e.Bitmaps = append(e.Bitmaps, binary.BigEndian.Uint32(data[n:]))
		n += 4
	}
	return nil
}

// Supports reports whether version v is set in the bitmap.
func (e *HelloElemVersionBitmap) Supports(v uint8) bool {
	word := int(v) / 32
	if word >= len(e.Bitmaps) {
		return false
	}
	return e.Bitmaps[word]&(1<<(v%32)) != 0
}

// UnknownHelloElement is returned when a hello element carries a type
// other than OFPHET_VERSIONBITMAP.
type UnknownHelloElement struct {
	Type uint16
}

func (e *UnknownHelloElement) Error() string {
	return fmt.Sprintf("unknown hello element type: %d", e.Type)
}

// Hello is the ofp_hello message: a header followed by zero or more
// hello elements, walked by each element's own declared length and
// padded to a multiple of 8 bytes as required by 4.5.
type Hello struct {
	Header
	Elements []HelloElement
}

func NewHello(versions ...uint8) *Hello {
	h := new(Hello)
	h.Header = NewHeaderGenerator(uint8(highestVersion(versions)))()
	h.Header.Type = 0 // OFPT_HELLO
	if len(versions) > 0 {
		h.Elements = append(h.Elements, NewHelloElemVersionBitmap(versions...))
	}
	return h
}

func highestVersion(versions []uint8) uint8 {
	var max uint8
	for _, v := range versions {
		if v > max {
			max = v
		}
	}
	return max
}

func (h *Hello) Len() (n uint16) {
	n = h.Header.Len()
	for _, e := range h.Elements {
		n += e.Len()
	}
	return
}

func (h *Hello) MarshalBinary() (data []byte, err error) {
	h.Header.Length = h.Len()
	data, err = h.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	for _, e := range h.Elements {
		b, err := e.MarshalBinary()
		if err != nil {
			return nil, err
		}
		data = append(data, b...)
	}
	return
}

func (h *Hello) UnmarshalBinary(data []byte) error {
	if err := h.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(h.Header.Len())
	h.Elements = nil
	for n+4 <= int(h.Header.Length) {
		eh := new(HelloElemHeader)
		if err := eh.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		elemLen := int(eh.Length)
		if elemLen < 4 || n+elemLen > int(h.Header.Length) {
			break
		}
		var elem HelloElement
		switch eh.Type {
		case HelloElemTypeVersionBitmap:
			elem = new(HelloElemVersionBitmap)
		default:
			return &UnknownHelloElement{Type: eh.Type}
		}
		if err := elem.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		h.Elements = append(h.Elements, elem)
		n += int(elem.Len())
	}
	return nil
}
