package common

import (
	"encoding/binary"
	"errors"
)

// ofp_header
type Header struct {
	Version uint8
	Type    uint8
	Length  uint16
	Xid     uint32
}

func (h *Header) Len() (n uint16) {
	return 8
}

func (h *Header) MarshalBinary() (data []byte, err error) {
	data = make([]byte, h.Len())
	n := 0
	data[n] = h.Version
	n += 1
	data[n] = h.Type
	n += 1
	binary.BigEndian.PutUint16(data[n:], h.Length)
	n += 2
	binary.BigEndian.PutUint32(data[n:], h.Xid)
	return
}

func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < int(h.Len()) {
		return errors.New("the []byte is too short to unmarshal a full Header message")
	}
	n := 0
	h.Version = data[n]
	n += 1
	h.Type = data[n]
	n += 1
	h.Length = binary.BigEndian.Uint16(data[n:])
	n += 2
	h.Xid = binary.BigEndian.Uint32(data[n:])
	return nil
}

// NewHeaderGenerator returns a closure that mints headers for the given
// wire version, assigning each call a freshly incremented Xid. A version
// package calls this once and stamps every message it constructs with
// the returned closure.
func NewHeaderGenerator(version uint8) func() Header {
	var xid uint32
	return func() Header {
		xid += 1
		return Header{
			Version: version,
			Xid:     xid,
		}
	}
}
