package openflow13

// PacketQueue and its queue properties (§4.5): a fixed header followed
// by a walked list of queue property TLVs (MIN_RATE, MAX_RATE,
// EXPERIMENTER).

import (
	"encoding/binary"
	"fmt"
)

// ofp_queue_properties
const (
	QueuePropertyMinRate      = 1
	QueuePropertyMaxRate      = 2
	QueuePropertyExperimenter = 0xffff
)

// UnknownQueueProperty is returned when a queue property's type field
// is not one of the OFPQT_* variants this codec recognizes.
type UnknownQueueProperty struct {
	Type uint16
}

func (e *UnknownQueueProperty) Error() string {
	return fmt.Sprintf("unknown queue property type: %d", e.Type)
}

// QueueProperty is satisfied by every ofp_queue_prop_header variant.
type QueueProperty interface {
	Len() uint16
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}

type QueuePropHeader struct {
	Property uint16
	Length   uint16
	pad      [4]uint8
}

func (h *QueuePropHeader) Len() uint16 { return 8 }

func (h *QueuePropHeader) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint16(data[0:2], h.Property)
	binary.BigEndian.PutUint16(data[2:4], h.Length)
	return
}

func (h *QueuePropHeader) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full QueuePropHeader")
	}
	h.Property = binary.BigEndian.Uint16(data[0:2])
	h.Length = binary.BigEndian.Uint16(data[2:4])
	return nil
}

// QueuePropRate underlies both MIN_RATE and MAX_RATE: a permille rate
// (0-1000), or 0xffff meaning "unconfigured".
type QueuePropRate struct {
	QueuePropHeader
	Rate uint16
	pad  [6]uint8
}

func newQueuePropRate(property uint16, rate uint16) *QueuePropRate {
	return &QueuePropRate{QueuePropHeader: QueuePropHeader{Property: property, Length: 16}, Rate: rate}
}

func NewQueuePropMinRate(rate uint16) *QueuePropRate { return newQueuePropRate(QueuePropertyMinRate, rate) }
func NewQueuePropMaxRate(rate uint16) *QueuePropRate { return newQueuePropRate(QueuePropertyMaxRate, rate) }

func (p *QueuePropRate) Len() uint16 { return 16 }

func (p *QueuePropRate) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 16)
	hdrBytes, _ := p.QueuePropHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint16(data[8:10], p.Rate)
	return
}

func (p *QueuePropRate) UnmarshalBinary(data []byte) error {
	if err := p.QueuePropHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full QueuePropRate")
	}
	p.Rate = binary.BigEndian.Uint16(data[8:10])
	return nil
}

// QueuePropExperimenter passes its payload through verbatim after the
// experimenter id, per the same passthrough rule as actions/instructions.
type QueuePropExperimenter struct {
	QueuePropHeader
	Experimenter uint32
	Data         []byte
}

func (p *QueuePropExperimenter) Len() uint16 {
	return 16 + uint16(len(p.Data))
}

func (p *QueuePropExperimenter) MarshalBinary() (data []byte, err error) {
	p.Length = p.Len()
	data = make([]byte, p.Length)
	hdrBytes, _ := p.QueuePropHeader.MarshalBinary()
	copy(data, hdrBytes)
	binary.BigEndian.PutUint32(data[8:12], p.Experimenter)
	copy(data[16:], p.Data)
	return
}

func (p *QueuePropExperimenter) UnmarshalBinary(data []byte) error {
	if err := p.QueuePropHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if int(p.Length) > len(data) || p.Length < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full QueuePropExperimenter")
	}
	p.Experimenter = binary.BigEndian.Uint32(data[8:12])
	p.Data = append([]byte(nil), data[16:p.Length]...)
	return nil
}

func decodeQueueProperty(data []byte) (QueueProperty, error) {
	hdr := new(QueuePropHeader)
	if err := hdr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	var p QueueProperty
	switch hdr.Property {
	case QueuePropertyMinRate, QueuePropertyMaxRate:
		p = new(QueuePropRate)
	case QueuePropertyExperimenter:
		p = new(QueuePropExperimenter)
	default:
		return nil, &UnknownQueueProperty{Type: hdr.Property}
	}
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

// PacketQueue (ofp_packet_queue) describes one queue attached to a port.
type PacketQueue struct {
	QueueId    uint32
	Port       uint32
	Length     uint16
	pad        [6]uint8
	Properties []QueueProperty
}

func (q *PacketQueue) Len() uint16 {
	n := uint16(16)
	for _, p := range q.Properties {
		n += p.Len()
	}
	return n
}

func (q *PacketQueue) MarshalBinary() (data []byte, err error) {
	q.Length = q.Len()
	data = make([]byte, q.Length)
	binary.BigEndian.PutUint32(data[0:4], q.QueueId)
	binary.BigEndian.PutUint32(data[4:8], q.Port)
	binary.BigEndian.PutUint16(data[8:10], q.Length)
	n := 16
	for _, p := range q.Properties {
		pb, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], pb)
		n += int(p.Len())
	}
	return
}

func (q *PacketQueue) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PacketQueue header")
	}
	q.QueueId = binary.BigEndian.Uint32(data[0:4])
	q.Port = binary.BigEndian.Uint32(data[4:8])
	q.Length = binary.BigEndian.Uint16(data[8:10])
	if int(q.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full PacketQueue")
	}
	q.Properties = nil
	n := 16
	for n+8 <= int(q.Length) {
		hdr := new(QueuePropHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		plen := int(hdr.Length)
		if plen < 8 || n+plen > int(q.Length) {
			break
		}
		p, err := decodeQueueProperty(data[n : n+plen])
		if err != nil {
			return err
		}
		q.Properties = append(q.Properties, p)
		n += plen
	}
	return nil
}
