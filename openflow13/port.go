package openflow13

// Port (ofp_port) and PortStatus/PortMod, grounded on §4.5's port
// conversion rule: swap the integer fields, copy hw_addr/name verbatim,
// zero the pads.

import (
	"encoding/binary"
	"fmt"

	"github.com/go-ofcodec/libopenflow13/common"
)

// ofp_port_no (reserved values)
const (
	PortMax        = 0xffffff00
	PortInPort     = 0xfffffff8
	PortTable      = 0xfffffff9
	PortNormal     = 0xfffffffa
	PortFlood      = 0xfffffffb
	PortAll        = 0xfffffffc
	PortController = 0xfffffffd
	PortLocal      = 0xfffffffe
	PortAny        = 0xffffffff
)

// ofp_port_config
const (
	PortConfigDown       = 1 << 0
	PortConfigNoRecv     = 1 << 2
	PortConfigNoFwd      = 1 << 5
	PortConfigNoPacketIn = 1 << 6
)

// ofp_port_state
const (
	PortStateLinkDown = 1 << 0
	PortStateBlocked  = 1 << 1
	PortStateLive     = 1 << 2
)

// PhyPort is the ofp_port structure describing a switch port.
type PhyPort struct {
	PortNo     uint32
	pad        [4]uint8
	HWAddr     [6]uint8
	pad2       [2]uint8
	Name       [16]byte
	Config     uint32
	State      uint32
	Curr       uint32
	Advertised uint32
	Supported  uint32
	Peer       uint32
	CurrSpeed  uint32
	MaxSpeed   uint32
}

func (p *PhyPort) Len() uint16 { return 64 }

func (p *PhyPort) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 64)
	binary.BigEndian.PutUint32(data[0:4], p.PortNo)
	copy(data[8:14], p.HWAddr[:])
	copy(data[16:32], p.Name[:])
	binary.BigEndian.PutUint32(data[32:36], p.Config)
	binary.BigEndian.PutUint32(data[36:40], p.State)
	binary.BigEndian.PutUint32(data[40:44], p.Curr)
	binary.BigEndian.PutUint32(data[44:48], p.Advertised)
	binary.BigEndian.PutUint32(data[48:52], p.Supported)
	binary.BigEndian.PutUint32(data[52:56], p.Peer)
	binary.BigEndian.PutUint32(data[56:60], p.CurrSpeed)
	binary.BigEndian.PutUint32(data[60:64], p.MaxSpeed)
	return
}

func (p *PhyPort) UnmarshalBinary(data []byte) error {
	if len(data) < 64 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PhyPort")
	}
	p.PortNo = binary.BigEndian.Uint32(data[0:4])
	copy(p.HWAddr[:], data[8:14])
	copy(p.Name[:], data[16:32])
	p.Config = binary.BigEndian.Uint32(data[32:36])
	p.State = binary.BigEndian.Uint32(data[36:40])
	p.Curr = binary.BigEndian.Uint32(data[40:44])
	p.Advertised = binary.BigEndian.Uint32(data[44:48])
	p.Supported = binary.BigEndian.Uint32(data[48:52])
	p.Peer = binary.BigEndian.Uint32(data[52:56])
	p.CurrSpeed = binary.BigEndian.Uint32(data[56:60])
	p.MaxSpeed = binary.BigEndian.Uint32(data[60:64])
	return nil
}

// ofp_port_reason
const (
	PR_ADD    = 0
	PR_DELETE = 1
	PR_MODIFY = 2
)

// PortStatus is sent by the switch whenever a port's configuration or
// state changes.
type PortStatus struct {
	common.Header
	Reason uint8
	pad    [7]uint8
	Desc   PhyPort
}

func (p *PortStatus) Len() uint16 { return p.Header.Len() + 8 + p.Desc.Len() }

func (p *PortStatus) MarshalBinary() (data []byte, err error) {
	p.Header.Length = p.Len()
	hdrBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, p.Len())
	copy(data, hdrBytes)
	n := int(p.Header.Len())
	data[n] = p.Reason
	n += 8
	descBytes, err := p.Desc.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[n:], descBytes)
	return
}

func (p *PortStatus) UnmarshalBinary(data []byte) error {
	if err := p.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(p.Header.Len())
	if len(data) < n+8+64 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PortStatus")
	}
	p.Reason = data[n]
	n += 8
	return p.Desc.UnmarshalBinary(data[n:])
}

// PortMod requests a port configuration change.
type PortMod struct {
	common.Header
	PortNo    uint32
	pad       [4]uint8
	HWAddr    [6]uint8
	pad2      [2]uint8
	Config    uint32
	Mask      uint32
	Advertise uint32
	pad3      [4]uint8
}

func NewPortMod(portNo uint32) *PortMod {
	p := new(PortMod)
	p.Header = NewOfp13Header()
	p.Header.Type = Type_PortMod
	p.PortNo = portNo
	return p
}

func (p *PortMod) Len() uint16 { return p.Header.Len() + 32 }

func (p *PortMod) MarshalBinary() (data []byte, err error) {
	p.Header.Length = p.Len()
	hdrBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	data = make([]byte, p.Len())
	copy(data, hdrBytes)
	n := int(p.Header.Len())
	binary.BigEndian.PutUint32(data[n:n+4], p.PortNo)
	copy(data[n+8:n+14], p.HWAddr[:])
	binary.BigEndian.PutUint32(data[n+16:n+20], p.Config)
	binary.BigEndian.PutUint32(data[n+20:n+24], p.Mask)
	binary.BigEndian.PutUint32(data[n+24:n+28], p.Advertise)
	return
}

func (p *PortMod) UnmarshalBinary(data []byte) error {
	if err := p.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(p.Header.Len())
	if len(data) < n+32 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PortMod")
	}
	p.PortNo = binary.BigEndian.Uint32(data[n : n+4])
	copy(p.HWAddr[:], data[n+8:n+14])
	p.Config = binary.BigEndian.Uint32(data[n+16 : n+20])
	p.Mask = binary.BigEndian.Uint32(data[n+20 : n+24])
	p.Advertise = binary.BigEndian.Uint32(data[n+24 : n+28])
	return nil
}
