package openflow13

// Package openflow13 implements the OpenFlow 1.3 wire protocol: message
// headers, the OXM match codec, actions, instructions, and the
// compound structures (buckets, meter bands, queue properties,
// table-feature properties, stats records) that embed them.

import (
	"fmt"

	"github.com/go-ofcodec/libopenflow13/common"
)

const VERSION = 4

// ofp_type
const (
	Type_Hello        = 0
	Type_Error        = 1
	Type_EchoRequest  = 2
	Type_EchoReply    = 3
	Type_Experimenter = 4

	Type_FeaturesRequest = 5
	Type_FeaturesReply   = 6

	Type_GetConfigRequest = 7
	Type_GetConfigReply   = 8
	Type_SetConfig        = 9

	Type_PacketIn    = 10
	Type_FlowRemoved = 11
	Type_PortStatus  = 12

	Type_PacketOut = 13
	Type_FlowMod   = 14
	Type_GroupMod  = 15
	Type_PortMod   = 16
	Type_TableMod  = 17

	Type_MultiPartRequest = 18
	Type_MultiPartReply   = 19

	Type_BarrierRequest = 20
	Type_BarrierReply   = 21

	Type_QueueGetConfigRequest = 22
	Type_QueueGetConfigReply   = 23

	Type_RoleRequest = 24
	Type_RoleReply   = 25

	Type_GetAsyncRequest = 26
	Type_GetAsyncReply   = 27
	Type_SetAsync        = 28

	Type_MeterMod = 29
)

var headerGenerator = common.NewHeaderGenerator(VERSION)

// NewOfp13Header mints a fresh ofp_header stamped with the OpenFlow 1.3
// wire version and the next sequential Xid.
func NewOfp13Header() common.Header {
	return headerGenerator()
}

// Parse reads an ofp_header off the front of data and returns the
// fully-decoded message it introduces, or an error describing why the
// message could not be decoded or why its type is unrecognized.
func Parse(data []byte) (msg Message, err error) {
	hdr := new(common.Header)
	if err = hdr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	switch hdr.Type {
	case Type_Hello:
		msg = new(common.Hello)
	case Type_EchoRequest:
		msg = new(EchoRequest)
	case Type_EchoReply:
		msg = new(EchoReply)
	case Type_Error:
		msg = new(ErrorMsg)
	case Type_FeaturesRequest:
		msg = NewFeaturesRequest()
	case Type_FeaturesReply:
		msg = NewFeaturesReply()
	case Type_PacketIn:
		msg = new(PacketIn)
	case Type_PacketOut:
		msg = new(PacketOut)
	case Type_FlowMod:
		msg = new(FlowMod)
	case Type_FlowRemoved:
		msg = new(FlowRemoved)
	case Type_GroupMod:
		msg = new(GroupMod)
	case Type_PortMod:
		msg = new(PortMod)
	case Type_PortStatus:
		msg = new(PortStatus)
	case Type_TableMod:
		msg = new(TableMod)
	case Type_MultiPartRequest:
		msg = new(MultipartRequest)
	case Type_MultiPartReply:
		msg = new(MultipartReply)
	case Type_BarrierRequest:
		msg = new(BarrierRequest)
	case Type_BarrierReply:
		msg = new(BarrierReply)
	case Type_MeterMod:
		msg = new(MeterMod)
	default:
		return nil, fmt.Errorf("unrecognized ofp_header type: %d", hdr.Type)
	}
	if err = msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// Message is the decode-time alias of util.Message: every top-level
// OpenFlow message this package knows how to Parse implements it.
type Message interface {
	Len() uint16
	MarshalBinary() (data []byte, err error)
	UnmarshalBinary(data []byte) error
}
