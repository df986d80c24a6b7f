package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoRoundTrip(t *testing.T) {
	req := NewEchoRequest()
	req.Data = []byte{1, 2, 3, 4}
	data, err := req.MarshalBinary()
	require.Nil(t, err)

	var dreq EchoRequest
	require.Nil(t, dreq.UnmarshalBinary(data))
	assert.Equal(t, req.Data, dreq.Data)

	rep := NewEchoReply()
	rep.Data = []byte{5, 6}
	data, err = rep.MarshalBinary()
	require.Nil(t, err)
	var drep EchoReply
	require.Nil(t, drep.UnmarshalBinary(data))
	assert.Equal(t, rep.Data, drep.Data)
}

func TestErrorMsgRoundTrip(t *testing.T) {
	e := &ErrorMsg{Type: ErrorTypeFlowModFailed, Code: 3, Data: []byte{0xDE, 0xAD}}
	e.Header = NewOfp13Header()
	data, err := e.MarshalBinary()
	require.Nil(t, err)

	var de ErrorMsg
	require.Nil(t, de.UnmarshalBinary(data))
	assert.Equal(t, e.Type, de.Type)
	assert.Equal(t, e.Code, de.Code)
	assert.Equal(t, e.Data, de.Data)
}

func TestFeaturesRoundTrip(t *testing.T) {
	req := NewFeaturesRequest()
	data, err := req.MarshalBinary()
	require.Nil(t, err)
	var dreq FeaturesRequest
	require.Nil(t, dreq.UnmarshalBinary(data))

	rep := NewFeaturesReply()
	rep.DatapathId = 0x1122334455667788
	rep.NBuffers = 256
	rep.NTables = 4
	rep.Capabilities = CapabilityFlowStats | CapabilityGroupStats
	data, err = rep.MarshalBinary()
	require.Nil(t, err)

	var drep FeaturesReply
	require.Nil(t, drep.UnmarshalBinary(data))
	assert.Equal(t, rep.DatapathId, drep.DatapathId)
	assert.Equal(t, rep.NBuffers, drep.NBuffers)
	assert.Equal(t, rep.NTables, drep.NTables)
	assert.Equal(t, rep.Capabilities, drep.Capabilities)
}

func TestTableModRoundTrip(t *testing.T) {
	tm := &TableMod{TableId: 2, Config: 3}
	tm.Header = NewOfp13Header()
	data, err := tm.MarshalBinary()
	require.Nil(t, err)

	var dtm TableMod
	require.Nil(t, dtm.UnmarshalBinary(data))
	assert.Equal(t, tm.TableId, dtm.TableId)
	assert.Equal(t, tm.Config, dtm.Config)
}

func TestPacketInRoundTripWithMatch(t *testing.T) {
	p := &PacketIn{BufferId: 10, TotalLen: 64, Reason: PacketInReasonAction, TableId: 0, Cookie: 0xABCD}
	p.Header = NewOfp13Header()
	p.Match = *NewMatch()
	field, err := NewMatchField("OXM_OF_IN_PORT", false)
	require.Nil(t, err)
	v := Uint32Message(3)
	field.Value = &v
	p.Match.AddField(*field)
	p.Data = []byte{0xAA, 0xBB, 0xCC}

	data, err := p.MarshalBinary()
	require.Nil(t, err)

	var dp PacketIn
	require.Nil(t, dp.UnmarshalBinary(data))
	assert.Equal(t, p.BufferId, dp.BufferId)
	assert.Equal(t, p.Reason, dp.Reason)
	assert.Equal(t, p.Cookie, dp.Cookie)
	require.Len(t, dp.Match.Fields, 1)
	assert.Equal(t, p.Data, dp.Data)
}

func TestPacketOutRoundTripWithActions(t *testing.T) {
	p := NewPacketOut()
	p.BufferId = 0xFFFFFFFF
	p.InPort = PortController
	p.Actions = append(p.Actions, NewActionOutput(1))
	p.Data = []byte{1, 2, 3, 4}

	data, err := p.MarshalBinary()
	require.Nil(t, err)

	var dp PacketOut
	require.Nil(t, dp.UnmarshalBinary(data))
	assert.Equal(t, p.BufferId, dp.BufferId)
	assert.Equal(t, p.InPort, dp.InPort)
	require.Len(t, dp.Actions, 1)
	out := dp.Actions[0].(*ActionOutput)
	assert.Equal(t, uint32(1), out.Port)
	assert.Equal(t, p.Data, dp.Data)
}

func TestBarrierRoundTrip(t *testing.T) {
	req := &BarrierRequest{}
	req.Header = NewOfp13Header()
	data, err := req.MarshalBinary()
	require.Nil(t, err)
	var dreq BarrierRequest
	require.Nil(t, dreq.UnmarshalBinary(data))
	assert.Equal(t, req.Header.Xid, dreq.Header.Xid)

	rep := &BarrierReply{}
	rep.Header = NewOfp13Header()
	data, err = rep.MarshalBinary()
	require.Nil(t, err)
	var drep BarrierReply
	require.Nil(t, drep.UnmarshalBinary(data))
	assert.Equal(t, rep.Header.Xid, drep.Header.Xid)
}
