package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowModRoundTripWithMatchAndInstructions(t *testing.T) {
	f := NewFlowMod()
	f.Command = FlowModCommandAdd
	f.Priority = 100
	f.TableId = 0
	f.Flags = FlowModFlagSendFlowRem

	field, err := NewMatchField("OXM_OF_IN_PORT", false)
	require.Nil(t, err)
	v := Uint32Message(1)
	field.Value = &v
	f.Match.AddField(*field)

	instr := NewInstrActions(InstrType_ApplyActions)
	instr.AddAction(NewActionOutput(2))
	f.AddInstruction(instr)

	data, err := f.MarshalBinary()
	require.Nil(t, err)

	var df FlowMod
	require.Nil(t, df.UnmarshalBinary(data))
	assert.Equal(t, f.Cookie, df.Cookie)
	assert.Equal(t, f.Priority, df.Priority)
	assert.Equal(t, f.Flags, df.Flags)
	require.Len(t, df.Match.Fields, 1)
	assert.Equal(t, uint8(OXM_FIELD_IN_PORT), df.Match.Fields[0].Field)
	require.Len(t, df.Instructions, 1)
	ia, ok := df.Instructions[0].(*InstrActions)
	require.True(t, ok)
	require.Len(t, ia.Actions, 1)
	out := ia.Actions[0].(*ActionOutput)
	assert.Equal(t, uint32(2), out.Port)

	redata, err := df.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, redata)
}

func TestFlowRemovedRoundTrip(t *testing.T) {
	f := new(FlowRemoved)
	f.Header = NewOfp13Header()
	f.Cookie = 0xDEADBEEF
	f.Priority = 5
	f.Reason = FlowRemovedReasonIdleTimeout
	f.TableId = 1
	f.DurationSec = 30
	f.DurationNsec = 500
	f.IdleTimeout = 10
	f.HardTimeout = 20
	f.PacketCount = 1000
	f.ByteCount = 90000
	f.Match = *NewMatch()

	data, err := f.MarshalBinary()
	require.Nil(t, err)

	var df FlowRemoved
	require.Nil(t, df.UnmarshalBinary(data))
	assert.Equal(t, f.Cookie, df.Cookie)
	assert.Equal(t, f.Priority, df.Priority)
	assert.Equal(t, f.Reason, df.Reason)
	assert.Equal(t, f.DurationSec, df.DurationSec)
	assert.Equal(t, f.DurationNsec, df.DurationNsec)
	assert.Equal(t, f.PacketCount, df.PacketCount)
	assert.Equal(t, f.ByteCount, df.ByteCount)
}
