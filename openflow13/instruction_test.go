package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S6: Instruction WRITE_ACTIONS containing two OUTPUT actions.
func TestInstrActionsWriteActionsTwoOutputs(t *testing.T) {
	i := NewInstrActions(InstrType_WriteActions)
	a1 := NewActionOutput(0x01020304)
	a1.MaxLen = 0x0506
	a2 := NewActionOutput(0x0708090A)
	a2.MaxLen = 0x0B0C
	i.AddAction(a1)
	i.AddAction(a2)

	data, err := i.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, uint16(InstrType_WriteActions), i.Type)
	assert.Equal(t, uint16(40), i.Length)
	assert.Equal(t, 40, len(data))

	expected := []byte{
		0x00, 0x03, 0x00, 0x28, 0x00, 0x00, 0x00, 0x00, // header + 4 pad
		0x00, 0x00, 0x00, 0x10, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x10, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, expected, data)

	decoded, err := DecodeInstr(data)
	require.Nil(t, err)
	ia, ok := decoded.(*InstrActions)
	require.True(t, ok)
	require.Len(t, ia.Actions, 2)
	out1 := ia.Actions[0].(*ActionOutput)
	assert.Equal(t, uint32(0x01020304), out1.Port)
	assert.Equal(t, uint16(0x0506), out1.MaxLen)
}

func TestDecodeInstrShortHeaderOnly(t *testing.T) {
	data := []byte{0x00, 0x05, 0x00, 0x04}
	decoded, err := DecodeInstr(data)
	require.Nil(t, err)
	assert.Equal(t, uint16(InstrType_ClearActions), decoded.Header().Type)
	assert.Equal(t, uint16(4), decoded.Len())
}

func TestDecodeInstrUnknownTypeRejected(t *testing.T) {
	data := []byte{0x7F, 0xFE, 0x00, 0x08, 0, 0, 0, 0}
	_, err := DecodeInstr(data)
	require.NotNil(t, err)
	_, ok := err.(*UnknownInstruction)
	assert.True(t, ok, "expected UnknownInstruction, got %T", err)
}

func TestInstrExperimenterRoundTrip(t *testing.T) {
	i := &InstrExperimenter{InstrHeader: InstrHeader{Type: InstrType_Experimenter}, Experimenter: 0xCAFEBABE, Data: []byte{1, 2, 3}}
	data, err := i.MarshalBinary()
	require.Nil(t, err)

	decoded, err := DecodeInstr(data)
	require.Nil(t, err)
	exp, ok := decoded.(*InstrExperimenter)
	require.True(t, ok)
	assert.Equal(t, uint32(0xCAFEBABE), exp.Experimenter)
	// Length is padded to 16, so decoded Data keeps the 5 tail pad bytes.
	assert.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0}, exp.Data)
}

func TestInstrWriteMetadataRoundTrip(t *testing.T) {
	i := NewInstrWriteMetadata(0x1111111111111111, 0xFFFFFFFF00000000)
	data, err := i.MarshalBinary()
	require.Nil(t, err)
	var di InstrWriteMetadata
	require.Nil(t, di.UnmarshalBinary(data))
	assert.Equal(t, i.Metadata, di.Metadata)
	assert.Equal(t, i.Mask, di.Mask)
}
