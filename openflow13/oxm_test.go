package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: OXM IN_PORT unmasked.
func TestMatchFieldInPortUnmasked(t *testing.T) {
	f, err := NewMatchField("OXM_OF_IN_PORT", false)
	require.Nil(t, err)
	val := Uint32Message(0x01020304)
	f.Value = &val

	data, err := f.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, []byte{0x80, 0x00, 0x00, 0x04, 0x01, 0x02, 0x03, 0x04}, data)

	var df MatchField
	err = df.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.Equal(t, f.Class, df.Class)
	assert.Equal(t, f.Field, df.Field)
	assert.Equal(t, f.HasMask, df.HasMask)
	assert.Equal(t, *f.Value.(*Uint32Message), *df.Value.(*Uint32Message))
}

func TestMatchFieldEthDstMasked(t *testing.T) {
	f, err := NewMatchField("OXM_OF_ETH_DST", true)
	require.Nil(t, err)
	f.Value = &ByteArrayField{Bytes: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x07}}
	f.Mask = &ByteArrayField{Bytes: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}}

	data, err := f.MarshalBinary()
	require.Nil(t, err)
	// class 0x8000, field 3 (ETH_DST), has-mask set, length 12: 0x8000070C.
	expected := []byte{0x80, 0x00, 0x07, 0x0C, 0x01, 0x02, 0x03, 0x04, 0x05, 0x07, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	assert.Equal(t, expected, data)

	var df MatchField
	err = df.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.True(t, df.HasMask)
	assert.Equal(t, f.Len(), df.Len())
}

// S4: single-TLV match block.
func TestMatchSingleTLV(t *testing.T) {
	f, err := NewMatchField("OXM_OF_IN_PORT", false)
	require.Nil(t, err)
	val := Uint32Message(0x01020304)
	f.Value = &val

	m := NewMatch()
	m.AddField(*f)
	data, err := m.MarshalBinary()
	require.Nil(t, err)

	expected := []byte{0x00, 0x01, 0x00, 0x0C, 0x80, 0x00, 0x00, 0x04, 0x01, 0x02, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00}
	assert.Equal(t, expected, data)
	assert.Equal(t, 16, len(data))

	var dm Match
	err = dm.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.Equal(t, uint16(12), dm.Length)
	require.Len(t, dm.Fields, 1)
	assert.Equal(t, uint8(OXM_FIELD_IN_PORT), dm.Fields[0].Field)
}

func TestMatchPaddingIsZeroed(t *testing.T) {
	f, err := NewMatchField("OXM_OF_IN_PORT", false)
	require.Nil(t, err)
	val := Uint32Message(1)
	f.Value = &val

	m := NewMatch()
	m.AddField(*f)
	data, err := m.MarshalBinary()
	require.Nil(t, err)
	for i := 12; i < len(data); i++ {
		assert.Equal(t, byte(0), data[i], "pad byte %d must be zero", i)
	}
}

func TestMatchUnknownOxmField(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0x00, 0x04, 0x01, 0x02, 0x03, 0x04}
	var f MatchField
	err := f.UnmarshalBinary(data)
	require.NotNil(t, err)
	_, ok := err.(*UnknownOxm)
	assert.True(t, ok, "expected UnknownOxm, got %T", err)
}

// Walk safety: a TLV claiming a length longer than what remains must not
// be converted, and the walk must stop cleanly instead of panicking.
func TestMatchWalkSafetyTruncated(t *testing.T) {
	data := []byte{
		0x00, 0x01, 0x00, 0x10, // type=OXM, length=16 (claims one IN_PORT TLV + more)
		0x80, 0x00, 0x00, 0x7F, // header claims length 0x7F, far beyond remaining
	}
	var m Match
	err := m.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.Len(t, m.Fields, 0)
}

func TestMatchRoundTripMultipleFields(t *testing.T) {
	m := NewMatch()

	inPort, _ := NewMatchField("OXM_OF_IN_PORT", false)
	v1 := Uint32Message(3)
	inPort.Value = &v1
	m.AddField(*inPort)

	ethType, _ := NewMatchField("OXM_OF_ETH_TYPE", false)
	v2 := Uint16Message(0x0800)
	ethType.Value = &v2
	m.AddField(*ethType)

	data, err := m.MarshalBinary()
	require.Nil(t, err)

	var dm Match
	err = dm.UnmarshalBinary(data)
	require.Nil(t, err)
	require.Len(t, dm.Fields, 2)
	assert.Equal(t, uint8(OXM_FIELD_IN_PORT), dm.Fields[0].Field)
	assert.Equal(t, uint8(OXM_FIELD_ETH_TYPE), dm.Fields[1].Field)

	data2, err := dm.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, data2)
}
