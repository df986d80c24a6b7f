package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketRoundTripWithActions(t *testing.T) {
	b := NewBucket()
	b.Weight = 10
	b.AddAction(NewActionOutput(1))
	b.AddAction(NewActionOutput(2))

	data, err := b.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, uint16(len(data)), b.Length)

	var db Bucket
	require.Nil(t, db.UnmarshalBinary(data))
	assert.Equal(t, b.Weight, db.Weight)
	assert.Equal(t, b.WatchPort, db.WatchPort)
	assert.Equal(t, b.WatchGroup, db.WatchGroup)
	require.Len(t, db.Actions, 2)
	out1 := db.Actions[0].(*ActionOutput)
	assert.Equal(t, uint32(1), out1.Port)
	out2 := db.Actions[1].(*ActionOutput)
	assert.Equal(t, uint32(2), out2.Port)
}

func TestBucketWalkSafetyTruncated(t *testing.T) {
	data := []byte{
		0x00, 0x18, 0x00, 0x00, // length=24, weight
		0xFF, 0xFF, 0xFF, 0xFC, // watch_port = PortAll
		0xFF, 0xFF, 0xFF, 0xFF, // watch_group = GroupAny
		0x00, 0x00, 0x00, 0x00, // pad
		0x00, 0x00, 0x00, 0x7F, 0x00, 0x00, 0x00, 0x00, // action header claims length 0x7F
	}
	var b Bucket
	err := b.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.Len(t, b.Actions, 0)
}

func TestBucketCounterRoundTrip(t *testing.T) {
	c := &BucketCounter{PacketCount: 100, ByteCount: 5000}
	data, err := c.MarshalBinary()
	require.Nil(t, err)

	var dc BucketCounter
	require.Nil(t, dc.UnmarshalBinary(data))
	assert.Equal(t, *c, dc)
}
