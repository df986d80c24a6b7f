package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupModRoundTripWithBuckets(t *testing.T) {
	g := NewGroupMod()
	g.Command = GroupCommandAdd
	g.Type = GroupTypeSelect
	g.GroupId = 1

	b1 := NewBucket()
	b1.Weight = 5
	b1.AddAction(NewActionOutput(1))
	b2 := NewBucket()
	b2.Weight = 10
	b2.AddAction(NewActionOutput(2))
	g.AddBucket(*b1)
	g.AddBucket(*b2)

	data, err := g.MarshalBinary()
	require.Nil(t, err)

	var dg GroupMod
	require.Nil(t, dg.UnmarshalBinary(data))
	assert.Equal(t, g.Command, dg.Command)
	assert.Equal(t, g.Type, dg.Type)
	assert.Equal(t, g.GroupId, dg.GroupId)
	require.Len(t, dg.Buckets, 2)
	assert.Equal(t, uint16(5), dg.Buckets[0].Weight)
	assert.Equal(t, uint16(10), dg.Buckets[1].Weight)

	redata, err := dg.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, data, redata)
}

func TestGroupModDeleteNoBuckets(t *testing.T) {
	g := NewGroupMod()
	g.Command = GroupCommandDelete
	g.GroupId = GroupAll

	data, err := g.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, int(g.Header.Len())+8, len(data))
}
