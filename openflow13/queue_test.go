package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketQueueRoundTrip(t *testing.T) {
	q := &PacketQueue{QueueId: 1, Port: 2}
	q.Properties = append(q.Properties, NewQueuePropMinRate(500))
	q.Properties = append(q.Properties, NewQueuePropMaxRate(1000))
	q.Properties = append(q.Properties, &QueuePropExperimenter{
		QueuePropHeader: QueuePropHeader{Property: QueuePropertyExperimenter},
		Experimenter:    0xC0FFEE,
		Data:            []byte{1, 2, 3, 4, 5, 6},
	})

	data, err := q.MarshalBinary()
	require.Nil(t, err)

	var dq PacketQueue
	require.Nil(t, dq.UnmarshalBinary(data))
	assert.Equal(t, q.QueueId, dq.QueueId)
	assert.Equal(t, q.Port, dq.Port)
	require.Len(t, dq.Properties, 3)

	min, ok := dq.Properties[0].(*QueuePropRate)
	require.True(t, ok)
	assert.Equal(t, uint16(500), min.Rate)

	max, ok := dq.Properties[1].(*QueuePropRate)
	require.True(t, ok)
	assert.Equal(t, uint16(1000), max.Rate)

	exp, ok := dq.Properties[2].(*QueuePropExperimenter)
	require.True(t, ok)
	assert.Equal(t, uint32(0xC0FFEE), exp.Experimenter)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, exp.Data)
}

func TestQueuePropertyUnknownTypeRejected(t *testing.T) {
	data := []byte{0x7F, 0xFE, 0x00, 0x10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	_, err := decodeQueueProperty(data)
	require.NotNil(t, err)
	_, ok := err.(*UnknownQueueProperty)
	assert.True(t, ok, "expected UnknownQueueProperty, got %T", err)
}

func TestPacketQueueWalkSafetyTruncated(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x00, 0x01, // queue_id
		0x00, 0x00, 0x00, 0x02, // port
		0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // length=24, pad
		0x00, 0x01, 0x00, 0x7F, 0x00, 0x00, 0x00, 0x00, // property header claims length 0x7F
	}
	var q PacketQueue
	err := q.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.Len(t, q.Properties, 0)
}
