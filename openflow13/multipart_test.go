package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescStatsRoundTrip(t *testing.T) {
	s := NewDescStats()
	copy(s.MfrDesc, "Acme Corp")
	copy(s.SWDesc, "1.0")
	data, err := s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, int(s.Len()), len(data))

	ds := NewDescStats()
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, s.MfrDesc, ds.MfrDesc)
	assert.Equal(t, s.SWDesc, ds.SWDesc)
}

func TestFlowStatsRoundTripWithMatchAndInstructions(t *testing.T) {
	s := NewFlowStats()
	s.TableId = 0
	s.Priority = 10
	s.PacketCount = 50
	s.ByteCount = 4000
	field, err := NewMatchField("OXM_OF_ETH_TYPE", false)
	require.Nil(t, err)
	v := Uint16Message(0x0800)
	field.Value = &v
	s.Match.AddField(*field)
	instr := NewInstrGotoTable(1)
	s.Instructions = append(s.Instructions, instr)

	data, err := s.MarshalBinary()
	require.Nil(t, err)

	var ds FlowStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, s.PacketCount, ds.PacketCount)
	assert.Equal(t, s.ByteCount, ds.ByteCount)
	require.Len(t, ds.Match.Fields, 1)
	require.Len(t, ds.Instructions, 1)
	gt, ok := ds.Instructions[0].(*InstrGotoTable)
	require.True(t, ok)
	assert.Equal(t, uint8(1), gt.TableId)
}

func TestAggregateStatsRoundTrip(t *testing.T) {
	s := &AggregateStats{PacketCount: 10, ByteCount: 2000, FlowCount: 3}
	data, err := s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 24, len(data))

	var ds AggregateStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, *s, ds)
}

// TableStats in 1.3 is 24 bytes, unlike 1.0's longer shape.
func TestTableStatsRoundTripOF13Shape(t *testing.T) {
	s := &TableStats{TableId: 2, ActiveCount: 100, LookupCount: 50000, MatchedCount: 40000}
	data, err := s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 24, len(data))

	var ds TableStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, *s, ds)
}

func TestPortStatsRequestRoundTrip(t *testing.T) {
	r := NewPortStatsRequest()
	r.PortNo = 3
	data, err := r.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 8, len(data))

	var dr PortStatsRequest
	require.Nil(t, dr.UnmarshalBinary(data))
	assert.Equal(t, r.PortNo, dr.PortNo)
}

func TestPortStatsRoundTripOF13Shape(t *testing.T) {
	s := NewPortStats()
	s.PortNo = 1
	s.RxPackets = 100
	s.TxPackets = 200
	s.RxBytes = 1000
	s.TxBytes = 2000
	s.DurationSec = 10
	s.DurationNsec = 500
	data, err := s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 112, len(data))

	var ds PortStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, *s, ds)
}

func TestQueueStatsRoundTripNoPadding(t *testing.T) {
	r := NewQueueStatsRequest()
	r.PortNo = 1
	r.QueueId = 2
	data, err := r.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 8, len(data))

	s := &QueueStats{PortNo: 1, QueueId: 2, TxBytes: 100, TxPackets: 5, TxErrors: 0, DurationSec: 30, DurationNsec: 1000}
	data, err = s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 40, len(data))

	var ds QueueStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, *s, ds)
}

func TestGroupStatsRoundTrip(t *testing.T) {
	s := &GroupStats{GroupId: 1, RefCount: 2, PacketCount: 10, ByteCount: 2000, DurationSec: 5, DurationNsec: 250}
	s.BucketStats = append(s.BucketStats, BucketCounter{PacketCount: 3, ByteCount: 300})
	data, err := s.MarshalBinary()
	require.Nil(t, err)

	var ds GroupStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, s.GroupId, ds.GroupId)
	assert.Equal(t, s.RefCount, ds.RefCount)
	require.Len(t, ds.BucketStats, 1)
	assert.Equal(t, s.BucketStats[0], ds.BucketStats[0])
}

func TestGroupDescStatsRoundTripWithBuckets(t *testing.T) {
	s := &GroupDescStats{Type: GroupTypeAll, GroupId: 9}
	b := NewBucket()
	b.AddAction(NewActionOutput(1))
	s.Buckets = append(s.Buckets, *b)

	data, err := s.MarshalBinary()
	require.Nil(t, err)

	var ds GroupDescStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, s.Type, ds.Type)
	assert.Equal(t, s.GroupId, ds.GroupId)
	require.Len(t, ds.Buckets, 1)
}

func TestGroupFeaturesStatsRoundTrip(t *testing.T) {
	s := &GroupFeaturesStats{Types: 0xF, Capabilities: 0x1}
	s.MaxGroups = [4]uint32{1, 2, 3, 4}
	s.Actions = [4]uint32{5, 6, 7, 8}
	data, err := s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 40, len(data))

	var ds GroupFeaturesStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, *s, ds)
}

func TestMeterMultipartRequestRoundTrip(t *testing.T) {
	r := &MeterMultipartRequest{MeterId: OFPM13_ALL}
	data, err := r.MarshalBinary()
	require.Nil(t, err)

	var dr MeterMultipartRequest
	require.Nil(t, dr.UnmarshalBinary(data))
	assert.Equal(t, r.MeterId, dr.MeterId)
}

func TestTableFeaturePropertyUnknownTypeRejected(t *testing.T) {
	data := []byte{0x7F, 0xFE, 0x00, 0x08, 0, 0, 0, 0}
	_, err := decodeTableFeatureProp(data)
	require.NotNil(t, err)
	_, ok := err.(*UnknownTableFeatureProp)
	assert.True(t, ok, "expected UnknownTableFeatureProp, got %T", err)
}

func TestOFPTableFeaturesRoundTripWithProperties(t *testing.T) {
	f := &OFPTableFeatures{TableID: 0, Command: 0, Capabilities: 1, MaxEntries: 1024}
	copy(f.Name[:], "table0")
	f.Properties = append(f.Properties, &NextTableProperty{
		OFTablePropertyHeader: OFTablePropertyHeader{Type: OFPTFPT13_NEXT_TABLES},
		TableIDs:              []uint8{1, 2, 3},
	})
	f.Properties = append(f.Properties, &InstructionProperty{
		OFTablePropertyHeader: OFTablePropertyHeader{Type: OFPTFPT13_INSTRUCTIONS},
		Instructions:          []InstrHeader{{Type: InstrType_GotoTable, Length: 4}},
	})

	data, err := f.MarshalBinary()
	require.Nil(t, err)

	var df OFPTableFeatures
	require.Nil(t, df.UnmarshalBinary(data))
	assert.Equal(t, f.TableID, df.TableID)
	assert.Equal(t, f.Name, df.Name)
	assert.Equal(t, f.Capabilities, df.Capabilities)
	assert.Equal(t, f.MaxEntries, df.MaxEntries)
	require.Len(t, df.Properties, 2)

	ntp, ok := df.Properties[0].(*NextTableProperty)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, ntp.TableIDs)

	ip, ok := df.Properties[1].(*InstructionProperty)
	require.True(t, ok)
	require.Len(t, ip.Instructions, 1)
	assert.Equal(t, uint16(InstrType_GotoTable), ip.Instructions[0].Type)
}

func TestOFPTableFeaturesWalkSafetyTruncated(t *testing.T) {
	f := new(OFPTableFeatures)
	data := make([]byte, 64+4)
	f.Length = uint16(len(data))
	binaryPutLen(data, f.Length)
	// property header at offset 64 claims length far beyond remaining
	data[64] = 0x00
	data[65] = 0x00
	data[66] = 0x7F
	data[67] = 0xFF

	err := f.UnmarshalBinary(data)
	require.Nil(t, err)
	assert.Len(t, f.Properties, 0)
}

func binaryPutLen(data []byte, length uint16) {
	data[0] = byte(length >> 8)
	data[1] = byte(length)
}
