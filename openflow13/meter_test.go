package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ofcodec/libopenflow13/util"
)

func TestMeterModRoundTripWithBands(t *testing.T) {
	m := NewMeterMod()
	m.Command = OFPMC_ADD
	m.Flags = OFPMF13_KBPS | OFPMF13_STATS
	m.MeterId = 1

	drop := &MeterBandDrop{MeterBandHeader: MeterBandHeader{Type: OFPMBT13_DROP, Length: METER_BAND_LEN, Rate: 1000}}
	dscp := &MeterBandDSCP{MeterBandHeader: MeterBandHeader{Type: OFPMBT13_DSCP_REMARK, Length: METER_BAND_LEN, Rate: 2000}, PrecLevel: 1}
	m.AddMeterBand(drop)
	m.AddMeterBand(dscp)

	data, err := m.MarshalBinary()
	require.Nil(t, err)

	var dm MeterMod
	require.Nil(t, dm.UnmarshalBinary(data))
	assert.Equal(t, m.MeterId, dm.MeterId)
	assert.Equal(t, m.Flags, dm.Flags)
	require.Len(t, dm.MeterBands, 2)

	bd, ok := dm.MeterBands[0].(*MeterBandDrop)
	require.True(t, ok)
	assert.Equal(t, uint32(1000), bd.Rate)

	bdscp, ok := dm.MeterBands[1].(*MeterBandDSCP)
	require.True(t, ok)
	assert.Equal(t, uint8(1), bdscp.PrecLevel)
}

func TestMeterModDeleteOmitsBands(t *testing.T) {
	m := NewMeterMod()
	m.Command = OFPMC_DELETE
	m.MeterId = OFPM13_ALL
	m.AddMeterBand(&MeterBandDrop{MeterBandHeader: MeterBandHeader{Type: OFPMBT13_DROP, Length: METER_BAND_LEN, Rate: 1}})

	data, err := m.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, int(m.Header.Len())+8, len(data))
}

func TestMeterBandUnknownTypeRejected(t *testing.T) {
	data := []byte{0x7F, 0xFE, 0x00, 0x10, 0, 0, 0, 0, 0, 0, 0, 0}
	_, err := DecodeMeterBand(data)
	require.NotNil(t, err)
	_, ok := err.(*UnknownMeterBand)
	assert.True(t, ok, "expected UnknownMeterBand, got %T", err)
}

func TestMeterConfigRoundTrip(t *testing.T) {
	c := &MeterConfig{
		Flags:   OFPMF13_PKTPS,
		MeterId: 42,
		Bands: []util.Message{
			&MeterBandDrop{MeterBandHeader: MeterBandHeader{Type: OFPMBT13_DROP, Length: METER_BAND_LEN, Rate: 5}},
		},
	}
	data, err := c.MarshalBinary()
	require.Nil(t, err)

	var dc MeterConfig
	require.Nil(t, dc.UnmarshalBinary(data))
	assert.Equal(t, c.MeterId, dc.MeterId)
	assert.Equal(t, c.Flags, dc.Flags)
	require.Len(t, dc.Bands, 1)
}

// Guards against the fixed-header offset bug: DurationNsec and the
// counters after the 12-byte meter_id/length/pad prefix must survive
// a round trip undisturbed.
func TestMeterStatsRoundTripOffsets(t *testing.T) {
	s := &MeterStats{
		MeterId:       7,
		FlowCount:     3,
		PacketInCount: 100,
		ByteInCount:   20000,
		DurationSec:   30,
		DurationNsec:  123456,
		BandStats: []MeterBandStats{
			{PacketBandCount: 10, ByteBandCount: 2000},
			{PacketBandCount: 20, ByteBandCount: 4000},
		},
	}
	data, err := s.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 40+32, len(data))

	var ds MeterStats
	require.Nil(t, ds.UnmarshalBinary(data))
	assert.Equal(t, s.MeterId, ds.MeterId)
	assert.Equal(t, s.FlowCount, ds.FlowCount)
	assert.Equal(t, s.PacketInCount, ds.PacketInCount)
	assert.Equal(t, s.ByteInCount, ds.ByteInCount)
	assert.Equal(t, s.DurationSec, ds.DurationSec)
	assert.Equal(t, s.DurationNsec, ds.DurationNsec)
	require.Len(t, ds.BandStats, 2)
	assert.Equal(t, s.BandStats[0], ds.BandStats[0])
	assert.Equal(t, s.BandStats[1], ds.BandStats[1])
}

func TestMeterFeaturesRoundTrip(t *testing.T) {
	f := &MeterFeatures{
		MaxMeter:     0xFFFF,
		BandTypes:    OFPMBT13_DROP | OFPMBT13_DSCP_REMARK,
		Capabilities: OFPMF13_KBPS | OFPMF13_BURST,
		MaxBands:     16,
		MaxColor:     8,
	}
	data, err := f.MarshalBinary()
	require.Nil(t, err)

	var df MeterFeatures
	require.Nil(t, df.UnmarshalBinary(data))
	assert.Equal(t, *f, df)
}
