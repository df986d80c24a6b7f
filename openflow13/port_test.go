package openflow13

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhyPortRoundTrip(t *testing.T) {
	p := &PhyPort{
		PortNo:     3,
		HWAddr:     [6]uint8{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		Config:     PortConfigDown,
		State:      PortStateLive,
		Curr:       1,
		Advertised: 2,
		Supported:  3,
		Peer:       4,
		CurrSpeed:  1000,
		MaxSpeed:   10000,
	}
	copy(p.Name[:], "eth0")

	data, err := p.MarshalBinary()
	require.Nil(t, err)
	assert.Equal(t, 64, len(data))

	var dp PhyPort
	require.Nil(t, dp.UnmarshalBinary(data))
	assert.Equal(t, p.PortNo, dp.PortNo)
	assert.Equal(t, p.HWAddr, dp.HWAddr)
	assert.Equal(t, p.Name, dp.Name)
	assert.Equal(t, p.Config, dp.Config)
	assert.Equal(t, p.State, dp.State)
	assert.Equal(t, p.CurrSpeed, dp.CurrSpeed)
	assert.Equal(t, p.MaxSpeed, dp.MaxSpeed)
}

func TestPortStatusRoundTrip(t *testing.T) {
	ps := new(PortStatus)
	ps.Header = NewOfp13Header()
	ps.Reason = PR_MODIFY
	ps.Desc.PortNo = 5
	ps.Desc.HWAddr = [6]uint8{1, 2, 3, 4, 5, 6}

	data, err := ps.MarshalBinary()
	require.Nil(t, err)

	var dps PortStatus
	require.Nil(t, dps.UnmarshalBinary(data))
	assert.Equal(t, uint8(PR_MODIFY), dps.Reason)
	assert.Equal(t, uint32(5), dps.Desc.PortNo)
	assert.Equal(t, ps.Desc.HWAddr, dps.Desc.HWAddr)
}

func TestPortModRoundTrip(t *testing.T) {
	pm := NewPortMod(2)
	pm.HWAddr = [6]uint8{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	pm.Config = PortConfigNoFwd
	pm.Mask = 0xFFFFFFFF
	pm.Advertise = 0x80

	data, err := pm.MarshalBinary()
	require.Nil(t, err)

	var dpm PortMod
	require.Nil(t, dpm.UnmarshalBinary(data))
	assert.Equal(t, pm.PortNo, dpm.PortNo)
	assert.Equal(t, pm.HWAddr, dpm.HWAddr)
	assert.Equal(t, pm.Config, dpm.Config)
	assert.Equal(t, pm.Mask, dpm.Mask)
	assert.Equal(t, pm.Advertise, dpm.Advertise)
}
