package openflow13

// This file has all meter related defs: bands, MeterMod, and the
// meter-related multipart stats records (MeterStats, MeterConfig,
// MeterFeatures).

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/go-ofcodec/libopenflow13/common"
	"github.com/go-ofcodec/libopenflow13/util"
)

const (
	OFPMBT13_DROP         = 1      /* Drop packet. */
	OFPMBT13_DSCP_REMARK  = 2      /* Remark DSCP in the IP header. */
	OFPMBT13_EXPERIMENTER = 0xFFFF /* Experimenter meter band. */

	OFPMC_ADD    = 0 /* New meter. */
	OFPMC_MODIFY = 1 /* Modify specified meter. */
	OFPMC_DELETE = 2 /* Delete specified meter. */

	OFPMF13_KBPS  = 0b0001 /* Rate value in kb/s (kilo-bit per second). */
	OFPMF13_PKTPS = 0b0010 /* Rate value in packet/sec. */
	OFPMF13_BURST = 0b0100 /* Do burst size. */
	OFPMF13_STATS = 0b1000 /* Collect statistics. */

	/* Meter numbering. Flow meters can use any number up to OFPM_MAX. */
	OFPM13_MAX        = 0xffff0000 /* Last usable meter. */
	OFPM13_SLOWPATH   = 0xfffffffd /* Meter for slow datapath. */
	OFPM13_CONTROLLER = 0xfffffffe /* Meter for controller connection. */
	OFPM13_ALL        = 0xffffffff /* Represents all meters for stat requests commands. */

	METER_BAND_HEADER_LEN = 12
	METER_BAND_LEN        = 16
)

// UnknownMeterBand is returned when a meter band header carries a type
// other than OFPMBT13_DROP, OFPMBT13_DSCP_REMARK or OFPMBT13_EXPERIMENTER.
type UnknownMeterBand struct {
	Type uint16
}

func (e *UnknownMeterBand) Error() string {
	return fmt.Sprintf("unknown meter band type: %d", e.Type)
}

type MeterBandHeader struct {
	Type      uint16 /* One of OFPMBT13_*. */
	Length    uint16 /* Length in bytes of this band. */
	Rate      uint32 /* Rate for this band. */
	BurstSize uint32 /* Size of bursts. */
}

func NewMeterBandHeader() *MeterBandHeader {
	return &MeterBandHeader{
		Length: METER_BAND_LEN,
	}
}

func (m *MeterBandHeader) Len() (n uint16) {
	return METER_BAND_HEADER_LEN
}

func (m *MeterBandHeader) MarshalBinary() (data []byte, err error) {
	data = make([]byte, m.Len())
	n := 0
	binary.BigEndian.PutUint16(data[n:], m.Type)
	n += 2
	binary.BigEndian.PutUint16(data[n:], m.Length)
	n += 2
	binary.BigEndian.PutUint32(data[n:], m.Rate)
	n += 4
	binary.BigEndian.PutUint32(data[n:], m.BurstSize)

	return
}

func (m *MeterBandHeader) UnmarshalBinary(data []byte) error {
	if len(data) < int(m.Len()) {
		return fmt.Errorf("the []byte is too short to unmarshal a full MeterBandHeader")
	}
	n := 0
	m.Type = binary.BigEndian.Uint16(data[n:])
	n += 2
	m.Length = binary.BigEndian.Uint16(data[n:])
	n += 2
	m.Rate = binary.BigEndian.Uint32(data[n:])
	n += 4
	m.BurstSize = binary.BigEndian.Uint32(data[n:])

	return nil
}

type MeterBandDrop struct {
	MeterBandHeader /* Type: OFPMBT13_DROP. */
	pad             [4]uint8
}

func (m *MeterBandDrop) Len() (n uint16) {
	return METER_BAND_LEN
}

func (m *MeterBandDrop) MarshalBinary() (data []byte, err error) {
	data = make([]byte, m.Len())
	mbHdrBytes, err := m.MeterBandHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, mbHdrBytes)
	return
}

func (m *MeterBandDrop) UnmarshalBinary(data []byte) error {
	return m.MeterBandHeader.UnmarshalBinary(data)
}

type MeterBandDSCP struct {
	MeterBandHeader       /* Type: OFPMBT13_DSCP_REMARK. */
	PrecLevel       uint8 /* Number of drop precedence level to add. */
	pad             [3]uint8
}

func (m *MeterBandDSCP) Len() (n uint16) {
	return METER_BAND_LEN
}

func (m *MeterBandDSCP) MarshalBinary() (data []byte, err error) {
	data = make([]byte, m.Len())
	n := 0
	mbHdrBytes, err := m.MeterBandHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, mbHdrBytes)
	n += METER_BAND_HEADER_LEN
	data[n] = m.PrecLevel
	return
}

func (m *MeterBandDSCP) UnmarshalBinary(data []byte) error {
	if err := m.MeterBandHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	m.PrecLevel = data[METER_BAND_HEADER_LEN]
	return nil
}

type MeterBandExperimenter struct {
	MeterBandHeader        /* Type: OFPMBT13_EXPERIMENTER. */
	Experimenter    uint32 /* Experimenter ID which takes the same form as in struct ofp_experimenter_header. */
}

func (m *MeterBandExperimenter) Len() (n uint16) {
	return METER_BAND_LEN
}

func (m *MeterBandExperimenter) MarshalBinary() (data []byte, err error) {
	data = make([]byte, m.Len())
	n := 0
	mbHdrBytes, err := m.MeterBandHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, mbHdrBytes)
	n += METER_BAND_HEADER_LEN
	binary.BigEndian.PutUint32(data[n:], m.Experimenter)
	return
}

func (m *MeterBandExperimenter) UnmarshalBinary(data []byte) error {
	if err := m.MeterBandHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	m.Experimenter = binary.BigEndian.Uint32(data[METER_BAND_HEADER_LEN:])
	return nil
}

// DecodeMeterBand peeks at a MeterBandHeader and returns the concrete
// band type it introduces, or UnknownMeterBand if the type is not
// recognized.
func DecodeMeterBand(data []byte) (util.Message, error) {
	mbh := new(MeterBandHeader)
	if err := mbh.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	var band util.Message
	switch mbh.Type {
	case OFPMBT13_DROP:
		b := new(MeterBandDrop)
		b.MeterBandHeader = *mbh
		band = b
	case OFPMBT13_DSCP_REMARK:
		b := new(MeterBandDSCP)
		b.MeterBandHeader = *mbh
		band = b
	case OFPMBT13_EXPERIMENTER:
		b := new(MeterBandExperimenter)
		b.MeterBandHeader = *mbh
		band = b
	default:
		return nil, &UnknownMeterBand{Type: mbh.Type}
	}
	if err := band.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return band, nil
}

// MeterMod message
type MeterMod struct {
	common.Header
	Command    uint16         /* One of OFPMC_*. */
	Flags      uint16         /* Set of OFPMF_*. */
	MeterId    uint32         /* Meter instance. */
	MeterBands []util.Message /* List of MeterBand*. */
}

// Create a new meter mod message
func NewMeterMod() *MeterMod {
	m := new(MeterMod)
	m.Header = NewOfp13Header()
	m.Header.Type = Type_MeterMod
	m.MeterBands = make([]util.Message, 0)
	return m
}

// Add a meterBand to meter mod
func (m *MeterMod) AddMeterBand(mb util.Message) {
	m.MeterBands = append(m.MeterBands, mb)
}

func (m *MeterMod) Len() (n uint16) {
	n = m.Header.Len()
	n += 8
	if m.Command == OFPMC_DELETE {
		return
	}

	for _, b := range m.MeterBands {
		n += b.Len()
	}

	return
}

func (m *MeterMod) MarshalBinary() (data []byte, err error) {
	m.Header.Length = m.Len()
	data = make([]byte, m.Len())
	n := 0
	hdrBytes, err := m.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, hdrBytes)
	n += int(m.Header.Len())
	binary.BigEndian.PutUint16(data[n:], m.Command)
	n += 2
	binary.BigEndian.PutUint16(data[n:], m.Flags)
	n += 2
	binary.BigEndian.PutUint32(data[n:], m.MeterId)
	n += 4

	if m.Command != OFPMC_DELETE {
		for _, mb := range m.MeterBands {
			mbBytes, err := mb.MarshalBinary()
			if err != nil {
				return nil, err
			}
			copy(data[n:], mbBytes)
			n += int(mb.Len())
			log.Debugf("Metermod band: %v", mbBytes)
		}
	}

	log.Debugf("Metermod(%d): %v", len(data), data)

	return
}

func (m *MeterMod) UnmarshalBinary(data []byte) error {
	n := 0
	if err := m.Header.UnmarshalBinary(data[n:]); err != nil {
		return err
	}
	n += int(m.Header.Len())

	m.Command = binary.BigEndian.Uint16(data[n:])
	n += 2
	m.Flags = binary.BigEndian.Uint16(data[n:])
	n += 2
	m.MeterId = binary.BigEndian.Uint32(data[n:])
	n += 4

	m.MeterBands = nil
	for n+METER_BAND_HEADER_LEN <= int(m.Header.Length) {
		band, err := DecodeMeterBand(data[n:])
		if err != nil {
			return err
		}
		m.MeterBands = append(m.MeterBands, band)
		n += int(band.Len())
	}

	return nil
}

// MeterConfig is a single record returned by an OFPMP_METER_CONFIG
// multipart reply: a meter's id, flags and configured bands.
type MeterConfig struct {
	Length  uint16
	Flags   uint16
	MeterId uint32
	Bands   []util.Message
}

func (m *MeterConfig) Len() (n uint16) {
	n = 8
	for _, b := range m.Bands {
		n += b.Len()
	}
	return
}

func (m *MeterConfig) MarshalBinary() (data []byte, err error) {
	m.Length = m.Len()
	data = make([]byte, m.Length)
	binary.BigEndian.PutUint16(data[0:2], m.Length)
	binary.BigEndian.PutUint16(data[2:4], m.Flags)
	binary.BigEndian.PutUint32(data[4:8], m.MeterId)
	n := 8
	for _, b := range m.Bands {
		bb, err := b.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], bb)
		n += int(b.Len())
	}
	return
}

func (m *MeterConfig) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a MeterConfig header")
	}
	m.Length = binary.BigEndian.Uint16(data[0:2])
	m.Flags = binary.BigEndian.Uint16(data[2:4])
	m.MeterId = binary.BigEndian.Uint32(data[4:8])
	n := 8
	m.Bands = nil
	for n+METER_BAND_HEADER_LEN <= int(m.Length) {
		band, err := DecodeMeterBand(data[n:])
		if err != nil {
			return err
		}
		m.Bands = append(m.Bands, band)
		n += int(band.Len())
	}
	return nil
}

// MeterBandStats carries the packet/byte counters for a single band
// within an OFPMP_METER reply, mirroring its position in MeterBands.
type MeterBandStats struct {
	PacketBandCount uint64
	ByteBandCount   uint64
}

func (m *MeterBandStats) Len() uint16 { return 16 }

func (m *MeterBandStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 16)
	binary.BigEndian.PutUint64(data[0:8], m.PacketBandCount)
	binary.BigEndian.PutUint64(data[8:16], m.ByteBandCount)
	return
}

func (m *MeterBandStats) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a MeterBandStats")
	}
	m.PacketBandCount = binary.BigEndian.Uint64(data[0:8])
	m.ByteBandCount = binary.BigEndian.Uint64(data[8:16])
	return nil
}

// MeterStats is a single record returned by an OFPMP_METER multipart reply.
type MeterStats struct {
	MeterId       uint32
	Length        uint16
	pad           [6]uint8
	FlowCount     uint32
	PacketInCount uint64
	ByteInCount   uint64
	DurationSec   uint32
	DurationNsec  uint32
	BandStats     []MeterBandStats
}

func (m *MeterStats) Len() (n uint16) {
	n = 40
	n += uint16(len(m.BandStats)) * 16
	return
}

func (m *MeterStats) MarshalBinary() (data []byte, err error) {
	m.Length = m.Len()
	data = make([]byte, m.Length)
	binary.BigEndian.PutUint32(data[0:4], m.MeterId)
	binary.BigEndian.PutUint16(data[4:6], m.Length)
	binary.BigEndian.PutUint32(data[12:16], m.FlowCount)
	binary.BigEndian.PutUint64(data[16:24], m.PacketInCount)
	binary.BigEndian.PutUint64(data[24:32], m.ByteInCount)
	binary.BigEndian.PutUint32(data[32:36], m.DurationSec)
	binary.BigEndian.PutUint32(data[36:40], m.DurationNsec)
	n := 40
	for _, bs := range m.BandStats {
		bb, err := bs.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], bb)
		n += int(bs.Len())
	}
	return
}

func (m *MeterStats) UnmarshalBinary(data []byte) error {
	if len(data) < 40 {
		return fmt.Errorf("the []byte is too short to unmarshal a MeterStats header")
	}
	m.MeterId = binary.BigEndian.Uint32(data[0:4])
	m.Length = binary.BigEndian.Uint16(data[4:6])
	m.FlowCount = binary.BigEndian.Uint32(data[12:16])
	m.PacketInCount = binary.BigEndian.Uint64(data[16:24])
	m.ByteInCount = binary.BigEndian.Uint64(data[24:32])
	m.DurationSec = binary.BigEndian.Uint32(data[32:36])
	m.DurationNsec = binary.BigEndian.Uint32(data[36:40])
	n := 40
	m.BandStats = nil
	for n+16 <= int(m.Length) {
		var bs MeterBandStats
		if err := bs.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		m.BandStats = append(m.BandStats, bs)
		n += 16
	}
	return nil
}

// MeterFeatures is the body of an OFPMP_METER_FEATURES reply.
type MeterFeatures struct {
	MaxMeter     uint32
	BandTypes    uint32
	Capabilities uint32
	MaxBands     uint8
	MaxColor     uint8
	pad          [2]uint8
}

func (m *MeterFeatures) Len() uint16 { return 16 }

func (m *MeterFeatures) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 16)
	binary.BigEndian.PutUint32(data[0:4], m.MaxMeter)
	binary.BigEndian.PutUint32(data[4:8], m.BandTypes)
	binary.BigEndian.PutUint32(data[8:12], m.Capabilities)
	data[12] = m.MaxBands
	data[13] = m.MaxColor
	return
}

func (m *MeterFeatures) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("the []byte is too short to unmarshal a MeterFeatures")
	}
	m.MaxMeter = binary.BigEndian.Uint32(data[0:4])
	m.BandTypes = binary.BigEndian.Uint32(data[4:8])
	m.Capabilities = binary.BigEndian.Uint32(data[8:12])
	m.MaxBands = data[12]
	m.MaxColor = data[13]
	return nil
}
