package openflow13

// Multipart request/reply (§4.6): the ofp_multipart_header followed by
// a type-tagged, possibly repeated body. Most reply bodies are either a
// single fixed-size record (Desc, Aggregate) or a walked list of
// fixed-size or self-describing-length records (Flow, Table, Port,
// Queue, Group, TableFeatures).

import (
	"encoding/binary"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/go-ofcodec/libopenflow13/common"
	"github.com/go-ofcodec/libopenflow13/util"
)

// ofp_multipart_request 1.3
type MultipartRequest struct {
	common.Header
	Type  uint16
	Flags uint16
	pad   [4]uint8
	Body  []util.Message
}

func (s *MultipartRequest) Len() (n uint16) {
	n = s.Header.Len() + 8
	for _, body := range s.Body {
		n += body.Len()
	}
	return
}

func (s *MultipartRequest) MarshalBinary() (data []byte, err error) {
	s.Header.Length = s.Len()
	if data, err = s.Header.MarshalBinary(); err != nil {
		return
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint16(b[0:2], s.Type)
	binary.BigEndian.PutUint16(b[2:4], s.Flags)
	data = append(data, b...)

	for _, body := range s.Body {
		b, err = body.MarshalBinary()
		if err != nil {
			return
		}
		data = append(data, b...)
	}

	log.Debugf("sending MultipartRequest type %d (%d bytes)", s.Type, len(data))
	return
}

func (s *MultipartRequest) UnmarshalBinary(data []byte) error {
	if err := s.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(s.Header.Len())
	if len(data) < n+8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full MultipartRequest header")
	}
	s.Type = binary.BigEndian.Uint16(data[n : n+2])
	s.Flags = binary.BigEndian.Uint16(data[n+2 : n+4])
	n += 8

	s.Body = nil
	for n < int(s.Header.Length) {
		var req util.Message
		switch s.Type {
		case MultipartType_Aggregate:
			req = NewAggregateStatsRequest()
		case MultipartType_Flow:
			req = NewFlowStatsRequest()
		case MultipartType_Port:
			req = NewPortStatsRequest()
		case MultipartType_Queue:
			req = NewQueueStatsRequest()
		case MultipartType_Group:
			req = new(GroupStatsRequest)
		case MultipartType_Meter, MultipartType_MeterConfig:
			req = new(MeterMultipartRequest)
		case MultipartType_Desc, MultipartType_Table, MultipartType_GroupDesc,
			MultipartType_GroupFeatures, MultipartType_MeterFeatures, MultipartType_PortDesc:
			// empty request bodies
			n = int(s.Header.Length)
			continue
		case MultipartType_TableFeatures:
			req = new(OFPTableFeatures)
		default:
			return fmt.Errorf("unsupported MultipartRequest type: %d", s.Type)
		}
		if err := req.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		n += int(req.Len())
		s.Body = append(s.Body, req)
	}
	return nil
}

// ofp_multipart_reply 1.3
type MultipartReply struct {
	common.Header
	Type  uint16
	Flags uint16
	pad   [4]uint8
	Body  []util.Message
}

func (s *MultipartReply) Len() (n uint16) {
	n = s.Header.Len() + 8
	for _, r := range s.Body {
		n += r.Len()
	}
	return
}

func (s *MultipartReply) MarshalBinary() (data []byte, err error) {
	s.Header.Length = s.Len()
	if data, err = s.Header.MarshalBinary(); err != nil {
		return
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint16(b[0:2], s.Type)
	binary.BigEndian.PutUint16(b[2:4], s.Flags)
	data = append(data, b...)

	for _, r := range s.Body {
		b, err = r.MarshalBinary()
		if err != nil {
			return
		}
		data = append(data, b...)
	}
	return
}

func (s *MultipartReply) UnmarshalBinary(data []byte) error {
	if err := s.Header.UnmarshalBinary(data); err != nil {
		return err
	}
	n := int(s.Header.Len())
	if len(data) < n+8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full MultipartReply header")
	}
	s.Type = binary.BigEndian.Uint16(data[n : n+2])
	s.Flags = binary.BigEndian.Uint16(data[n+2 : n+4])
	n += 8

	s.Body = nil
	for n < int(s.Header.Length) {
		var repl util.Message
		switch s.Type {
		case MultipartType_Aggregate:
			repl = NewAggregateStats()
		case MultipartType_Desc:
			repl = NewDescStats()
		case MultipartType_Flow:
			repl = NewFlowStats()
		case MultipartType_Port:
			repl = new(PortStats)
		case MultipartType_Table:
			repl = new(TableStats)
		case MultipartType_Queue:
			repl = new(QueueStats)
		case MultipartType_Group:
			repl = new(GroupStats)
		case MultipartType_GroupDesc:
			repl = new(GroupDescStats)
		case MultipartType_GroupFeatures:
			repl = new(GroupFeaturesStats)
		case MultipartType_Meter:
			repl = new(MeterStats)
		case MultipartType_MeterConfig:
			repl = new(MeterConfig)
		case MultipartType_MeterFeatures:
			repl = new(MeterFeatures)
		case MultipartType_TableFeatures:
			repl = new(OFPTableFeatures)
		case MultipartType_PortDesc:
			repl = new(PhyPort)
		case MultipartType_Experimenter:
			n = int(s.Header.Length)
			continue
		default:
			return fmt.Errorf("unsupported MultipartReply type: %d", s.Type)
		}
		if err := repl.UnmarshalBinary(data[n:]); err != nil {
			log.Errorf("error parsing multipart reply body of type %d: %v", s.Type, err)
			return err
		}
		n += int(repl.Len())
		s.Body = append(s.Body, repl)
	}
	return nil
}

// ofp_multipart_request_flags & ofp_multipart_reply_flags 1.3
const (
	OFPMPF_REQ_MORE   = 1 << 0
	OFPMPF_REPLY_MORE = 1 << 0
)

// ofp_multipart_types 1.3
const (
	MultipartType_Desc = iota
	MultipartType_Flow
	MultipartType_Aggregate
	MultipartType_Table
	MultipartType_Port
	MultipartType_Queue
	MultipartType_Group
	MultipartType_GroupDesc
	MultipartType_GroupFeatures
	MultipartType_Meter
	MultipartType_MeterConfig
	MultipartType_MeterFeatures
	MultipartType_TableFeatures
	MultipartType_PortDesc
	MultipartType_Experimenter = 0xffff
)

const (
	DESC_STR_LEN   = 256
	SERIAL_NUM_LEN = 32
)

// ofp_desc (switch description, a fixed block of NUL-padded strings)
type DescStats struct {
	MfrDesc   []byte
	HWDesc    []byte
	SWDesc    []byte
	SerialNum []byte
	DPDesc    []byte
}

func NewDescStats() *DescStats {
	s := new(DescStats)
	s.MfrDesc = make([]byte, DESC_STR_LEN)
	s.HWDesc = make([]byte, DESC_STR_LEN)
	s.SWDesc = make([]byte, DESC_STR_LEN)
	s.SerialNum = make([]byte, SERIAL_NUM_LEN)
	s.DPDesc = make([]byte, DESC_STR_LEN)
	return s
}

func (s *DescStats) Len() (n uint16) {
	return uint16(DESC_STR_LEN*4 + SERIAL_NUM_LEN)
}

func (s *DescStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, s.Len())
	n := 0
	for _, f := range [][]byte{s.MfrDesc, s.HWDesc, s.SWDesc, s.SerialNum, s.DPDesc} {
		copy(data[n:], f)
		n += len(f)
	}
	return
}

func (s *DescStats) UnmarshalBinary(data []byte) error {
	if len(data) < int(s.Len()) {
		return fmt.Errorf("the []byte is too short to unmarshal a full DescStats")
	}
	n := 0
	for _, f := range [][]byte{s.MfrDesc, s.HWDesc, s.SWDesc, s.SerialNum, s.DPDesc} {
		copy(f, data[n:])
		n += len(f)
	}
	return nil
}

// ofp_flow_stats_request
type FlowStatsRequest struct {
	TableId    uint8
	pad        [3]uint8
	OutPort    uint32
	OutGroup   uint32
	pad2       [4]uint8
	Cookie     uint64
	CookieMask uint64
	Match      Match
}

func NewFlowStatsRequest() *FlowStatsRequest {
	s := new(FlowStatsRequest)
	s.TableId = OFPTT_ALL
	s.OutPort = PortAny
	s.OutGroup = GroupAny
	s.Match = *NewMatch()
	return s
}

func (s *FlowStatsRequest) Len() (n uint16) {
	return 32 + s.Match.Len()
}

func (s *FlowStatsRequest) MarshalBinary() (data []byte, err error) {
	data = make([]byte, s.Len())
	data[0] = s.TableId
	binary.BigEndian.PutUint32(data[4:8], s.OutPort)
	binary.BigEndian.PutUint32(data[8:12], s.OutGroup)
	binary.BigEndian.PutUint64(data[16:24], s.Cookie)
	binary.BigEndian.PutUint64(data[24:32], s.CookieMask)
	mb, err := s.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[32:], mb)
	return
}

func (s *FlowStatsRequest) UnmarshalBinary(data []byte) error {
	if len(data) < 32 {
		return fmt.Errorf("the []byte is too short to unmarshal a full FlowStatsRequest")
	}
	s.TableId = data[0]
	s.OutPort = binary.BigEndian.Uint32(data[4:8])
	s.OutGroup = binary.BigEndian.Uint32(data[8:12])
	s.Cookie = binary.BigEndian.Uint64(data[16:24])
	s.CookieMask = binary.BigEndian.Uint64(data[24:32])
	return s.Match.UnmarshalBinary(data[32:])
}

// ofp_flow_stats
type FlowStats struct {
	Length       uint16
	TableId      uint8
	pad          uint8
	DurationSec  uint32
	DurationNSec uint32
	Priority     uint16
	IdleTimeout  uint16
	HardTimeout  uint16
	Flags        uint16
	pad2         [4]uint8
	Cookie       uint64
	PacketCount  uint64
	ByteCount    uint64
	Match        Match
	Instructions []Instruction
}

func NewFlowStats() *FlowStats {
	f := new(FlowStats)
	f.Match = *NewMatch()
	return f
}

func (s *FlowStats) Len() (n uint16) {
	n = 48 + s.Match.Len()
	for _, instr := range s.Instructions {
		n += instr.Len()
	}
	return
}

func (s *FlowStats) MarshalBinary() (data []byte, err error) {
	s.Length = s.Len()
	data = make([]byte, s.Length)
	binary.BigEndian.PutUint16(data[0:2], s.Length)
	data[2] = s.TableId
	binary.BigEndian.PutUint32(data[4:8], s.DurationSec)
	binary.BigEndian.PutUint32(data[8:12], s.DurationNSec)
	binary.BigEndian.PutUint16(data[12:14], s.Priority)
	binary.BigEndian.PutUint16(data[14:16], s.IdleTimeout)
	binary.BigEndian.PutUint16(data[16:18], s.HardTimeout)
	binary.BigEndian.PutUint16(data[18:20], s.Flags)
	binary.BigEndian.PutUint64(data[24:32], s.Cookie)
	binary.BigEndian.PutUint64(data[32:40], s.PacketCount)
	binary.BigEndian.PutUint64(data[40:48], s.ByteCount)

	n := 48
	mb, err := s.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[n:], mb)
	n += int(s.Match.Len())

	for _, instr := range s.Instructions {
		ib, err := instr.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], ib)
		n += int(instr.Len())
	}
	return
}

func (s *FlowStats) UnmarshalBinary(data []byte) error {
	if len(data) < 48 {
		return fmt.Errorf("the []byte is too short to unmarshal a full FlowStats header")
	}
	s.Length = binary.BigEndian.Uint16(data[0:2])
	s.TableId = data[2]
	s.DurationSec = binary.BigEndian.Uint32(data[4:8])
	s.DurationNSec = binary.BigEndian.Uint32(data[8:12])
	s.Priority = binary.BigEndian.Uint16(data[12:14])
	s.IdleTimeout = binary.BigEndian.Uint16(data[14:16])
	s.HardTimeout = binary.BigEndian.Uint16(data[16:18])
	s.Flags = binary.BigEndian.Uint16(data[18:20])
	s.Cookie = binary.BigEndian.Uint64(data[24:32])
	s.PacketCount = binary.BigEndian.Uint64(data[32:40])
	s.ByteCount = binary.BigEndian.Uint64(data[40:48])

	n := 48
	if err := s.Match.UnmarshalBinary(data[n:]); err != nil {
		return err
	}
	n += int(s.Match.Len())

	s.Instructions = nil
	for n+4 <= int(s.Length) {
		hdr := new(InstrHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		ilen := int(hdr.Length)
		if ilen < 4 || n+ilen > int(s.Length) {
			break
		}
		instr, err := DecodeInstr(data[n:])
		if err != nil {
			return err
		}
		s.Instructions = append(s.Instructions, instr)
		n += int(instr.Len())
	}
	return nil
}

// ofp_aggregate_stats_request
type AggregateStatsRequest struct {
	TableId    uint8
	pad        [3]uint8
	OutPort    uint32
	OutGroup   uint32
	pad2       [4]uint8
	Cookie     uint64
	CookieMask uint64
	Match      Match
}

func NewAggregateStatsRequest() *AggregateStatsRequest {
	a := new(AggregateStatsRequest)
	a.TableId = OFPTT_ALL
	a.OutPort = PortAny
	a.OutGroup = GroupAny
	a.Match = *NewMatch()
	return a
}

func (s *AggregateStatsRequest) Len() (n uint16) {
	return 32 + s.Match.Len()
}

func (s *AggregateStatsRequest) MarshalBinary() (data []byte, err error) {
	data = make([]byte, s.Len())
	data[0] = s.TableId
	binary.BigEndian.PutUint32(data[4:8], s.OutPort)
	binary.BigEndian.PutUint32(data[8:12], s.OutGroup)
	binary.BigEndian.PutUint64(data[16:24], s.Cookie)
	binary.BigEndian.PutUint64(data[24:32], s.CookieMask)
	mb, err := s.Match.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data[32:], mb)
	return
}

func (s *AggregateStatsRequest) UnmarshalBinary(data []byte) error {
	if len(data) < 32 {
		return fmt.Errorf("the []byte is too short to unmarshal a full AggregateStatsRequest")
	}
	s.TableId = data[0]
	s.OutPort = binary.BigEndian.Uint32(data[4:8])
	s.OutGroup = binary.BigEndian.Uint32(data[8:12])
	s.Cookie = binary.BigEndian.Uint64(data[16:24])
	s.CookieMask = binary.BigEndian.Uint64(data[24:32])
	return s.Match.UnmarshalBinary(data[32:])
}

// ofp_aggregate_stats_reply
type AggregateStats struct {
	PacketCount uint64
	ByteCount   uint64
	FlowCount   uint32
	pad         [4]uint8
}

func NewAggregateStats() *AggregateStats { return new(AggregateStats) }

func (s *AggregateStats) Len() (n uint16) { return 24 }

func (s *AggregateStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 24)
	binary.BigEndian.PutUint64(data[0:8], s.PacketCount)
	binary.BigEndian.PutUint64(data[8:16], s.ByteCount)
	binary.BigEndian.PutUint32(data[16:20], s.FlowCount)
	return
}

func (s *AggregateStats) UnmarshalBinary(data []byte) error {
	if len(data) < 24 {
		return fmt.Errorf("the []byte is too short to unmarshal a full AggregateStats")
	}
	s.PacketCount = binary.BigEndian.Uint64(data[0:8])
	s.ByteCount = binary.BigEndian.Uint64(data[8:16])
	s.FlowCount = binary.BigEndian.Uint32(data[16:20])
	return nil
}

// ofp_table_stats (1.3 dropped name/wildcards/max_entries from the 1.0 shape)
type TableStats struct {
	TableId      uint8
	pad          [3]uint8
	ActiveCount  uint32
	LookupCount  uint64
	MatchedCount uint64
}

func NewTableStats() *TableStats { return new(TableStats) }

func (s *TableStats) Len() (n uint16) { return 24 }

func (s *TableStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 24)
	data[0] = s.TableId
	binary.BigEndian.PutUint32(data[4:8], s.ActiveCount)
	binary.BigEndian.PutUint64(data[8:16], s.LookupCount)
	binary.BigEndian.PutUint64(data[16:24], s.MatchedCount)
	return
}

func (s *TableStats) UnmarshalBinary(data []byte) error {
	if len(data) < 24 {
		return fmt.Errorf("the []byte is too short to unmarshal a full TableStats")
	}
	s.TableId = data[0]
	s.ActiveCount = binary.BigEndian.Uint32(data[4:8])
	s.LookupCount = binary.BigEndian.Uint64(data[8:16])
	s.MatchedCount = binary.BigEndian.Uint64(data[16:24])
	return nil
}

// ofp_port_stats_request
type PortStatsRequest struct {
	PortNo uint32
	pad    [4]uint8
}

func NewPortStatsRequest() *PortStatsRequest {
	return &PortStatsRequest{PortNo: PortAny}
}

func (s *PortStatsRequest) Len() (n uint16) { return 8 }

func (s *PortStatsRequest) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], s.PortNo)
	return
}

func (s *PortStatsRequest) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PortStatsRequest")
	}
	s.PortNo = binary.BigEndian.Uint32(data[0:4])
	return nil
}

// ofp_port_stats
type PortStats struct {
	PortNo       uint32
	pad          [4]uint8
	RxPackets    uint64
	TxPackets    uint64
	RxBytes      uint64
	TxBytes      uint64
	RxDropped    uint64
	TxDropped    uint64
	RxErrors     uint64
	TxErrors     uint64
	RxFrameErr   uint64
	RxOverErr    uint64
	RxCRCErr     uint64
	Collisions   uint64
	DurationSec  uint32
	DurationNsec uint32
}

func NewPortStats() *PortStats { return new(PortStats) }

func (s *PortStats) Len() (n uint16) { return 112 }

func (s *PortStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 112)
	binary.BigEndian.PutUint32(data[0:4], s.PortNo)
	binary.BigEndian.PutUint64(data[8:16], s.RxPackets)
	binary.BigEndian.PutUint64(data[16:24], s.TxPackets)
	binary.BigEndian.PutUint64(data[24:32], s.RxBytes)
	binary.BigEndian.PutUint64(data[32:40], s.TxBytes)
	binary.BigEndian.PutUint64(data[40:48], s.RxDropped)
	binary.BigEndian.PutUint64(data[48:56], s.TxDropped)
	binary.BigEndian.PutUint64(data[56:64], s.RxErrors)
	binary.BigEndian.PutUint64(data[64:72], s.TxErrors)
	binary.BigEndian.PutUint64(data[72:80], s.RxFrameErr)
	binary.BigEndian.PutUint64(data[80:88], s.RxOverErr)
	binary.BigEndian.PutUint64(data[88:96], s.RxCRCErr)
	binary.BigEndian.PutUint64(data[96:104], s.Collisions)
	binary.BigEndian.PutUint32(data[104:108], s.DurationSec)
	binary.BigEndian.PutUint32(data[108:112], s.DurationNsec)
	return
}

func (s *PortStats) UnmarshalBinary(data []byte) error {
	if len(data) < 112 {
		return fmt.Errorf("the []byte is too short to unmarshal a full PortStats")
	}
	s.PortNo = binary.BigEndian.Uint32(data[0:4])
	s.RxPackets = binary.BigEndian.Uint64(data[8:16])
	s.TxPackets = binary.BigEndian.Uint64(data[16:24])
	s.RxBytes = binary.BigEndian.Uint64(data[24:32])
	s.TxBytes = binary.BigEndian.Uint64(data[32:40])
	s.RxDropped = binary.BigEndian.Uint64(data[40:48])
	s.TxDropped = binary.BigEndian.Uint64(data[48:56])
	s.RxErrors = binary.BigEndian.Uint64(data[56:64])
	s.TxErrors = binary.BigEndian.Uint64(data[64:72])
	s.RxFrameErr = binary.BigEndian.Uint64(data[72:80])
	s.RxOverErr = binary.BigEndian.Uint64(data[80:88])
	s.RxCRCErr = binary.BigEndian.Uint64(data[88:96])
	s.Collisions = binary.BigEndian.Uint64(data[96:104])
	s.DurationSec = binary.BigEndian.Uint32(data[104:108])
	s.DurationNsec = binary.BigEndian.Uint32(data[108:112])
	return nil
}

// ofp_queue_stats_request
type QueueStatsRequest struct {
	PortNo  uint32
	QueueId uint32
}

func NewQueueStatsRequest() *QueueStatsRequest {
	return &QueueStatsRequest{PortNo: PortAny, QueueId: 0xffffffff}
}

func (s *QueueStatsRequest) Len() (n uint16) { return 8 }

func (s *QueueStatsRequest) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], s.PortNo)
	binary.BigEndian.PutUint32(data[4:8], s.QueueId)
	return
}

func (s *QueueStatsRequest) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full QueueStatsRequest")
	}
	s.PortNo = binary.BigEndian.Uint32(data[0:4])
	s.QueueId = binary.BigEndian.Uint32(data[4:8])
	return nil
}

// ofp_queue_stats
type QueueStats struct {
	PortNo       uint32
	QueueId      uint32
	TxBytes      uint64
	TxPackets    uint64
	TxErrors     uint64
	DurationSec  uint32
	DurationNsec uint32
}

func (s *QueueStats) Len() (n uint16) { return 40 }

func (s *QueueStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 40)
	binary.BigEndian.PutUint32(data[0:4], s.PortNo)
	binary.BigEndian.PutUint32(data[4:8], s.QueueId)
	binary.BigEndian.PutUint64(data[8:16], s.TxBytes)
	binary.BigEndian.PutUint64(data[16:24], s.TxPackets)
	binary.BigEndian.PutUint64(data[24:32], s.TxErrors)
	binary.BigEndian.PutUint32(data[32:36], s.DurationSec)
	binary.BigEndian.PutUint32(data[36:40], s.DurationNsec)
	return
}

func (s *QueueStats) UnmarshalBinary(data []byte) error {
	if len(data) < 40 {
		return fmt.Errorf("the []byte is too short to unmarshal a full QueueStats")
	}
	s.PortNo = binary.BigEndian.Uint32(data[0:4])
	s.QueueId = binary.BigEndian.Uint32(data[4:8])
	s.TxBytes = binary.BigEndian.Uint64(data[8:16])
	s.TxPackets = binary.BigEndian.Uint64(data[16:24])
	s.TxErrors = binary.BigEndian.Uint64(data[24:32])
	s.DurationSec = binary.BigEndian.Uint32(data[32:36])
	s.DurationNsec = binary.BigEndian.Uint32(data[36:40])
	return nil
}

// ofp_group_stats_request
type GroupStatsRequest struct {
	GroupId uint32
	pad     [4]uint8
}

func (s *GroupStatsRequest) Len() (n uint16) { return 8 }

func (s *GroupStatsRequest) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], s.GroupId)
	return
}

func (s *GroupStatsRequest) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupStatsRequest")
	}
	s.GroupId = binary.BigEndian.Uint32(data[0:4])
	return nil
}

// ofp_group_stats
type GroupStats struct {
	Length       uint16
	pad          [2]uint8
	GroupId      uint32
	RefCount     uint32
	pad2         [4]uint8
	PacketCount  uint64
	ByteCount    uint64
	DurationSec  uint32
	DurationNsec uint32
	BucketStats  []BucketCounter
}

func (s *GroupStats) Len() (n uint16) {
	return 40 + uint16(len(s.BucketStats))*16
}

func (s *GroupStats) MarshalBinary() (data []byte, err error) {
	s.Length = s.Len()
	data = make([]byte, s.Length)
	binary.BigEndian.PutUint16(data[0:2], s.Length)
	binary.BigEndian.PutUint32(data[4:8], s.GroupId)
	binary.BigEndian.PutUint32(data[8:12], s.RefCount)
	binary.BigEndian.PutUint64(data[16:24], s.PacketCount)
	binary.BigEndian.PutUint64(data[24:32], s.ByteCount)
	binary.BigEndian.PutUint32(data[32:36], s.DurationSec)
	binary.BigEndian.PutUint32(data[36:40], s.DurationNsec)
	n := 40
	for _, bc := range s.BucketStats {
		binary.BigEndian.PutUint64(data[n:n+8], bc.PacketCount)
		binary.BigEndian.PutUint64(data[n+8:n+16], bc.ByteCount)
		n += 16
	}
	return
}

func (s *GroupStats) UnmarshalBinary(data []byte) error {
	if len(data) < 40 {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupStats header")
	}
	s.Length = binary.BigEndian.Uint16(data[0:2])
	if int(s.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupStats")
	}
	s.GroupId = binary.BigEndian.Uint32(data[4:8])
	s.RefCount = binary.BigEndian.Uint32(data[8:12])
	s.PacketCount = binary.BigEndian.Uint64(data[16:24])
	s.ByteCount = binary.BigEndian.Uint64(data[24:32])
	s.DurationSec = binary.BigEndian.Uint32(data[32:36])
	s.DurationNsec = binary.BigEndian.Uint32(data[36:40])
	s.BucketStats = nil
	for n := 40; n+16 <= int(s.Length); n += 16 {
		s.BucketStats = append(s.BucketStats, BucketCounter{
			PacketCount: binary.BigEndian.Uint64(data[n : n+8]),
			ByteCount:   binary.BigEndian.Uint64(data[n+8 : n+16]),
		})
	}
	return nil
}

// ofp_group_desc
type GroupDescStats struct {
	Length  uint16
	Type    uint8
	pad     uint8
	GroupId uint32
	Buckets []Bucket
}

func (s *GroupDescStats) Len() (n uint16) {
	n = 8
	for _, b := range s.Buckets {
		n += b.Len()
	}
	return
}

func (s *GroupDescStats) MarshalBinary() (data []byte, err error) {
	s.Length = s.Len()
	data = make([]byte, s.Length)
	binary.BigEndian.PutUint16(data[0:2], s.Length)
	data[2] = s.Type
	binary.BigEndian.PutUint32(data[4:8], s.GroupId)
	n := 8
	for _, b := range s.Buckets {
		bb, err := b.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], bb)
		n += int(b.Len())
	}
	return
}

func (s *GroupDescStats) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupDescStats header")
	}
	s.Length = binary.BigEndian.Uint16(data[0:2])
	s.Type = data[2]
	s.GroupId = binary.BigEndian.Uint32(data[4:8])
	if int(s.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupDescStats")
	}
	s.Buckets = nil
	n := 8
	for n+16 <= int(s.Length) {
		var b Bucket
		if err := b.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		blen := int(b.Length)
		if blen < 16 || n+blen > int(s.Length) {
			break
		}
		s.Buckets = append(s.Buckets, b)
		n += blen
	}
	return nil
}

// ofp_group_features
type GroupFeaturesStats struct {
	Types        uint32
	Capabilities uint32
	MaxGroups    [4]uint32
	Actions      [4]uint32
}

func (s *GroupFeaturesStats) Len() (n uint16) { return 40 }

func (s *GroupFeaturesStats) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 40)
	binary.BigEndian.PutUint32(data[0:4], s.Types)
	binary.BigEndian.PutUint32(data[4:8], s.Capabilities)
	for i, v := range s.MaxGroups {
		binary.BigEndian.PutUint32(data[8+i*4:12+i*4], v)
	}
	for i, v := range s.Actions {
		binary.BigEndian.PutUint32(data[24+i*4:28+i*4], v)
	}
	return
}

func (s *GroupFeaturesStats) UnmarshalBinary(data []byte) error {
	if len(data) < 40 {
		return fmt.Errorf("the []byte is too short to unmarshal a full GroupFeaturesStats")
	}
	s.Types = binary.BigEndian.Uint32(data[0:4])
	s.Capabilities = binary.BigEndian.Uint32(data[4:8])
	for i := range s.MaxGroups {
		s.MaxGroups[i] = binary.BigEndian.Uint32(data[8+i*4 : 12+i*4])
	}
	for i := range s.Actions {
		s.Actions[i] = binary.BigEndian.Uint32(data[24+i*4 : 28+i*4])
	}
	return nil
}

// ofp_meter_multipart_request (used by both METER and METER_CONFIG)
type MeterMultipartRequest struct {
	MeterId uint32
	pad     [4]uint8
}

func (s *MeterMultipartRequest) Len() (n uint16) { return 8 }

func (s *MeterMultipartRequest) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 8)
	binary.BigEndian.PutUint32(data[0:4], s.MeterId)
	return
}

func (s *MeterMultipartRequest) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("the []byte is too short to unmarshal a full MeterMultipartRequest")
	}
	s.MeterId = binary.BigEndian.Uint32(data[0:4])
	return nil
}

// ofp_table_feature_prop_type 1.3
const (
	OFPTFPT13_INSTRUCTIONS        = 0
	OFPTFPT13_INSTRUCTIONS_MISS   = 1
	OFPTFPT13_NEXT_TABLES         = 2
	OFPTFPT13_NEXT_TABLES_MISS    = 3
	OFPTFPT13_WRITE_ACTIONS       = 4
	OFPTFPT13_WRITE_ACTIONS_MISS  = 5
	OFPTFPT13_APPLY_ACTIONS       = 6
	OFPTFPT13_APPLY_ACTIONS_MISS  = 7
	OFPTFPT13_MATCH               = 8
	OFPTFPT13_WILDCARDS           = 10
	OFPTFPT13_WRITE_SETFIELD      = 12
	OFPTFPT13_WRITE_SETFIELD_MISS = 13
	OFPTFPT13_APPLY_SETFIELD      = 14
	OFPTFPT13_APPLY_SETFIELD_MISS = 15
	OFPTFPT13_EXPERIMENTER        = 0xfffe
	OFPTFPT13_EXPERIMENTER_MISS   = 0xffff
)

type OFTablePropertyHeader struct {
	Type   uint16
	Length uint16
}

func (h *OFTablePropertyHeader) Len() uint16 { return 4 }

func (h *OFTablePropertyHeader) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], h.Type)
	binary.BigEndian.PutUint16(data[2:4], h.Length)
	return
}

func (h *OFTablePropertyHeader) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("the []byte is too short to unmarshal a full OFTablePropertyHeader")
	}
	h.Type = binary.BigEndian.Uint16(data[0:2])
	h.Length = binary.BigEndian.Uint16(data[2:4])
	return nil
}

type InstructionProperty struct {
	OFTablePropertyHeader
	Instructions []InstrHeader
}

func (p *InstructionProperty) Len() uint16 {
	n := p.OFTablePropertyHeader.Len()
	for _, instr := range p.Instructions {
		n += instr.Len()
	}
	return (n + 7) / 8 * 8
}

func (p *InstructionProperty) MarshalBinary() (data []byte, err error) {
	data = make([]byte, p.Len())
	p.Length = p.OFTablePropertyHeader.Len()
	for _, instr := range p.Instructions {
		p.Length += instr.Len()
	}
	header, err := p.OFTablePropertyHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, header)
	n := 4
	for _, instr := range p.Instructions {
		b, err := instr.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], b)
		n += int(instr.Len())
	}
	return data, nil
}

func (p *InstructionProperty) UnmarshalBinary(data []byte) error {
	if err := p.OFTablePropertyHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < int(p.Length) {
		return fmt.Errorf("the []byte is too short to unmarshal a full InstructionProperty")
	}
	n := 4
	p.Instructions = nil
	for n < int(p.Length) {
		instr := new(InstrHeader)
		if err := instr.UnmarshalBinary(data[n : n+4]); err != nil {
			return err
		}
		p.Instructions = append(p.Instructions, *instr)
		n += 4
	}
	return nil
}

type NextTableProperty struct {
	OFTablePropertyHeader
	TableIDs []uint8
}

func (p *NextTableProperty) Len() uint16 {
	return (p.OFTablePropertyHeader.Len() + uint16(len(p.TableIDs)) + 7) / 8 * 8
}

func (p *NextTableProperty) MarshalBinary() (data []byte, err error) {
	data = make([]byte, p.Len())
	p.Length = p.OFTablePropertyHeader.Len() + uint16(len(p.TableIDs))
	header, err := p.OFTablePropertyHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, header)
	copy(data[4:], p.TableIDs)
	return
}

func (p *NextTableProperty) UnmarshalBinary(data []byte) error {
	if err := p.OFTablePropertyHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < int(p.Length) {
		return fmt.Errorf("the []byte is too short to unmarshal a full NextTableProperty")
	}
	p.TableIDs = append([]byte(nil), data[4:p.Length]...)
	return nil
}

type ActionProperty struct {
	OFTablePropertyHeader
	Actions []ActionHeader
}

func (p *ActionProperty) Len() uint16 {
	n := p.OFTablePropertyHeader.Len()
	for _, act := range p.Actions {
		n += act.Len()
	}
	return (n + 7) / 8 * 8
}

func (p *ActionProperty) MarshalBinary() (data []byte, err error) {
	data = make([]byte, p.Len())
	p.Length = p.OFTablePropertyHeader.Len()
	for _, act := range p.Actions {
		p.Length += act.Len()
	}
	header, err := p.OFTablePropertyHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, header)
	n := 4
	for _, act := range p.Actions {
		b, err := act.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], b)
		n += int(act.Len())
	}
	return data, nil
}

func (p *ActionProperty) UnmarshalBinary(data []byte) error {
	if err := p.OFTablePropertyHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < int(p.Length) {
		return fmt.Errorf("the []byte is too short to unmarshal a full ActionProperty")
	}
	n := 4
	p.Actions = nil
	for n+4 <= int(p.Length) {
		act := new(ActionHeader)
		if err := act.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		p.Actions = append(p.Actions, *act)
		n += int(act.Len())
	}
	return nil
}

type SetFieldProperty struct {
	OFTablePropertyHeader
	IDs []uint32
}

func (p *SetFieldProperty) Len() uint16 {
	n := p.OFTablePropertyHeader.Len() + 4*uint16(len(p.IDs))
	return (n + 7) / 8 * 8
}

func (p *SetFieldProperty) MarshalBinary() (data []byte, err error) {
	data = make([]byte, p.Len())
	p.Length = p.OFTablePropertyHeader.Len() + 4*uint16(len(p.IDs))
	header, err := p.OFTablePropertyHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, header)
	n := 4
	for _, oid := range p.IDs {
		binary.BigEndian.PutUint32(data[n:], oid)
		n += 4
	}
	return data, nil
}

func (p *SetFieldProperty) UnmarshalBinary(data []byte) error {
	if err := p.OFTablePropertyHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < int(p.Length) {
		return fmt.Errorf("the []byte is too short to unmarshal a full SetFieldProperty")
	}
	n := 4
	p.IDs = nil
	for n+4 <= int(p.Length) {
		p.IDs = append(p.IDs, binary.BigEndian.Uint32(data[n:]))
		n += 4
	}
	return nil
}

type TableExperimenterProperty struct {
	OFTablePropertyHeader
	Experimenter     uint32
	ExperimenterType uint32
	ExperimenterData []uint32
}

func (p *TableExperimenterProperty) Len() uint16 {
	n := p.OFTablePropertyHeader.Len() + 8 + 4*uint16(len(p.ExperimenterData))
	return (n + 7) / 8 * 8
}

func (p *TableExperimenterProperty) MarshalBinary() (data []byte, err error) {
	data = make([]byte, p.Len())
	p.Length = p.OFTablePropertyHeader.Len() + 8 + 4*uint16(len(p.ExperimenterData))
	header, err := p.OFTablePropertyHeader.MarshalBinary()
	if err != nil {
		return nil, err
	}
	copy(data, header)
	binary.BigEndian.PutUint32(data[4:8], p.Experimenter)
	binary.BigEndian.PutUint32(data[8:12], p.ExperimenterType)
	n := 12
	for _, d := range p.ExperimenterData {
		binary.BigEndian.PutUint32(data[n:], d)
		n += 4
	}
	return data, nil
}

func (p *TableExperimenterProperty) UnmarshalBinary(data []byte) error {
	if err := p.OFTablePropertyHeader.UnmarshalBinary(data); err != nil {
		return err
	}
	if len(data) < int(p.Length) {
		return fmt.Errorf("the []byte is too short to unmarshal a full TableExperimenterProperty")
	}
	p.Experimenter = binary.BigEndian.Uint32(data[4:8])
	p.ExperimenterType = binary.BigEndian.Uint32(data[8:12])
	p.ExperimenterData = nil
	n := 12
	for n+4 <= int(p.Length) {
		p.ExperimenterData = append(p.ExperimenterData, binary.BigEndian.Uint32(data[n:]))
		n += 4
	}
	return nil
}

func decodeTableFeatureProp(data []byte) (util.Message, error) {
	hdr := new(OFTablePropertyHeader)
	if err := hdr.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	var p util.Message
	switch hdr.Type {
	case OFPTFPT13_INSTRUCTIONS, OFPTFPT13_INSTRUCTIONS_MISS:
		p = new(InstructionProperty)
	case OFPTFPT13_NEXT_TABLES, OFPTFPT13_NEXT_TABLES_MISS:
		p = new(NextTableProperty)
	case OFPTFPT13_APPLY_ACTIONS, OFPTFPT13_APPLY_ACTIONS_MISS,
		OFPTFPT13_WRITE_ACTIONS, OFPTFPT13_WRITE_ACTIONS_MISS:
		p = new(ActionProperty)
	case OFPTFPT13_MATCH, OFPTFPT13_WILDCARDS,
		OFPTFPT13_WRITE_SETFIELD, OFPTFPT13_WRITE_SETFIELD_MISS,
		OFPTFPT13_APPLY_SETFIELD, OFPTFPT13_APPLY_SETFIELD_MISS:
		p = new(SetFieldProperty)
	case OFPTFPT13_EXPERIMENTER, OFPTFPT13_EXPERIMENTER_MISS:
		p = new(TableExperimenterProperty)
	default:
		return nil, &UnknownTableFeatureProp{Type: hdr.Type}
	}
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

// ofp_table_features
type OFPTableFeatures struct {
	Length        uint16
	TableID       uint8
	Command       uint8
	pad           [4]uint8
	Name          [32]byte
	MetadataMatch uint64
	MetadataWrite uint64
	Capabilities  uint32
	MaxEntries    uint32
	Properties    []util.Message
}

func (f *OFPTableFeatures) Len() uint16 {
	n := uint16(64)
	for _, p := range f.Properties {
		n += p.Len()
	}
	return n
}

func (f *OFPTableFeatures) MarshalBinary() (data []byte, err error) {
	f.Length = f.Len()
	data = make([]byte, f.Length)
	binary.BigEndian.PutUint16(data[0:2], f.Length)
	data[2] = f.TableID
	data[3] = f.Command
	copy(data[8:40], f.Name[:])
	binary.BigEndian.PutUint64(data[40:48], f.MetadataMatch)
	binary.BigEndian.PutUint64(data[48:56], f.MetadataWrite)
	binary.BigEndian.PutUint32(data[56:60], f.Capabilities)
	binary.BigEndian.PutUint32(data[60:64], f.MaxEntries)
	n := 64
	for _, p := range f.Properties {
		pd, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		copy(data[n:], pd)
		n += int(p.Len())
	}
	return
}

func (f *OFPTableFeatures) UnmarshalBinary(data []byte) error {
	if len(data) < 64 {
		return fmt.Errorf("the []byte is too short to unmarshal a full OFPTableFeatures header")
	}
	f.Length = binary.BigEndian.Uint16(data[0:2])
	if int(f.Length) > len(data) {
		return fmt.Errorf("the []byte is too short to unmarshal a full OFPTableFeatures")
	}
	f.TableID = data[2]
	f.Command = data[3]
	copy(f.Name[:], data[8:40])
	f.MetadataMatch = binary.BigEndian.Uint64(data[40:48])
	f.MetadataWrite = binary.BigEndian.Uint64(data[48:56])
	f.Capabilities = binary.BigEndian.Uint32(data[56:60])
	f.MaxEntries = binary.BigEndian.Uint32(data[60:64])

	f.Properties = nil
	n := 64
	for n+4 <= int(f.Length) {
		hdr := new(OFTablePropertyHeader)
		if err := hdr.UnmarshalBinary(data[n:]); err != nil {
			return err
		}
		plen := int(hdr.Length)
		padded := (plen + 7) / 8 * 8
		if plen < 4 || n+padded > int(f.Length) {
			break
		}
		p, err := decodeTableFeatureProp(data[n : n+padded])
		if err != nil {
			return err
		}
		f.Properties = append(f.Properties, p)
		n += padded
	}
	return nil
}
