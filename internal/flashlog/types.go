package flashlog

import "time"

// RawSector is one flash sector as read from the dump, framing bytes included.
type RawSector struct {
	ID  int
	Raw []byte
}

// SectorState is the lifecycle state encoded in a sector's trailing marker.
type SectorState uint8

const (
	StateUnknown SectorState = iota
	StateActive
	StateFullNotLocked
	StateLocked
	StateErased
	StateNotModified
)

func (s SectorState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFullNotLocked:
		return "fullNotLocked"
	case StateLocked:
		return "locked"
	case StateErased:
		return "erased"
	case StateNotModified:
		return "notModified"
	default:
		return "unknown"
	}
}

// Recordable reports whether sectors in this state hold recorded data and
// therefore participate in ring assembly.
func (s SectorState) Recordable() bool {
	switch s {
	case StateActive, StateLocked, StateFullNotLocked:
		return true
	default:
		return false
	}
}

// ClassifiedSector is a RawSector with its state decoded and the 2-byte
// header and 8-byte trailer stripped from the payload.
type ClassifiedSector struct {
	ID      int
	State   SectorState
	Payload []byte
}

// Session is one contiguous engine run reconstructed from the logical buffer.
// Records hold one value per channel slot; after signal conversion the raw
// counts are replaced in place by physical units.
type Session struct {
	StartIndex  int
	EndIndex    int
	LeadInTime  time.Time
	LeadOutTime time.Time
	Channels    []int
	Records     [][]float64
	Timestamps  []time.Time
}

// Duration is the recording length implied by the 1 Hz record cadence.
func (s *Session) Duration() time.Duration {
	if s == nil {
		return 0
	}
	return time.Duration(len(s.Records)) * time.Second
}
