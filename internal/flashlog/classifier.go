package flashlog

const (
	sectorHeaderSize  = 2
	sectorTrailerSize = 8
	sectorMarkerSize  = 4

	markerActive        = 0xAA
	markerFullNotLocked = 0xA8
	markerLocked        = 0x00
	markerErased        = 0xFE
	markerNotModified   = 0xFF
)

// MinSectorID and MaxSectorID bound the data-log sector id range [16, 140).
// Sectors outside the range belong to other logger subsystems.
const (
	MinSectorID = 16
	MaxSectorID = 140
)

// Classify decodes the sector's trailing 4-byte marker into a lifecycle state
// and strips the framing bytes from the payload. A sector too short to carry
// both frame and marker classifies as unknown with an empty payload.
func Classify(sec RawSector) ClassifiedSector {
	out := ClassifiedSector{ID: sec.ID, State: StateUnknown}
	if len(sec.Raw) < sectorHeaderSize+sectorTrailerSize {
		return out
	}
	out.State = decodeMarker(sec.Raw[len(sec.Raw)-sectorMarkerSize:])
	out.Payload = sec.Raw[sectorHeaderSize : len(sec.Raw)-sectorTrailerSize]
	return out
}

func decodeMarker(marker []byte) SectorState {
	if len(marker) != sectorMarkerSize {
		return StateUnknown
	}
	b := marker[0]
	for _, m := range marker[1:] {
		if m != b {
			return StateUnknown
		}
	}
	switch b {
	case markerActive:
		return StateActive
	case markerFullNotLocked:
		return StateFullNotLocked
	case markerLocked:
		return StateLocked
	case markerErased:
		return StateErased
	case markerNotModified:
		return StateNotModified
	default:
		return StateUnknown
	}
}
