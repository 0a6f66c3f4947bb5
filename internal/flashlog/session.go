package flashlog

import "time"

const (
	// SectorPayloadSize is the stripe size of the logical buffer. The logger
	// never writes a record across a stripe edge, so extraction skips ahead
	// to the next stripe instead of decoding a straddling candidate.
	SectorPayloadSize = 65528

	leadBlockSize  = 32
	configOffset   = 6
	configSize     = 24
	checksumOffset = 30

	// leadInChecksum is the value the mod-256 sum of all 32 lead-in bytes
	// must produce. Anything else marks a spurious zero-run match and the
	// candidate region is dropped.
	leadInChecksum = 0xFF

	leadOutTimeOffset = 25

	// engineStatusSlot is the one record slot decoded unsigned; every other
	// slot is a signed 16-bit quantity.
	engineStatusSlot = 13
)

// sentinelEpoch anchors timestamps for regions where neither lead block
// yields a usable time. Deliberately far in the future so such sessions are
// recognizable in output.
var sentinelEpoch = time.Date(2049, time.January, 1, 0, 0, 0, 0, time.UTC)

// defaultChannelConfig is the factory channel layout (codes 800-815), used
// when a lead-in carries an all-zero configuration block.
var defaultChannelConfig = [configSize]byte{
	50, 3, 33, 50, 35, 35, 50, 67, 37, 50, 99, 39,
	50, 131, 41, 50, 163, 43, 50, 195, 45, 50, 227, 47,
}

// DefaultChannels returns the factory layout of 16 channel codes.
func DefaultChannels() []int {
	return parseChannelConfig(defaultChannelConfig[:])
}

// parseChannelConfig unpacks 24 config bytes into 16 channel codes: the 48
// nibbles are grouped in threes, each group forming one 12-bit code.
func parseChannelConfig(cfg []byte) []int {
	nibbles := make([]byte, 0, len(cfg)*2)
	for _, b := range cfg {
		nibbles = append(nibbles, (b>>4)&0x0F, b&0x0F)
	}
	channels := make([]int, 0, len(nibbles)/3)
	for k := 0; k+2 < len(nibbles); k += 3 {
		code := int(nibbles[k])<<8 | int(nibbles[k+1])<<4 | int(nibbles[k+2])
		channels = append(channels, code)
	}
	return channels
}

func bcd(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// parseBCDTime decodes 6 BCD bytes (year-2000, month, day, hour, minute,
// second) into a UTC time. Returns false when any field falls outside
// calendar range, which marks the timestamp as absent.
func parseBCDTime(buf []byte) (time.Time, bool) {
	if len(buf) < 6 {
		return time.Time{}, false
	}
	yr := bcd(buf[0])
	mon := bcd(buf[1])
	day := bcd(buf[2])
	hr := bcd(buf[3])
	min := bcd(buf[4])
	sec := bcd(buf[5])
	if yr < 0 || yr >= 120 || mon < 1 || mon > 12 || day < 1 || day > 31 ||
		hr >= 24 || min >= 60 || sec >= 60 {
		return time.Time{}, false
	}
	return time.Date(2000+yr, time.Month(mon), day, hr, min, sec, 0, time.UTC), true
}

func blockChecksum(block []byte) byte {
	var sum byte
	for _, b := range block {
		sum += b
	}
	return sum
}

func allZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// buildSessions converts the region between each pair of boundaries (plus
// the leading and trailing regions) into a Session. Regions whose lead-in
// checksum does not validate, or that yield no records, are dropped.
func buildSessions(buf []byte) []*Session {
	boundaries := ScanBoundaries(buf)
	if len(boundaries) == 0 {
		return nil
	}

	var sessions []*Session
	for i := 0; i <= len(boundaries); i++ {
		var dataStart, dataEnd int
		liStart, loStart := -1, -1
		switch {
		case i == 0:
			dataStart, dataEnd = 0, boundaries[0]
			loStart = boundaries[0]
		case i == len(boundaries):
			dataStart, dataEnd = boundaries[i-1]+2*leadBlockSize, len(buf)
			liStart = boundaries[i-1] + leadBlockSize
		default:
			dataStart, dataEnd = boundaries[i-1]+2*leadBlockSize, boundaries[i]
			liStart = boundaries[i-1] + leadBlockSize
			loStart = boundaries[i]
		}

		// Lead-in: [6 BCD timestamp][24 channel config][checksum][spare].
		var liTime time.Time
		channels := DefaultChannels()
		if liStart >= 0 && liStart+leadBlockSize <= len(buf) {
			block := buf[liStart : liStart+leadBlockSize]
			if blockChecksum(block) != leadInChecksum {
				continue
			}
			liTime, _ = parseBCDTime(block[:configOffset])
			cfg := block[configOffset : configOffset+configSize]
			if !allZero(cfg) {
				channels = parseChannelConfig(cfg)
			}
		}

		// Lead-out: [25 gap zeros][6 BCD timestamp][checksum]. The device
		// format defines no checksum validation here; only the lead-in
		// gates acceptance.
		var loTime time.Time
		if loStart >= 0 && loStart+leadBlockSize <= len(buf) {
			loTime, _ = parseBCDTime(buf[loStart+leadOutTimeOffset : loStart+leadOutTimeOffset+6])
		}

		records := extractRecords(buf, dataStart, dataEnd, len(channels))
		if len(records) == 0 {
			continue
		}

		// 1 Hz cadence: one timestamp per record from the anchor.
		anchor := liTime
		if anchor.IsZero() && !loTime.IsZero() {
			anchor = loTime.Add(-time.Duration(len(records)) * time.Second)
		}
		if anchor.IsZero() {
			anchor = sentinelEpoch
		}
		timestamps := make([]time.Time, len(records))
		for r := range records {
			timestamps[r] = anchor.Add(time.Duration(r) * time.Second)
		}
		if loTime.IsZero() && !liTime.IsZero() {
			loTime = anchor.Add(time.Duration(len(records)) * time.Second)
		}
		leadIn := liTime
		if leadIn.IsZero() {
			leadIn = anchor
		}

		sessions = append(sessions, &Session{
			StartIndex:  dataStart,
			EndIndex:    dataEnd,
			LeadInTime:  leadIn,
			LeadOutTime: loTime,
			Channels:    channels,
			Records:     records,
			Timestamps:  timestamps,
		})
	}
	return sessions
}

// extractRecords decodes fixed-width records between dataStart and dataEnd.
// Each record is channelCount big-endian 16-bit fields. A candidate that
// would straddle a stripe edge is skipped and extraction resumes at the next
// stripe.
func extractRecords(buf []byte, dataStart, dataEnd, channelCount int) [][]float64 {
	recordSize := 2 * channelCount
	if recordSize <= 0 {
		return nil
	}
	var records [][]float64
	pos := dataStart
	for pos >= 0 && pos+recordSize <= dataEnd {
		startStripe := pos / SectorPayloadSize
		endStripe := (pos + recordSize - 1) / SectorPayloadSize
		if startStripe != endStripe {
			pos = endStripe * SectorPayloadSize
			continue
		}
		rec := make([]float64, channelCount)
		for slot := 0; slot < channelCount; slot++ {
			off := pos + slot*2
			raw := int(buf[off])<<8 | int(buf[off+1])
			if slot != engineStatusSlot && raw >= 0x8000 {
				raw -= 0x10000
			}
			rec[slot] = float64(raw)
		}
		records = append(records, rec)
		pos += recordSize
	}
	return records
}
