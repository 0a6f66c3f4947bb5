package flashlog

import "sort"

// Assemble reconstructs the chronological logical buffer from the recordable
// sectors of a circular flash log. Sectors are ordered by ascending id, then
// rotated so that the sector following the active sector comes first: the
// active sector is mid-write and therefore the newest, so the oldest data
// lives immediately after it. Without an active sector the id order is used
// as-is.
func Assemble(sectors []ClassifiedSector) []byte {
	if len(sectors) == 0 {
		return nil
	}
	ordered := make([]ClassifiedSector, len(sectors))
	copy(ordered, sectors)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	activeIdx := -1
	for i, sec := range ordered {
		if sec.State == StateActive {
			activeIdx = i
		}
	}

	total := 0
	for _, sec := range ordered {
		total += len(sec.Payload)
	}
	buf := make([]byte, 0, total)
	if activeIdx >= 0 {
		for _, sec := range ordered[activeIdx+1:] {
			buf = append(buf, sec.Payload...)
		}
		ordered = ordered[:activeIdx+1]
	}
	for _, sec := range ordered {
		buf = append(buf, sec.Payload...)
	}
	return buf
}
