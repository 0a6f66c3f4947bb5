package signal

import "github.com/ingramleedy/AustroView/internal/flashlog"

// Convert replaces raw counts with physical units in place, applying each
// slot's affine class map. Slots whose channel code is unknown keep their
// raw value. The transform is not idempotent; callers invoke it exactly once
// per pipeline run, after extraction.
func Convert(sessions []*flashlog.Session) {
	for _, session := range sessions {
		for _, record := range session.Records {
			for slot, code := range session.Channels {
				spec, ok := channels[code]
				if !ok {
					continue
				}
				cls, ok := LookupClass(spec.ClassIndex)
				if !ok {
					continue
				}
				record[slot] = cls.Coefficient*record[slot] + cls.Offset
			}
		}
	}
}
