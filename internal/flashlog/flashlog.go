// Package flashlog reconstructs time-ordered recording sessions from the
// ring-buffered sector dump of an AE300 engine data logger.
package flashlog

import "github.com/ingramleedy/AustroView/internal/common"

// BuildSessions runs the full reassembly pipeline over a set of raw sectors:
// classify and filter, rebuild the chronological logical buffer, locate run
// boundaries, and decode the records between them. Deterministic for a given
// input regardless of sector order. Record values are raw counts; apply the
// signal conversion exactly once to obtain physical units.
func BuildSessions(sectors []RawSector) []*Session {
	recordable := make([]ClassifiedSector, 0, len(sectors))
	for _, sec := range sectors {
		cs := Classify(sec)
		if cs.State.Recordable() {
			recordable = append(recordable, cs)
		}
	}
	if len(recordable) == 0 {
		return nil
	}
	hasActive := false
	for _, sec := range recordable {
		if sec.State == StateActive {
			hasActive = true
			break
		}
	}
	if !hasActive {
		common.Logf("no active sector found, assuming id order is chronological")
	}
	buf := Assemble(recordable)
	return buildSessions(buf)
}
