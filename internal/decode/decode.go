// Package decode runs the full per-file pipeline shared by the CLI and the
// daemon: decrypt, parse sectors, reassemble, segment into sessions, convert
// to physical units.
package decode

import (
	"fmt"
	"os"

	"github.com/ingramleedy/AustroView/internal/ae3"
	"github.com/ingramleedy/AustroView/internal/common"
	"github.com/ingramleedy/AustroView/internal/flashlog"
	"github.com/ingramleedy/AustroView/internal/signal"
)

// Result is everything decoded from one container file. Sessions carry
// physical units; the conversion has already been applied.
type Result struct {
	Path     string
	SHA256   string
	Size     int64
	XML      []byte
	Sectors  int
	Sessions []*flashlog.Session
}

// File decodes one .ae3 container. Region-level anomalies inside the dump
// are recovered silently; only file-level failures (unreadable, undecryptable,
// malformed XML) surface as errors, tagged with the file identity so batch
// callers can continue with the next file.
func File(path string, metrics *common.Metrics) (Result, error) {
	res := Result{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	res.Size = int64(len(data))
	res.SHA256 = common.Sha256OfBytes(data)
	if metrics != nil {
		metrics.SetTotalBytes(res.Size)
	}

	xmlText, err := ae3.Decrypt(data)
	if err != nil {
		return res, fmt.Errorf("decrypt %s: %w", path, err)
	}
	res.XML = xmlText

	raw, err := ae3.ParseSectors(xmlText)
	if err != nil {
		return res, fmt.Errorf("parse %s: %w", path, err)
	}
	dataLog := ae3.DataLogSectors(raw)
	res.Sectors = len(dataLog)
	if metrics != nil {
		for _, sec := range dataLog {
			metrics.AddSector(int64(len(sec.Raw)))
		}
	}

	sessions := flashlog.BuildSessions(dataLog)
	signal.Convert(sessions)
	if metrics != nil {
		for _, s := range sessions {
			metrics.AddSession(len(s.Records))
		}
	}
	res.Sessions = sessions
	return res, nil
}
