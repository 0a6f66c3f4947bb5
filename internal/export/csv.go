package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ingramleedy/AustroView/internal/flashlog"
	"github.com/ingramleedy/AustroView/internal/signal"
)

const timestampLayout = "2006-01-02 15:04:05"

// WriteSessionCSVs writes one CSV per session into outDir, named
// <stem>_session<NN>_<start>.csv, and returns the written paths.
func WriteSessionCSVs(stem string, sessions []*flashlog.Session, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for i, session := range sessions {
		if len(session.Records) == 0 {
			continue
		}
		name := fmt.Sprintf("%s_session%02d", stem, i)
		if !session.LeadInTime.IsZero() {
			name += "_" + session.LeadInTime.Format("20060102_150405")
		}
		path := filepath.Join(outDir, name+".csv")
		if err := writeSessionCSV(session, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeSessionCSV(session *flashlog.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	header := make([]string, 0, len(session.Channels)+1)
	header = append(header, "Timestamp")
	for _, code := range session.Channels {
		header = append(header, signal.Header(code))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(session.Channels)+1)
	for r, rec := range session.Records {
		row[0] = session.Timestamps[r].Format(timestampLayout)
		for slot, code := range session.Channels {
			row[slot+1] = strconv.FormatFloat(rec[slot], 'f', signal.Decimals(code), 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
