package ae3

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ingramleedy/AustroView/internal/flashlog"
)

// ParseSectors walks the hex-dump XML and returns one RawSector per <SECTOR>
// element carrying an <ID> and at least one <B> byte element. The walk is
// namespace-tolerant and streaming, so multi-megabyte dumps never build a
// DOM.
func ParseSectors(xmlText []byte) ([]flashlog.RawSector, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlText))
	var (
		sectors  []flashlog.RawSector
		inSector bool
		idSet    bool
		id       int
		raw      []byte
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sectors: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "SECTOR":
				inSector = true
				idSet = false
				id = 0
				raw = nil
			case "ID":
				if inSector && !idSet {
					v, err := decodeIntElement(dec, &t)
					if err != nil {
						return nil, fmt.Errorf("sector id: %w", err)
					}
					id = v
					idSet = true
				}
			case "B":
				if inSector {
					v, err := decodeIntElement(dec, &t)
					if err != nil {
						return nil, fmt.Errorf("sector byte: %w", err)
					}
					raw = append(raw, byte(v))
				}
			}
		case xml.EndElement:
			if t.Name.Local == "SECTOR" && inSector {
				if idSet && len(raw) > 0 {
					sectors = append(sectors, flashlog.RawSector{ID: id, Raw: raw})
				}
				inSector = false
			}
		}
	}
	return sectors, nil
}

// DataLogSectors filters to the sector id range holding engine recordings.
func DataLogSectors(sectors []flashlog.RawSector) []flashlog.RawSector {
	out := make([]flashlog.RawSector, 0, len(sectors))
	for _, sec := range sectors {
		if sec.ID < flashlog.MinSectorID || sec.ID >= flashlog.MaxSectorID {
			continue
		}
		out = append(out, sec)
	}
	return out
}

func decodeIntElement(dec *xml.Decoder, start *xml.StartElement) (int, error) {
	var text string
	if err := dec.DecodeElement(&text, start); err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	return v, nil
}
