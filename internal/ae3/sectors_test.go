package ae3

import (
	"bytes"
	"testing"

	"github.com/ingramleedy/AustroView/internal/flashlog"
)

func TestParseSectors(t *testing.T) {
	xmlText := []byte(`<?xml version="1.0"?>
<AE3>
  <SECTORS>
    <SECTOR>
      <ID>16</ID>
      <B>170</B>
      <B>0</B>
      <B> 255 </B>
    </SECTOR>
    <SECTOR>
      <ID>17</ID>
      <B>1</B>
    </SECTOR>
  </SECTORS>
</AE3>`)
	sectors, err := ParseSectors(xmlText)
	if err != nil {
		t.Fatalf("ParseSectors: %v", err)
	}
	if len(sectors) != 2 {
		t.Fatalf("got %d sectors, want 2", len(sectors))
	}
	if sectors[0].ID != 16 || !bytes.Equal(sectors[0].Raw, []byte{170, 0, 255}) {
		t.Fatalf("sector 0 = %+v", sectors[0])
	}
	if sectors[1].ID != 17 || !bytes.Equal(sectors[1].Raw, []byte{1}) {
		t.Fatalf("sector 1 = %+v", sectors[1])
	}
}

func TestParseSectorsNamespaced(t *testing.T) {
	xmlText := []byte(`<AE3 xmlns="urn:ae300-wizard">
  <SECTOR><ID>20</ID><B>7</B></SECTOR>
</AE3>`)
	sectors, err := ParseSectors(xmlText)
	if err != nil {
		t.Fatalf("ParseSectors: %v", err)
	}
	if len(sectors) != 1 || sectors[0].ID != 20 {
		t.Fatalf("sectors = %+v", sectors)
	}
}

func TestParseSectorsSkipsIncomplete(t *testing.T) {
	xmlText := []byte(`<AE3>
  <SECTOR><B>1</B></SECTOR>
  <SECTOR><ID>18</ID></SECTOR>
  <SECTOR><ID>19</ID><B>2</B></SECTOR>
</AE3>`)
	sectors, err := ParseSectors(xmlText)
	if err != nil {
		t.Fatalf("ParseSectors: %v", err)
	}
	if len(sectors) != 1 || sectors[0].ID != 19 {
		t.Fatalf("sectors = %+v", sectors)
	}
}

func TestParseSectorsBadByte(t *testing.T) {
	if _, err := ParseSectors([]byte(`<AE3><SECTOR><ID>16</ID><B>xx</B></SECTOR></AE3>`)); err == nil {
		t.Fatal("non-numeric byte element must error")
	}
	if _, err := ParseSectors([]byte(`<AE3><SECTOR><ID>`)); err == nil {
		t.Fatal("truncated document must error")
	}
}

func TestDataLogSectors(t *testing.T) {
	in := []flashlog.RawSector{
		{ID: 15}, {ID: 16}, {ID: 100}, {ID: 139}, {ID: 140}, {ID: 200},
	}
	out := DataLogSectors(in)
	want := []int{16, 100, 139}
	if len(out) != len(want) {
		t.Fatalf("got %d sectors, want %d", len(out), len(want))
	}
	for i, sec := range out {
		if sec.ID != want[i] {
			t.Fatalf("out[%d].ID = %d, want %d", i, sec.ID, want[i])
		}
	}
}
