package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ingramleedy/AustroView/internal/flashlog"
)

// Disclaimer accompanies every generated report.
const Disclaimer = "This tool is an independent, community-developed project. It is NOT " +
	"endorsed, approved, or supported by Diamond Aircraft, Austro Engine, or any " +
	"affiliated entity. The data produced is for informational and educational " +
	"purposes only. It must not be used as the sole basis for any maintenance, " +
	"airworthiness, or flight safety decisions."

// ReportInput bundles everything the PDF report renders for one dump file.
type ReportInput struct {
	Filename string
	SHA256   string
	Sessions []*flashlog.Session
}

// SaveReportPDF renders the engine log report into a PDF document.
func SaveReportPDF(in ReportInput, out string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Engine Log Report", false)
	pdf.SetAuthor("austroctl", false)
	pdf.SetCreator("austroctl", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	addPDFTitle(pdf, "Engine Log Report")
	addFileSection(pdf, in)
	addSessionTable(pdf, in.Sessions)
	addDigestSection(pdf, in.SHA256)
	addDisclaimer(pdf)

	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.OutputFileAndClose(out)
}

func addPDFTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func addFileSection(pdf *gofpdf.Fpdf, in ReportInput) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	totalSeconds := 0
	var latest time.Time
	for _, s := range in.Sessions {
		totalSeconds += len(s.Records)
		if !s.LeadInTime.IsZero() && s.LeadInTime.After(latest) {
			latest = s.LeadInTime
		}
	}
	latestStr := "unknown"
	if !latest.IsZero() {
		latestStr = latest.Format("2006-01-02")
	}

	pdf.SetFont("Helvetica", "", 11)
	items := []struct {
		label string
		value string
	}{
		{label: "File", value: in.Filename},
		{label: "Sessions", value: strconv.Itoa(len(in.Sessions))},
		{label: "Total Engine Time", value: FormatDuration(time.Duration(totalSeconds) * time.Second)},
		{label: "Latest Session", value: latestStr},
	}
	for _, item := range items {
		pdf.CellFormat(50, 6, item.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, item.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func addSessionTable(pdf *gofpdf.Fpdf, sessions []*flashlog.Session) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Sessions")
	pdf.Ln(9)

	if len(sessions) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, "No recording sessions found.", "", "L", false)
		return
	}

	headers := []string{"#", "Start", "End", "Duration", "Records", "Max RPM", "Max Coolant"}
	widths := []float64{10, 36, 36, 22, 22, 22, 26}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	lineHeight := 5.0
	for i, session := range sessions {
		st := Stats(session)
		start := "unknown"
		if !st.Start.IsZero() {
			start = st.Start.Format("2006-01-02 15:04")
		}
		end := "in progress"
		if !st.End.IsZero() {
			end = st.End.Format("2006-01-02 15:04")
		}
		coolant := "N/A"
		if st.HasCoolant {
			coolant = fmt.Sprintf("%.1f C", st.MaxCoolant)
		}
		values := []string{
			strconv.Itoa(i + 1),
			start,
			end,
			FormatDuration(st.Duration),
			strconv.Itoa(st.Records),
			fmt.Sprintf("%.0f", st.MaxProp),
			coolant,
		}
		renderTableRow(pdf, widths, values, lineHeight)
	}
	pdf.Ln(4)
}

func addDigestSection(pdf *gofpdf.Fpdf, sha256 string) {
	if strings.TrimSpace(sha256) == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Source Dump")
	pdf.Ln(9)
	pdf.SetFont("Courier", "", 8)
	pdf.MultiCell(0, 4, "SHA-256: "+sha256, "", "L", false)
	png, err := DigestToQR(sha256, 256)
	if err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("digest-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("digest-qr", pdf.GetX(), pdf.GetY()+2, 30, 30, false, opts, 0, "")
	pdf.Ln(36)
}

func addDisclaimer(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 7)
	pdf.MultiCell(0, 3.5, Disclaimer, "", "L", false)
}

func renderTableRow(pdf *gofpdf.Fpdf, widths []float64, values []string, lineHeight float64) {
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	maxLines := 1
	splitCols := make([][]string, len(values))
	for i, val := range values {
		text := strings.TrimSpace(val)
		if text == "" {
			text = "-"
		}
		lines := pdf.SplitText(text, widths[i]-2)
		if len(lines) == 0 {
			lines = []string{""}
		}
		splitCols[i] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := float64(maxLines) * lineHeight
	x := xStart
	for i, lines := range splitCols {
		pdf.SetXY(x, yStart)
		cellText := strings.Join(lines, "\n")
		pdf.MultiCell(widths[i], lineHeight, cellText, "1", "L", false)
		x += widths[i]
	}
	pdf.SetXY(xStart, yStart+rowHeight)
}
