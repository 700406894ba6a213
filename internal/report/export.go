package report

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/campuskit/frontdesk/internal/models"
)

const (
	columnWidth = 92.0
	lineHeight  = 5.0
	wrapWidth   = 52
)

// Exporter writes a resolved report to a paginated PDF. Content is flattened
// to fixed-height lines and sliced by line offset alone, so a page boundary
// can fall mid-sentence; pagination knows nothing about semantic boundaries.
type Exporter struct {
	dir       string
	pageLines int
}

func NewExporter(dir string, pageLines int) *Exporter {
	if pageLines <= 0 {
		pageLines = 48
	}
	return &Exporter{dir: dir, pageLines: pageLines}
}

// ExportFilename derives a unique report filename from the compared titles.
func ExportFilename(title1, title2 string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%s", title1, title2, time.Now())))
	return fmt.Sprintf("similarity_report_%s.pdf", hex.EncodeToString(sum[:])[:8])
}

// paneLine is one rendered line of a report column.
type paneLine struct {
	text       string
	isMatch    bool
	percentage int
}

// Export writes the report and returns the path of the created file.
func (e *Exporter) Export(rep *Report, title1, title2 string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	left := flattenSegments(rep.Left)
	right := flattenSegments(rep.Right)
	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Assignment Similarity Detection Report", false)

	pdf.AddPage()
	writeHeader(pdf, rep, title1, title2)

	for offset := 0; offset < rows; offset += e.pageLines {
		if offset > 0 {
			pdf.AddPage()
		}
		end := offset + e.pageLines
		if end > rows {
			end = rows
		}
		for i := offset; i < end; i++ {
			writeRow(pdf, lineAt(left, i), lineAt(right, i))
		}
	}
	if rows == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, lineHeight, "No content to display.", "", 1, "L", false, 0, "")
	}

	path := filepath.Join(e.dir, ExportFilename(title1, title2))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write PDF: %w", err)
	}
	return path, nil
}

func writeHeader(pdf *fpdf.Fpdf, rep *Report, title1, title2 string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Assignment Similarity Detection Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Overall Similarity: %.1f%%", rep.Score), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, rep.Interpretation, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(columnWidth, 6, title1, "1", 0, "C", false, 0, "")
	pdf.CellFormat(columnWidth, 6, title2, "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
}

func writeRow(pdf *fpdf.Fpdf, left, right *paneLine) {
	writeCell(pdf, left)
	writeCell(pdf, right)
	pdf.Ln(lineHeight)
}

func writeCell(pdf *fpdf.Fpdf, line *paneLine) {
	if line == nil {
		pdf.CellFormat(columnWidth, lineHeight, "", "", 0, "L", false, 0, "")
		return
	}
	fill := false
	if line.isMatch {
		r, g, b := hexToRGB(HighlightColor(line.percentage))
		pdf.SetFillColor(r, g, b)
		fill = true
	}
	pdf.CellFormat(columnWidth, lineHeight, line.text, "", 0, "L", fill, 0, "")
}

func lineAt(lines []paneLine, i int) *paneLine {
	if i >= len(lines) {
		return nil
	}
	return &lines[i]
}

// flattenSegments wraps each segment into fixed-width lines carrying the
// segment's match metadata.
func flattenSegments(segments []models.TextSegment) []paneLine {
	var lines []paneLine
	for _, seg := range segments {
		for _, text := range wrapText(seg.Text, wrapWidth) {
			lines = append(lines, paneLine{text: text, isMatch: seg.IsMatch, percentage: seg.Percentage})
		}
	}
	return lines
}

// wrapText wraps at word boundaries, hard-splitting words longer than the
// width.
func wrapText(text string, width int) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > width {
			flush()
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		word = string(runes)
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()

	if len(lines) == 0 && text != "" {
		lines = append(lines, text)
	}
	return lines
}

func hexToRGB(hexColor string) (int, int, int) {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) != 6 {
		return 255, 255, 255
	}
	var r, g, b int
	fmt.Sscanf(hexColor, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
