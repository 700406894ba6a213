package report

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/campuskit/frontdesk/internal/models"
)

func TestExportFilename(t *testing.T) {
	pattern := regexp.MustCompile(`^similarity_report_[0-9a-f]{8}\.pdf$`)

	name := ExportFilename("Essay A", "Essay B")
	if !pattern.MatchString(name) {
		t.Fatalf("filename %q does not match expected pattern", name)
	}

	// The hash covers the current time, so repeated exports of the same pair
	// do not collide.
	if other := ExportFilename("Essay A", "Essay B"); other == name {
		t.Logf("two filenames within the same instant matched; acceptable but unusual: %q", name)
	}
}

func TestWrapText(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "short text",
			width: 20,
			want:  []string{"short text"},
		},
		{
			name:  "wraps at word boundary",
			text:  "alpha beta gamma",
			width: 10,
			want:  []string{"alpha beta", "gamma"},
		},
		{
			name:  "hard splits overlong word",
			text:  "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapText(tc.text, tc.width)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("wrapText(%q, %d) = %v, want %v", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#FFD6D6")
	if r != 255 || g != 214 || b != 214 {
		t.Fatalf("hexToRGB = %d, %d, %d", r, g, b)
	}
	r, g, b = hexToRGB("bogus")
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("invalid input should fall back to white, got %d, %d, %d", r, g, b)
	}
}

func TestExportWritesPDF(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir, 10)

	rep := &Report{
		State:          models.ReportStateRendered,
		Score:          64.2,
		Interpretation: Interpretation(64.2),
		Left: []models.TextSegment{
			{Text: "The results were conclusive.", IsMatch: true, Percentage: 100},
			{Text: "Cats purr loudly."},
		},
		Right: []models.TextSegment{
			{Text: "The results were conclusive.", IsMatch: true, Percentage: 100},
			{Text: "Dogs bark at night."},
		},
	}

	path, err := exporter.Export(rep, "Essay A", "Essay B")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("export landed in %q, want %q", filepath.Dir(path), dir)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if len(content) < 4 || string(content[:4]) != "%PDF" {
		t.Fatal("exported file is not a PDF")
	}
}

func TestFlattenSegmentsCarriesMatchMetadata(t *testing.T) {
	lines := flattenSegments([]models.TextSegment{
		{Text: "matched span that is long enough to wrap over the fixed width once", IsMatch: true, Percentage: 80},
		{Text: "plain"},
	})

	if len(lines) < 3 {
		t.Fatalf("got %d lines, want at least 3", len(lines))
	}
	for i, line := range lines[:len(lines)-1] {
		if !line.isMatch || line.percentage != 80 {
			t.Fatalf("line %d lost its match metadata: %+v", i, line)
		}
	}
	last := lines[len(lines)-1]
	if last.isMatch || last.text != "plain" {
		t.Fatalf("last line = %+v, want unmatched plain text", last)
	}
}
