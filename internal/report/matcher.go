// Package report resolves and renders side-by-side similarity reports. The
// backend's generated report is the authoritative source; the local matcher
// here is a last-resort approximation used only when no structured comparison
// can be fetched.
package report

import (
	"math"
	"strings"
	"unicode"

	"github.com/campuskit/frontdesk/internal/models"
)

// DefaultMatchThreshold is the pair ratio above which two units count as a
// match.
const DefaultMatchThreshold = 0.7

// NoSimilarityPlaceholder is rendered in both panes when neither the matcher
// nor the aggregate score found anything.
const NoSimilarityPlaceholder = "No similarity detected between the documents."

// splitUnits breaks text into sentence-like units on terminal punctuation
// followed by whitespace. The punctuation stays with its unit.
func splitUnits(text string) []string {
	var units []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if isTerminal(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if unit := strings.TrimSpace(current.String()); unit != "" {
				units = append(units, unit)
			}
			current.Reset()
		}
	}
	if unit := strings.TrimSpace(current.String()); unit != "" {
		units = append(units, unit)
	}
	return units
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// positionalRatio counts equal characters at aligned indices, divided by the
// longer unit's length. This is deliberately not edit distance: it is order-
// and offset-sensitive and under-counts shifted matches. Kept as-is for
// output stability; it does not model the backend's real scoring.
func positionalRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	shorter, longer := ra, rb
	if len(ra) > len(rb) {
		shorter, longer = rb, ra
	}
	if len(longer) == 0 {
		return 0
	}

	equal := 0
	for i := range shorter {
		if shorter[i] == longer[i] {
			equal++
		}
	}
	return float64(equal) / float64(len(longer))
}

type unitMatch struct {
	index1     int
	index2     int
	percentage int
}

// MatchTexts runs the fallback matcher over two raw texts. Every ordered
// unit pair scoring above threshold is a match; matched units are rendered
// back into each pane in original-position order tagged with their rounded
// percentage. When nothing clears the threshold, a nonzero aggregate score
// yields the full texts as one match pair at that score, and a zero
// aggregate yields the no-similarity placeholder in both panes.
func MatchTexts(text1, text2 string, aggregate, threshold float64) ([]models.TextSegment, []models.TextSegment) {
	units1 := splitUnits(text1)
	units2 := splitUnits(text2)

	var matches []unitMatch
	for i, u1 := range units1 {
		for j, u2 := range units2 {
			if ratio := positionalRatio(u1, u2); ratio > threshold {
				matches = append(matches, unitMatch{
					index1:     i,
					index2:     j,
					percentage: int(math.Round(ratio * 100)),
				})
			}
		}
	}

	if len(matches) == 0 {
		if aggregate > 0 {
			pct := int(math.Round(aggregate))
			return []models.TextSegment{{Text: text1, IsMatch: true, Percentage: pct}},
				[]models.TextSegment{{Text: text2, IsMatch: true, Percentage: pct}}
		}
		placeholder := []models.TextSegment{{Text: NoSimilarityPlaceholder}}
		return placeholder, placeholder
	}

	// A unit can pair with several counterparts; keep its highest percentage.
	best1 := make(map[int]int)
	best2 := make(map[int]int)
	for _, m := range matches {
		if m.percentage > best1[m.index1] {
			best1[m.index1] = m.percentage
		}
		if m.percentage > best2[m.index2] {
			best2[m.index2] = m.percentage
		}
	}

	return renderPane(units1, best1), renderPane(units2, best2)
}

// renderPane emits one segment per unit in document order, tagging matched
// units with their best percentage.
func renderPane(units []string, best map[int]int) []models.TextSegment {
	segments := make([]models.TextSegment, 0, len(units))
	for i, unit := range units {
		pct, matched := best[i]
		segments = append(segments, models.TextSegment{
			Text:       unit,
			IsMatch:    matched,
			Percentage: pct,
		})
	}
	return segments
}
