package report

// HighlightColor maps a match percentage to its fixed highlight color.
// Unmatched text carries no color at all; callers only ask for matched
// segments.
func HighlightColor(percentage int) string {
	switch {
	case percentage >= 75:
		return "#FFD6D6"
	case percentage >= 50:
		return "#FFE8CC"
	case percentage >= 25:
		return "#FFF4CC"
	default:
		return "#D6FFD6"
	}
}

// Interpretation returns the review guidance shown next to an overall score.
func Interpretation(score float64) string {
	switch {
	case score >= 75:
		return "High similarity detected. Manual review strongly recommended."
	case score >= 50:
		return "Moderate similarity detected. May require review."
	case score >= 25:
		return "Low similarity detected. Likely coincidental."
	default:
		return "Minimal similarity detected. Documents appear distinct."
	}
}

// Truncate shortens a segment for collapsed display. This is presentation
// only and never feeds back into matching.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
