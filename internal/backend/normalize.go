package backend

import (
	"regexp"
	"strconv"
)

// webSimilarityResponse is the raw wire shape of a web-similarity check.
// Different backend versions fill different fields: a direct score, an
// alternate field name, or only a free-text summary embedding the percentage.
type webSimilarityResponse struct {
	Status          string   `json:"status"`
	WebScore        *float64 `json:"web_similarity_score"`
	SimilarityScore *float64 `json:"similarity_score"`
	AnalysisSummary string   `json:"analysis_summary"`
	ReportURL       string   `json:"report_url"`
}

var summaryScorePattern = regexp.MustCompile(`Calculated similarity:\s*([0-9]+(?:\.[0-9]+)?)%`)

// resolveScore extracts the similarity score from whichever field the
// backend filled, in fixed precedence order. Returns false when no score
// can be determined.
func (r *webSimilarityResponse) resolveScore() (float64, bool) {
	if r.WebScore != nil {
		return *r.WebScore, true
	}
	if r.SimilarityScore != nil {
		return *r.SimilarityScore, true
	}
	if m := summaryScorePattern.FindStringSubmatch(r.AnalysisSummary); m != nil {
		if score, err := strconv.ParseFloat(m[1], 64); err == nil {
			return score, true
		}
	}
	return 0, false
}
