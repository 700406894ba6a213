package models

// ComparisonResult represents one pairwise comparison row returned by the
// backend. The backend is inconsistent about which similarity field it fills,
// so all three are kept optional and resolved through ResolvedScore.
type ComparisonResult struct {
	Assignment1ID    int64         `json:"assignment1_id"`
	Assignment2ID    int64         `json:"assignment2_id"`
	Assignment1Title string        `json:"assignment1_title,omitempty"`
	Assignment2Title string        `json:"assignment2_title,omitempty"`
	WebScore         *float64      `json:"web_similarity_score,omitempty"`
	SimilarityScore  *float64      `json:"similarity_score,omitempty"`
	Similarity       *float64      `json:"similarity,omitempty"`
	ReportURL        string        `json:"report_url,omitempty"`
	DownloadURL      string        `json:"download_url,omitempty"`
	Text1Segments    []TextSegment `json:"text1_segments,omitempty"`
	Text2Segments    []TextSegment `json:"text2_segments,omitempty"`
}

// ResolvedScore picks the similarity value to display. Precedence is
// first-match-wins: web_similarity_score, then similarity_score, then
// similarity, defaulting to 0 when none is present.
func (r *ComparisonResult) ResolvedScore() float64 {
	if r.WebScore != nil {
		return *r.WebScore
	}
	if r.SimilarityScore != nil {
		return *r.SimilarityScore
	}
	if r.Similarity != nil {
		return *r.Similarity
	}
	return 0
}

// WebCheckResult is the per-submission outcome of a batch web-similarity
// check. Failed items carry an error message instead of a score.
type WebCheckResult struct {
	SubmissionID int64    `json:"submission_id"`
	Score        *float64 `json:"score,omitempty"`
	Badge        string   `json:"badge,omitempty"`
	ReportURL    string   `json:"report_url,omitempty"`
	Error        string   `json:"error,omitempty"`
}
