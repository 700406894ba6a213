package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/models"
)

// Report is a fully resolved side-by-side report ready for display/export.
type Report struct {
	State          models.ReportState   `json:"state"`
	Score          float64              `json:"score"`
	ReportURL      string               `json:"report_url,omitempty"`
	Interpretation string               `json:"interpretation"`
	Left           []models.TextSegment `json:"text1_segments"`
	Right          []models.TextSegment `json:"text2_segments"`
	Source         string               `json:"source"`
	Message        string               `json:"message,omitempty"`
}

// Input describes what is known when a report view is opened: either a full
// comparison result payload, or only a report URL that must be resolved via a
// fetch.
type Input struct {
	Result        *models.ComparisonResult
	ReportURL     string
	SubmissionID1 int64
	SubmissionID2 int64
	Score         float64
}

func (in *Input) aggregate() float64 {
	if in.Result != nil {
		return in.Result.ResolvedScore()
	}
	return in.Score
}

func (in *Input) reportURL() string {
	if in.Result != nil && in.Result.ReportURL != "" {
		return in.Result.ReportURL
	}
	return in.ReportURL
}

func (in *Input) submissionIDs() (int64, int64) {
	if in.Result != nil && in.Result.Assignment1ID != 0 && in.Result.Assignment2ID != 0 {
		return in.Result.Assignment1ID, in.Result.Assignment2ID
	}
	return in.SubmissionID1, in.SubmissionID2
}

// Resolver turns an Input into a rendered Report by trying an ordered list of
// strategies, each attempted only when the previous one is unavailable or
// fails. Only the identifier-only entry path can surface an error; every
// payload-based resolution bottoms out at the placeholder, which cannot fail.
type Resolver struct {
	backend   *backend.Client
	threshold float64
}

func NewResolver(backendClient *backend.Client, threshold float64) *Resolver {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultMatchThreshold
	}
	return &Resolver{backend: backendClient, threshold: threshold}
}

// strategy fills rep from in; returning false hands over to the next one.
type strategy func(ctx context.Context, in *Input, rep *Report) bool

// Resolve runs the fallback chain for an opened report view.
func (r *Resolver) Resolve(ctx context.Context, in *Input) *Report {
	rep := &Report{
		State:     models.ReportStateLoading,
		Score:     in.aggregate(),
		ReportURL: in.reportURL(),
	}
	rep.Interpretation = Interpretation(rep.Score)

	id1, id2 := in.submissionIDs()
	identifierOnly := in.Result == nil && rep.ReportURL != "" && (id1 == 0 || id2 == 0)
	if identifierOnly {
		// Nothing to fall back to: a failed initial fetch is the one case
		// that surfaces as a visible error.
		if ok := r.fromReport(ctx, in, rep); !ok {
			rep.State = models.ReportStateError
			rep.Message = "Failed to load the similarity report"
			return rep
		}
		rep.State = models.ReportStateRendered
		return rep
	}

	strategies := []strategy{
		r.fromPayload,
		r.fromReport,
		r.fromDetailedComparison,
		r.fromSubmissionTexts,
		r.placeholder,
	}
	for _, resolve := range strategies {
		if resolve(ctx, in, rep) {
			rep.State = models.ReportStateRendered
			return rep
		}
	}

	// Unreachable: placeholder always succeeds.
	rep.State = models.ReportStateRendered
	return rep
}

// fromPayload uses segments already present in the comparison result.
func (r *Resolver) fromPayload(_ context.Context, in *Input, rep *Report) bool {
	if in.Result == nil || len(in.Result.Text1Segments) == 0 || len(in.Result.Text2Segments) == 0 {
		return false
	}
	rep.Left = in.Result.Text1Segments
	rep.Right = in.Result.Text2Segments
	rep.Source = "payload"
	return true
}

// fromReport extracts segments from the generated report, the authoritative
// path.
func (r *Resolver) fromReport(ctx context.Context, in *Input, rep *Report) bool {
	url := in.reportURL()
	if url == "" {
		return false
	}
	left, right, err := r.backend.ExtractReportContent(ctx, url)
	if err != nil {
		log.Debug().Err(err).Str("reportURL", url).Msg("Report content extraction failed, falling through")
		return false
	}
	if len(left) == 0 && len(right) == 0 {
		return false
	}
	rep.Left = left
	rep.Right = right
	rep.Source = "report"
	return true
}

// fromDetailedComparison fetches both texts in one call and runs the local
// matcher over them.
func (r *Resolver) fromDetailedComparison(ctx context.Context, in *Input, rep *Report) bool {
	id1, id2 := in.submissionIDs()
	if id1 == 0 || id2 == 0 {
		return false
	}
	text1, text2, err := r.backend.DetailedComparison(ctx, id1, id2)
	if err != nil {
		log.Debug().Err(err).Msg("Detailed comparison failed, falling through")
		return false
	}
	if text1 == "" || text2 == "" {
		return false
	}
	rep.Left, rep.Right = MatchTexts(text1, text2, rep.Score, r.threshold)
	rep.Source = "fallback"
	return true
}

// fromSubmissionTexts fetches each submission's raw text independently and
// runs the local matcher; last resort before the placeholder.
func (r *Resolver) fromSubmissionTexts(ctx context.Context, in *Input, rep *Report) bool {
	id1, id2 := in.submissionIDs()
	if id1 == 0 || id2 == 0 {
		return false
	}
	text1, err := r.backend.SubmissionContent(ctx, id1)
	if err != nil {
		log.Debug().Err(err).Int64("submissionID", id1).Msg("Submission content fetch failed, falling through")
		return false
	}
	text2, err := r.backend.SubmissionContent(ctx, id2)
	if err != nil {
		log.Debug().Err(err).Int64("submissionID", id2).Msg("Submission content fetch failed, falling through")
		return false
	}
	if text1 == "" || text2 == "" {
		return false
	}
	rep.Left, rep.Right = MatchTexts(text1, text2, rep.Score, r.threshold)
	rep.Source = "fallback"
	return true
}

// placeholder synthesizes a single segment pair carrying only the aggregate
// percentage. It cannot fail.
func (r *Resolver) placeholder(_ context.Context, in *Input, rep *Report) bool {
	text := NoSimilarityPlaceholder
	matched := false
	pct := 0
	if rep.Score > 0 {
		text = fmt.Sprintf(
			"The documents have an overall similarity score of %.1f%%, but no detailed comparison could be retrieved.",
			rep.Score,
		)
		matched = true
		pct = int(rep.Score + 0.5)
	}
	segment := models.TextSegment{Text: text, IsMatch: matched, Percentage: pct}
	rep.Left = []models.TextSegment{segment}
	rep.Right = []models.TextSegment{segment}
	rep.Source = "placeholder"
	return true
}
