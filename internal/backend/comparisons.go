package backend

import (
	"context"
	"io"

	"github.com/campuskit/frontdesk/internal/models"
)

type uploadResponse struct {
	AssignmentID int64 `json:"assignment_id"`
}

// UploadAssignment uploads a document to the comparison pool and returns the
// assignment id the backend assigned to it.
func (c *Client) UploadAssignment(ctx context.Context, title, fileName string, file io.Reader) (int64, error) {
	fields := map[string]string{"title": title}

	var resp uploadResponse
	if err := c.doMultipart(ctx, "/api/upload/", fields, "file", fileName, file, &resp); err != nil {
		return 0, err
	}
	return resp.AssignmentID, nil
}

type listResponse struct {
	Status      string              `json:"status"`
	Assignments []models.Assignment `json:"assignments"`
}

// ListAssignments lists previously uploaded assignments available for
// comparison.
func (c *Client) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	var resp listResponse
	if err := c.doJSON(ctx, "GET", "/api/list/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

type compareResponse struct {
	Status  string                    `json:"status"`
	Results []models.ComparisonResult `json:"results"`
}

// CompareAssignments runs one pairwise comparison over the given ids.
func (c *Client) CompareAssignments(ctx context.Context, assignmentIDs []int64) ([]models.ComparisonResult, error) {
	req := map[string][]int64{"assignment_ids": assignmentIDs}

	var resp compareResponse
	if err := c.doJSON(ctx, "POST", "/api/compare/", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

type extractResponse struct {
	Status        string               `json:"status"`
	Text1Segments []models.TextSegment `json:"text1_segments"`
	Text2Segments []models.TextSegment `json:"text2_segments"`
}

// ExtractReportContent asks the backend to pull highlighted text segments out
// of an already generated report. This is the authoritative source for
// side-by-side report content.
func (c *Client) ExtractReportContent(ctx context.Context, reportURL string) ([]models.TextSegment, []models.TextSegment, error) {
	req := map[string]string{"report_url": reportURL}

	var resp extractResponse
	if err := c.doJSON(ctx, "POST", "/api/extract-report-content/", req, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Text1Segments, resp.Text2Segments, nil
}

type detailedComparisonResponse struct {
	Status string `json:"status"`
	Text1  string `json:"text1"`
	Text2  string `json:"text2"`
}

// DetailedComparison fetches the raw texts of two submissions in one call.
func (c *Client) DetailedComparison(ctx context.Context, submissionID1, submissionID2 int64) (string, string, error) {
	req := map[string]int64{
		"submission_id1": submissionID1,
		"submission_id2": submissionID2,
	}

	var resp detailedComparisonResponse
	if err := c.doJSON(ctx, "POST", "/api/detailed-comparison/", req, &resp); err != nil {
		return "", "", err
	}
	return resp.Text1, resp.Text2, nil
}

type submissionContentResponse struct {
	Status  string `json:"status"`
	Content string `json:"content"`
}

// SubmissionContent fetches the raw text of one submission.
func (c *Client) SubmissionContent(ctx context.Context, submissionID int64) (string, error) {
	req := map[string]int64{"submission_id": submissionID}

	var resp submissionContentResponse
	if err := c.doJSON(ctx, "POST", "/api/submission-content/", req, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}
