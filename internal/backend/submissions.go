package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/campuskit/frontdesk/internal/models"
)

// SubmitData is the payload returned by a successful submit.
type SubmitData struct {
	SubmissionID int64  `json:"submission_id"`
	StudentName  string `json:"student_name"`
	FileName     string `json:"file_name"`
	SubmittedAt  string `json:"submitted_at"`
}

type submitResponse struct {
	Status string     `json:"status"`
	Data   SubmitData `json:"data"`
}

// SubmitAssignment uploads a student's file for the given assignment.
// StudentID is optional and omitted from the form when empty.
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID int64, name, studentID, fileName string, file io.Reader) (*SubmitData, error) {
	fields := map[string]string{
		"name":          name,
		"assignment_id": fmt.Sprintf("%d", assignmentID),
	}
	if studentID != "" {
		fields["student_id"] = studentID
	}

	var resp submitResponse
	path := fmt.Sprintf("/api/submit-assignment/%d", assignmentID)
	if err := c.doMultipart(ctx, path, fields, "file", fileName, file, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// WebSimilarityResult is the normalized outcome of a web-similarity check.
// Score is nil when the backend response carried no recognizable score.
type WebSimilarityResult struct {
	Score     *float64
	ReportURL string
}

// WebSimilarity runs a web-similarity check for one submission. The raw
// response shape varies; the score is normalized here, once, at the boundary.
func (c *Client) WebSimilarity(ctx context.Context, submissionID int64) (*WebSimilarityResult, error) {
	req := map[string]int64{"submission_id": submissionID}

	var resp webSimilarityResponse
	if err := c.doJSON(ctx, "POST", "/api/web-similarity/", req, &resp); err != nil {
		return nil, err
	}

	result := &WebSimilarityResult{ReportURL: resp.ReportURL}
	if score, ok := resp.resolveScore(); ok {
		result.Score = &score
	}
	return result, nil
}

// DeleteSubmission removes a submission on the backend.
func (c *Client) DeleteSubmission(ctx context.Context, submissionID int64) error {
	path := fmt.Sprintf("/api/delete-submission/%d/", submissionID)
	return c.doJSON(ctx, "DELETE", path, nil, nil)
}

// DeleteReport removes a generated web-similarity report by filename.
func (c *Client) DeleteReport(ctx context.Context, filename string) error {
	path := fmt.Sprintf("/api/delete-web-report/%s", filename)
	return c.doJSON(ctx, "DELETE", path, nil, nil)
}

// DownloadReport streams a generated report. The caller must close the
// returned body; the backend's content type is passed through untouched.
func (c *Client) DownloadReport(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	return c.download(ctx, fmt.Sprintf("/api/download-web-report/%s", filename))
}

// GradeSubmission posts a grade and feedback for a submission. Range
// validation happens before this call is made; the backend gets only values
// already known to be in [0, 100].
func (c *Client) GradeSubmission(ctx context.Context, submissionID int64, grade float64, feedback string) error {
	req := map[string]interface{}{
		"grade":    grade,
		"feedback": feedback,
	}
	path := fmt.Sprintf("/api/submission/%d/grade/", submissionID)
	return c.doJSON(ctx, "POST", path, req, nil)
}

// LecturerCourses lists the courses a lecturer teaches.
func (c *Client) LecturerCourses(ctx context.Context, lecturerID int64) ([]models.Course, error) {
	var courses []models.Course
	path := fmt.Sprintf("/api/lecturer-course/%d", lecturerID)
	if err := c.doJSON(ctx, "GET", path, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// AssignmentDetail fetches title/due/course for one assignment.
func (c *Client) AssignmentDetail(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	var detail models.Assignment
	path := fmt.Sprintf("/api/assignment/%d/", assignmentID)
	if err := c.doJSON(ctx, "GET", path, nil, &detail); err != nil {
		return nil, err
	}
	detail.ID = assignmentID
	return &detail, nil
}

// submissionsEnvelope is the wrapped list shape some backend deployments
// return instead of a bare array.
type submissionsEnvelope struct {
	Data struct {
		Submissions []models.Submission `json:"submissions"`
	} `json:"data"`
}

// AssignmentSubmissions lists submissions for an assignment. The backend
// exposes this under two paths and two response shapes; both are tolerated.
func (c *Client) AssignmentSubmissions(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("/api/assignment/%d/submissions/", assignmentID)
	err := c.doJSON(ctx, "GET", path, nil, &raw)
	if err != nil {
		path = fmt.Sprintf("/api/assignment-submissions/%d/", assignmentID)
		if err = c.doJSON(ctx, "GET", path, nil, &raw); err != nil {
			return nil, err
		}
	}

	var list []models.Submission
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var envelope submissionsEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unrecognized submissions response shape: %w", err)
	}
	return envelope.Data.Submissions, nil
}
