// Package submission implements the student-facing submission flow: submit a
// file, run a one-shot web-similarity check, remove and resubmit.
package submission

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/models"
	"github.com/campuskit/frontdesk/internal/session"
)

type Service struct {
	backend *backend.Client
	store   session.Store
}

func NewService(backendClient *backend.Client, store session.Store) *Service {
	return &Service{
		backend: backendClient,
		store:   store,
	}
}

// SubmitResult is returned to the view after a successful submit.
type SubmitResult struct {
	Message string                 `json:"message"`
	Data    *models.SubmissionData `json:"data"`
}

// Submit validates the input, posts the file to the backend and persists the
// returned record locally. Validation failures never reach the network.
func (s *Service) Submit(ctx context.Context, assignmentID int64, name, studentID, fileName string, file io.Reader) (*SubmitResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Please enter your name before submitting")
	}
	if file == nil || fileName == "" {
		return nil, models.NewValidationError("Please select a file to submit")
	}

	data, err := s.backend.SubmitAssignment(ctx, assignmentID, name, studentID, fileName, file)
	if err != nil {
		return nil, fmt.Errorf("failed to submit assignment: %w", err)
	}

	blob := &models.SubmissionData{
		SubmissionID: data.SubmissionID,
		StudentName:  data.StudentName,
		FileName:     data.FileName,
		SubmittedAt:  data.SubmittedAt,
	}
	if err := s.store.SetData(ctx, assignmentID, blob); err != nil {
		log.Warn().Err(err).Int64("assignmentID", assignmentID).Msg("Failed to persist submission data")
	}
	if err := s.store.SetStatus(ctx, assignmentID, models.SubmissionStatusSubmitted); err != nil {
		log.Warn().Err(err).Int64("assignmentID", assignmentID).Msg("Failed to persist submission status")
	}

	return &SubmitResult{
		Message: fmt.Sprintf("Assignment %d has been successfully submitted!", assignmentID),
		Data:    blob,
	}, nil
}

// Current returns the locally persisted submission state for an assignment,
// or (nil, nil) when nothing has been submitted.
func (s *Service) Current(ctx context.Context, assignmentID int64) (*models.SubmissionData, error) {
	status, err := s.store.Status(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if status != models.SubmissionStatusSubmitted {
		return nil, nil
	}
	return s.store.Data(ctx, assignmentID)
}

// CheckResult is the outcome of a web-similarity check.
type CheckResult struct {
	Score     float64 `json:"score"`
	Badge     string  `json:"badge"`
	ReportURL string  `json:"report_url,omitempty"`
	Cached    bool    `json:"cached"`
}

// CheckWebSimilarity runs the one-shot similarity check for the submitted
// assignment. When a score is already cached this is purely a display action:
// the cached value is returned and no backend call is made.
func (s *Service) CheckWebSimilarity(ctx context.Context, assignmentID int64) (*CheckResult, error) {
	data, err := s.store.Data(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, models.NewValidationError("No submission found for this assignment")
	}

	if data.SimilarityScore != nil {
		return &CheckResult{
			Score:     *data.SimilarityScore,
			Badge:     models.ScoreBadge(*data.SimilarityScore),
			ReportURL: data.ReportURL,
			Cached:    true,
		}, nil
	}

	result, err := s.backend.WebSimilarity(ctx, data.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check web similarity: %w", err)
	}
	if result.Score == nil {
		return nil, fmt.Errorf("web similarity response carried no score")
	}

	data.SimilarityScore = result.Score
	data.ReportURL = result.ReportURL
	data.ReportFilename = reportFilename(result.ReportURL)
	if err := s.store.SetData(ctx, assignmentID, data); err != nil {
		log.Warn().Err(err).Int64("assignmentID", assignmentID).Msg("Failed to cache similarity score")
	}

	return &CheckResult{
		Score:     *result.Score,
		Badge:     models.ScoreBadge(*result.Score),
		ReportURL: result.ReportURL,
	}, nil
}

// Remove deletes the submission and its report on the backend, best effort,
// then unconditionally clears local state. Local state wins on delete: a
// failed remote delete still resets the view to "not submitted".
func (s *Service) Remove(ctx context.Context, assignmentID int64) error {
	data, err := s.store.Data(ctx, assignmentID)
	if err != nil {
		log.Warn().Err(err).Int64("assignmentID", assignmentID).Msg("Failed to read submission data before removal")
	}

	if data != nil {
		if err := s.backend.DeleteSubmission(ctx, data.SubmissionID); err != nil {
			log.Warn().Err(err).Int64("submissionID", data.SubmissionID).Msg("Backend submission delete failed, clearing local state anyway")
		}
		if data.ReportFilename != "" {
			if err := s.backend.DeleteReport(ctx, data.ReportFilename); err != nil {
				log.Warn().Err(err).Str("report", data.ReportFilename).Msg("Backend report delete failed, clearing local state anyway")
			}
		}
	}

	return s.store.Clear(ctx, assignmentID)
}

// reportFilename strips the path from a report URL so the delete-report
// endpoint can be addressed by bare filename.
func reportFilename(reportURL string) string {
	if reportURL == "" {
		return ""
	}
	if idx := strings.LastIndex(reportURL, "/"); idx >= 0 {
		return reportURL[idx+1:]
	}
	return reportURL
}
