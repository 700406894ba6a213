// Package grading implements the lecturer-facing course and submission views.
package grading

import (
	"context"
	"fmt"
	"math"

	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/models"
)

type Service struct {
	backend *backend.Client
}

func NewService(backendClient *backend.Client) *Service {
	return &Service{backend: backendClient}
}

// Courses lists the courses taught by a lecturer.
func (s *Service) Courses(ctx context.Context, lecturerID int64) ([]models.Course, error) {
	courses, err := s.backend.LecturerCourses(ctx, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lecturer courses: %w", err)
	}
	return courses, nil
}

// AssignmentDetail fetches one assignment's metadata.
func (s *Service) AssignmentDetail(ctx context.Context, assignmentID int64) (*models.Assignment, error) {
	detail, err := s.backend.AssignmentDetail(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	return detail, nil
}

// Submissions lists submissions for an assignment. Rows without a similarity
// score are returned as-is; the field is optional by contract.
func (s *Service) Submissions(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	submissions, err := s.backend.AssignmentSubmissions(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	return submissions, nil
}

// ValidateGrade applies the client-side grade check: a grade is accepted iff
// it is a number in [0, 100].
func ValidateGrade(grade float64) error {
	if math.IsNaN(grade) || grade < 0 || grade > 100 {
		return models.NewValidationError("Grade must be a number between 0 and 100")
	}
	return nil
}

// Grade validates and posts a grade. On success the caller marks the
// in-memory row "graded" without refetching the list.
func (s *Service) Grade(ctx context.Context, submissionID int64, grade float64, feedback string) error {
	if err := ValidateGrade(grade); err != nil {
		return err
	}
	if err := s.backend.GradeSubmission(ctx, submissionID, grade, feedback); err != nil {
		return fmt.Errorf("failed to grade submission: %w", err)
	}
	return nil
}
