// Package workspace implements the similarity comparison workspace: a
// growing set of locally added files and toggled existing assignments that
// can be compared pairwise or checked against web content in bulk.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/models"
	"github.com/campuskit/frontdesk/internal/repository"
)

// PendingFile is a file added to the workspace but not yet uploaded.
// Uploading is deferred until a comparison is actually requested.
type PendingFile struct {
	Title    string
	FileName string
	Content  []byte
}

type Service struct {
	backend *backend.Client
	history *repository.HistoryRepository
	pool    *Pool

	mu       sync.Mutex
	pending  []PendingFile
	selected map[int64]bool
}

func NewService(backendClient *backend.Client, history *repository.HistoryRepository, pool *Pool) *Service {
	return &Service{
		backend:  backendClient,
		history:  history,
		pool:     pool,
		selected: make(map[int64]bool),
	}
}

// AddFile stages a local file for the next comparison.
func (s *Service) AddFile(title, fileName string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, PendingFile{Title: title, FileName: fileName, Content: content})
}

// ToggleAssignment flips an existing assignment in or out of the comparison
// set and returns the new selected state.
func (s *Service) ToggleAssignment(assignmentID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[assignmentID] {
		delete(s.selected, assignmentID)
		return false
	}
	s.selected[assignmentID] = true
	return true
}

// SelectionSize reports how many items (staged files plus toggled
// assignments) are currently in the comparison set.
func (s *Service) SelectionSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) + len(s.selected)
}

// Reset clears the staged files and toggled assignments.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.selected = make(map[int64]bool)
}

// ListAssignments lists the backend's existing assignments for selection.
func (s *Service) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	assignments, err := s.backend.ListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

// Compare uploads any staged files, then runs one comparison call over the
// resolved id list. At least two total items must be selected.
func (s *Service) Compare(ctx context.Context) ([]models.ComparisonResult, error) {
	s.mu.Lock()
	pending := make([]PendingFile, len(s.pending))
	copy(pending, s.pending)
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if len(pending)+len(ids) < 2 {
		return nil, models.NewValidationError("Select at least two assignments to compare")
	}

	for _, f := range pending {
		id, err := s.backend.UploadAssignment(ctx, f.Title, f.FileName, bytes.NewReader(f.Content))
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", f.FileName, err)
		}
		ids = append(ids, id)
	}

	results, err := s.backend.CompareAssignments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to compare assignments: %w", err)
	}

	// Staged files are uploaded now; keep their ids out of the toggled set
	// but drop the local copies.
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()

	if s.history != nil {
		if err := s.history.RecordComparison(ctx, results); err != nil {
			log.Warn().Err(err).Msg("Failed to cache comparison results")
		}
	}

	return results, nil
}

// checkJob runs one web-similarity call and stores the outcome in place.
// The request context is captured at submit time; the pool context is only
// consulted for shutdown.
type checkJob struct {
	ctx     context.Context
	backend *backend.Client
	id      int64
	out     *models.WebCheckResult
	wg      *sync.WaitGroup
}

func (j *checkJob) Execute(poolCtx context.Context) error {
	defer j.wg.Done()

	select {
	case <-poolCtx.Done():
		j.out.Error = "check cancelled"
		return nil
	default:
	}

	result, err := j.backend.WebSimilarity(j.ctx, j.id)
	if err != nil {
		j.out.Error = err.Error()
		return nil
	}
	if result.Score == nil {
		j.out.Error = "no similarity score in response"
		return nil
	}

	j.out.Score = result.Score
	j.out.Badge = models.ScoreBadge(*result.Score)
	j.out.ReportURL = result.ReportURL
	return nil
}

// CheckWebSimilarity fires one web-similarity check per selected submission,
// all requests in flight together through the bounded pool, and returns only
// after every request has settled. There is no partial rendering: one slow
// item delays the whole batch.
func (s *Service) CheckWebSimilarity(ctx context.Context, submissionIDs []int64) ([]models.WebCheckResult, error) {
	if len(submissionIDs) == 0 {
		return nil, models.NewValidationError("Select at least one submission to check")
	}

	results := make([]models.WebCheckResult, len(submissionIDs))
	var wg sync.WaitGroup

	for i, id := range submissionIDs {
		results[i].SubmissionID = id
		wg.Add(1)
		job := &checkJob{ctx: ctx, backend: s.backend, id: id, out: &results[i], wg: &wg}
		if err := s.pool.Submit(job); err != nil {
			results[i].Error = err.Error()
			wg.Done()
		}
	}

	wg.Wait()
	return results, nil
}

// FilterByThreshold keeps the rows whose resolved similarity is at least t.
func FilterByThreshold(results []models.ComparisonResult, t float64) []models.ComparisonResult {
	filtered := make([]models.ComparisonResult, 0, len(results))
	for _, r := range results {
		if r.ResolvedScore() >= t {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// LatestComparison returns the newest cached comparison for a pair, in either
// order, or (nil, nil) when the pair was never compared.
func (s *Service) LatestComparison(ctx context.Context, id1, id2 int64) (*repository.ComparisonRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.LatestForPair(ctx, id1, id2)
}

// PurgeHistory drops cached rows referencing a report that no longer exists.
// The backend delete has already happened (or failed); this is cache
// maintenance only.
func (s *Service) PurgeHistory(ctx context.Context, reportURL string) (int64, error) {
	if s.history == nil {
		return 0, nil
	}
	return s.history.PurgeReport(ctx, reportURL)
}

// History returns cached comparisons at or above the threshold, newest first.
func (s *Service) History(ctx context.Context, limit int64, threshold float64) ([]*repository.ComparisonRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	records, err := s.history.ListComparisons(ctx, limit)
	if err != nil {
		return nil, err
	}
	filtered := make([]*repository.ComparisonRecord, 0, len(records))
	for _, rec := range records {
		if rec.SimilarityScore >= threshold {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}
