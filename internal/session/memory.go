package session

import (
	"context"
	"sync"

	"github.com/campuskit/frontdesk/internal/models"
)

// MemoryStore is an in-process Store used in tests and local development.
type MemoryStore struct {
	mu       sync.Mutex
	statuses map[string]string
	blobs    map[string]models.SubmissionData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		statuses: make(map[string]string),
		blobs:    make(map[string]models.SubmissionData),
	}
}

func (s *MemoryStore) Status(ctx context.Context, assignmentID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[StatusKey(assignmentID)], nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, assignmentID int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[StatusKey(assignmentID)] = status
	return nil
}

func (s *MemoryStore) Data(ctx context.Context, assignmentID int64) (*models.SubmissionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[DataKey(assignmentID)]
	if !ok {
		return nil, nil
	}
	copied := data
	return &copied, nil
}

func (s *MemoryStore) SetData(ctx context.Context, assignmentID int64, data *models.SubmissionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[DataKey(assignmentID)] = *data
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, assignmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.statuses, StatusKey(assignmentID))
	delete(s.blobs, DataKey(assignmentID))
	return nil
}
