// Package session is the continuity store: small JSON blobs keyed by
// assignment id that survive restarts, mirroring what the browser client kept
// in local storage. It is a weakly consistent cache over the authoritative
// backend: entries are overwritten on fresh fetches and cleared on delete,
// with no coordination between concurrent writers (last write wins).
package session

import (
	"context"
	"fmt"

	"github.com/campuskit/frontdesk/internal/models"
)

// Store reads and writes per-assignment continuity state.
type Store interface {
	// Status returns the submission status flag, or "" when absent.
	Status(ctx context.Context, assignmentID int64) (string, error)
	SetStatus(ctx context.Context, assignmentID int64, status string) error

	// Data returns the persisted submission blob, or (nil, nil) when absent.
	Data(ctx context.Context, assignmentID int64) (*models.SubmissionData, error)
	SetData(ctx context.Context, assignmentID int64, data *models.SubmissionData) error

	// Clear drops both the status flag and the data blob for an assignment.
	// Clearing state that does not exist is not an error.
	Clear(ctx context.Context, assignmentID int64) error
}

// StatusKey is the storage key for the submission status flag.
func StatusKey(assignmentID int64) string {
	return fmt.Sprintf("assignment_%d_status", assignmentID)
}

// DataKey is the storage key for the submission data blob.
func DataKey(assignmentID int64) string {
	return fmt.Sprintf("assignment_%d_data", assignmentID)
}
