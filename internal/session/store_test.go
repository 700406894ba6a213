package session

import (
	"context"
	"testing"

	"github.com/campuskit/frontdesk/internal/models"
)

func TestKeyFormat(t *testing.T) {
	if got := StatusKey(7); got != "assignment_7_status" {
		t.Fatalf("StatusKey(7) = %q", got)
	}
	if got := DataKey(7); got != "assignment_7_data" {
		t.Fatalf("DataKey(7) = %q", got)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	status, err := store.Status(ctx, 7)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != "" {
		t.Fatalf("fresh store status = %q, want empty", status)
	}

	data, err := store.Data(ctx, 7)
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if data != nil {
		t.Fatalf("fresh store data = %+v, want nil", data)
	}

	score := 42.5
	blob := &models.SubmissionData{
		SubmissionID:    55,
		StudentName:     "Alice",
		FileName:        "essay.txt",
		SimilarityScore: &score,
	}
	if err := store.SetData(ctx, 7, blob); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	if err := store.SetStatus(ctx, 7, models.SubmissionStatusSubmitted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	got, err := store.Data(ctx, 7)
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if got.SubmissionID != 55 || got.StudentName != "Alice" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if got.SimilarityScore == nil || *got.SimilarityScore != 42.5 {
		t.Fatalf("score = %v", got.SimilarityScore)
	}

	// Returned blobs are copies; mutating one must not leak into the store.
	got.StudentName = "Mallory"
	again, _ := store.Data(ctx, 7)
	if again.StudentName != "Alice" {
		t.Fatal("store blob was mutated through a returned copy")
	}

	if err := store.Clear(ctx, 7); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	status, _ = store.Status(ctx, 7)
	if status != "" {
		t.Fatalf("status = %q after clear", status)
	}
	data, _ = store.Data(ctx, 7)
	if data != nil {
		t.Fatalf("data = %+v after clear", data)
	}
}

func TestMemoryStoreIsolatesAssignments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.SetStatus(ctx, 7, models.SubmissionStatusSubmitted)
	store.SetData(ctx, 7, &models.SubmissionData{SubmissionID: 55})

	status, _ := store.Status(ctx, 8)
	if status != "" {
		t.Fatalf("assignment 8 status = %q, want empty", status)
	}

	store.Clear(ctx, 8)
	status, _ = store.Status(ctx, 7)
	if status != models.SubmissionStatusSubmitted {
		t.Fatal("clearing assignment 8 touched assignment 7")
	}
}
