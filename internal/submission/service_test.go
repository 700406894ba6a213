package submission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/models"
	"github.com/campuskit/frontdesk/internal/session"
)

// countingServer wraps an httptest server and counts every request it sees.
type countingServer struct {
	*httptest.Server
	hits int64
}

func newCountingServer(t *testing.T, handler http.HandlerFunc) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&cs.hits, 1)
		handler(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *countingServer) requests() int64 {
	return atomic.LoadInt64(&cs.hits)
}

func TestSubmitValidationNeverReachesNetwork(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected backend call: %s %s", r.Method, r.URL.Path)
	})
	svc := NewService(backend.NewClient(srv.URL), session.NewMemoryStore())

	cases := []struct {
		name     string
		student  string
		fileName string
		body     string
		wantMsg  string
	}{
		{
			name:     "empty name",
			student:  "   ",
			fileName: "essay.txt",
			body:     "text",
			wantMsg:  "Please enter your name before submitting",
		},
		{
			name:    "missing file",
			student: "Alice",
			wantMsg: "Please select a file to submit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var reader io.Reader
			if tc.body != "" {
				reader = strings.NewReader(tc.body)
			}
			_, err := svc.Submit(context.Background(), 7, tc.student, "", tc.fileName, reader)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !models.IsValidation(err) {
				t.Fatalf("error %v is not a validation error", err)
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("message = %q, want %q", err.Error(), tc.wantMsg)
			}
		})
	}

	if srv.requests() != 0 {
		t.Fatalf("backend saw %d requests, want 0", srv.requests())
	}
}

func TestSubmitPersistsLocalState(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"submission_id": 55,
				"student_name":  "Alice",
				"file_name":     "essay.txt",
				"submitted_at":  "2026-03-01T10:00:00Z",
			},
		})
	})
	store := session.NewMemoryStore()
	svc := NewService(backend.NewClient(srv.URL), store)

	result, err := svc.Submit(context.Background(), 7, "Alice", "", "essay.txt", strings.NewReader("my essay."))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Message != "Assignment 7 has been successfully submitted!" {
		t.Fatalf("Message = %q", result.Message)
	}

	status, err := store.Status(context.Background(), 7)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != models.SubmissionStatusSubmitted {
		t.Fatalf("status = %q, want %q", status, models.SubmissionStatusSubmitted)
	}

	data, err := svc.Current(context.Background(), 7)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if data == nil || data.SubmissionID != 55 || data.StudentName != "Alice" {
		t.Fatalf("unexpected persisted data: %+v", data)
	}
}

func TestCurrentReturnsNilWhenNothingSubmitted(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected backend call: %s", r.URL.Path)
	})
	svc := NewService(backend.NewClient(srv.URL), session.NewMemoryStore())

	data, err := svc.Current(context.Background(), 7)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if data != nil {
		t.Fatalf("data = %+v, want nil", data)
	}
}

func TestCheckWebSimilarityCachedSkipsNetwork(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected backend call: %s", r.URL.Path)
	})
	store := session.NewMemoryStore()
	score := 81.0
	store.SetData(context.Background(), 7, &models.SubmissionData{
		SubmissionID:    55,
		SimilarityScore: &score,
		ReportURL:       "/reports/55.pdf",
	})
	svc := NewService(backend.NewClient(srv.URL), store)

	result, err := svc.CheckWebSimilarity(context.Background(), 7)
	if err != nil {
		t.Fatalf("CheckWebSimilarity: %v", err)
	}
	if !result.Cached {
		t.Fatal("result not marked cached")
	}
	if result.Score != 81.0 || result.Badge != "red" {
		t.Fatalf("Score = %v, Badge = %q", result.Score, result.Badge)
	}
	if srv.requests() != 0 {
		t.Fatalf("backend saw %d requests, want 0", srv.requests())
	}
}

func TestCheckWebSimilarityFetchesAndCaches(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":               "success",
			"web_similarity_score": 42.5,
			"report_url":           "/reports/55.pdf",
		})
	})
	store := session.NewMemoryStore()
	store.SetData(context.Background(), 7, &models.SubmissionData{SubmissionID: 55})
	svc := NewService(backend.NewClient(srv.URL), store)

	result, err := svc.CheckWebSimilarity(context.Background(), 7)
	if err != nil {
		t.Fatalf("CheckWebSimilarity: %v", err)
	}
	if result.Cached {
		t.Fatal("first check must not be cached")
	}
	if result.Score != 42.5 || result.Badge != "yellow" {
		t.Fatalf("Score = %v, Badge = %q", result.Score, result.Badge)
	}

	data, _ := store.Data(context.Background(), 7)
	if data.SimilarityScore == nil || *data.SimilarityScore != 42.5 {
		t.Fatalf("score not cached: %+v", data)
	}
	if data.ReportFilename != "55.pdf" {
		t.Fatalf("ReportFilename = %q, want 55.pdf", data.ReportFilename)
	}

	// Second check is served from the cache.
	before := srv.requests()
	again, err := svc.CheckWebSimilarity(context.Background(), 7)
	if err != nil {
		t.Fatalf("CheckWebSimilarity (cached): %v", err)
	}
	if !again.Cached {
		t.Fatal("second check not cached")
	}
	if srv.requests() != before {
		t.Fatalf("cached check reached the backend")
	}
}

func TestRemoveClearsLocalStateOnBackendFailure(t *testing.T) {
	srv := newCountingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status": "error", "message": "boom"}`))
	})
	store := session.NewMemoryStore()
	store.SetStatus(context.Background(), 7, models.SubmissionStatusSubmitted)
	store.SetData(context.Background(), 7, &models.SubmissionData{
		SubmissionID:   55,
		ReportFilename: "55.pdf",
	})
	svc := NewService(backend.NewClient(srv.URL), store)

	if err := svc.Remove(context.Background(), 7); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	status, _ := store.Status(context.Background(), 7)
	if status != "" {
		t.Fatalf("status = %q after removal", status)
	}
	data, _ := store.Data(context.Background(), 7)
	if data != nil {
		t.Fatalf("data = %+v after removal", data)
	}
	// Both the submission and report deletes were attempted.
	if srv.requests() != 2 {
		t.Fatalf("backend saw %d requests, want 2", srv.requests())
	}
}

func TestReportFilename(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"/media/reports/55.pdf", "55.pdf"},
		{"55.pdf", "55.pdf"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := reportFilename(tc.url); got != tc.want {
			t.Errorf("reportFilename(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
