package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolveScorePrecedence(t *testing.T) {
	direct := 81.0
	alt := 55.0

	cases := []struct {
		name      string
		resp      webSimilarityResponse
		wantScore float64
		wantOK    bool
	}{
		{
			name:      "direct field wins",
			resp:      webSimilarityResponse{WebScore: &direct, SimilarityScore: &alt},
			wantScore: 81.0,
			wantOK:    true,
		},
		{
			name:      "alternate field",
			resp:      webSimilarityResponse{SimilarityScore: &alt},
			wantScore: 55.0,
			wantOK:    true,
		},
		{
			name:      "summary pattern",
			resp:      webSimilarityResponse{AnalysisSummary: "Analysis complete. Calculated similarity: 42.5% across known sources."},
			wantScore: 42.5,
			wantOK:    true,
		},
		{
			name:      "integer summary",
			resp:      webSimilarityResponse{AnalysisSummary: "Calculated similarity: 7%"},
			wantScore: 7.0,
			wantOK:    true,
		},
		{
			name:   "no score anywhere",
			resp:   webSimilarityResponse{AnalysisSummary: "No findings."},
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := tc.resp.resolveScore()
			if ok != tc.wantOK {
				t.Fatalf("resolveScore ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && score != tc.wantScore {
				t.Fatalf("resolveScore = %v, want %v", score, tc.wantScore)
			}
		})
	}
}

func TestWebSimilarityFromSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/web-similarity/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string]int64
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["submission_id"] != 55 {
			t.Fatalf("submission_id = %d, want 55", req["submission_id"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":           "success",
			"analysis_summary": "Done. Calculated similarity: 42.5% overall.",
			"report_url":       "/reports/55.pdf",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.WebSimilarity(context.Background(), 55)
	if err != nil {
		t.Fatalf("WebSimilarity: %v", err)
	}
	if result.Score == nil || *result.Score != 42.5 {
		t.Fatalf("Score = %v, want 42.5", result.Score)
	}
	if result.ReportURL != "/reports/55.pdf" {
		t.Fatalf("ReportURL = %q", result.ReportURL)
	}
}

func TestSubmitAssignment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/submit-assignment/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("name"); got != "Alice" {
			t.Fatalf("name = %q, want Alice", got)
		}
		if got := r.FormValue("assignment_id"); got != "7" {
			t.Fatalf("assignment_id = %q, want 7", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		file.Close()
		if header.Filename != "essay.txt" {
			t.Fatalf("filename = %q, want essay.txt", header.Filename)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": map[string]interface{}{
				"submission_id": 55,
				"student_name":  "Alice",
				"file_name":     "essay.txt",
				"submitted_at":  "2026-03-01T10:00:00Z",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	data, err := client.SubmitAssignment(context.Background(), 7, "Alice", "", "essay.txt", strings.NewReader("my essay text."))
	if err != nil {
		t.Fatalf("SubmitAssignment: %v", err)
	}
	if data.SubmissionID != 55 {
		t.Fatalf("SubmissionID = %d, want 55", data.SubmissionID)
	}
	if data.StudentName != "Alice" || data.FileName != "essay.txt" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestAssignmentSubmissionsToleratesBothShapes(t *testing.T) {
	t.Run("bare array on primary path", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/assignment/3/submissions/" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(`[{"submission_id": 1, "student_name": "Bob"}]`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		subs, err := client.AssignmentSubmissions(context.Background(), 3)
		if err != nil {
			t.Fatalf("AssignmentSubmissions: %v", err)
		}
		if len(subs) != 1 || subs[0].StudentName != "Bob" {
			t.Fatalf("unexpected submissions: %+v", subs)
		}
	})

	t.Run("wrapped shape on fallback path", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/assignment/3/submissions/":
				http.NotFound(w, r)
			case "/api/assignment-submissions/3/":
				w.Write([]byte(`{"data": {"submissions": [{"submission_id": 2, "student_name": "Eve"}]}}`))
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		client := NewClient(srv.URL)
		subs, err := client.AssignmentSubmissions(context.Background(), 3)
		if err != nil {
			t.Fatalf("AssignmentSubmissions: %v", err)
		}
		if len(subs) != 1 || subs[0].ID != 2 {
			t.Fatalf("unexpected submissions: %+v", subs)
		}
	})
}

func TestBackendErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": "error", "message": "Submission not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.DeleteSubmission(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.Message != "Submission not found" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d", apiErr.StatusCode)
	}
}

func TestCompareAssignments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/compare/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string][]int64
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req["assignment_ids"]) != 2 {
			t.Fatalf("assignment_ids = %v", req["assignment_ids"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"results": []map[string]interface{}{
				{"assignment1_id": 3, "assignment2_id": 9, "similarity_score": 64.2, "report_url": "/reports/r1.pdf"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	results, err := client.CompareAssignments(context.Background(), []int64{3, 9})
	if err != nil {
		t.Fatalf("CompareAssignments: %v", err)
	}
	if len(results) != 1 || results[0].ResolvedScore() != 64.2 {
		t.Fatalf("unexpected results: %+v", results)
	}
}
