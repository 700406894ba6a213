package models

// Submission represents a student submission as returned by the LMS backend.
// Grade and similarity fields are optional; the backend only fills them once
// the corresponding action has happened.
type Submission struct {
	ID              int64    `json:"submission_id"`
	StudentID       string   `json:"student_id,omitempty"`
	StudentName     string   `json:"student_name"`
	AssignmentID    int64    `json:"assignment_id"`
	FileName        string   `json:"file_name"`
	SubmittedAt     string   `json:"submitted_at"`
	Grade           *float64 `json:"grade,omitempty"`
	Feedback        string   `json:"feedback,omitempty"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	ReportURL       string   `json:"report_url,omitempty"`
	Status          string   `json:"status,omitempty"`
}

// SubmissionData is the locally persisted continuity blob for one assignment.
// It mirrors what the browser client kept in local storage: enough to restore
// the "submitted" view after a reload. There is no schema version field.
type SubmissionData struct {
	SubmissionID    int64    `json:"submission_id"`
	StudentName     string   `json:"student_name"`
	FileName        string   `json:"file_name"`
	SubmittedAt     string   `json:"submitted_at"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	ReportURL       string   `json:"report_url,omitempty"`
	ReportFilename  string   `json:"report_filename,omitempty"`
}

// Course represents a lecturer-facing course record.
type Course struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code,omitempty"`
}

// Assignment represents an assignment. Selected is a transient UI flag used
// by the comparison workspace to build a comparison set; it is never sent to
// or received from the backend.
type Assignment struct {
	ID         int64  `json:"assignment_id"`
	Title      string `json:"title"`
	Due        string `json:"due,omitempty"`
	Course     string `json:"course,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
	Selected   bool   `json:"-"`
}

// SubmissionStatusSubmitted is the status flag value persisted after a
// successful submit.
const SubmissionStatusSubmitted = "submitted"

// ScoreBadge buckets a web-similarity score into the badge color shown next
// to it: red for 70 and above, yellow for [40, 70), green below 40.
func ScoreBadge(score float64) string {
	switch {
	case score >= 70:
		return "red"
	case score >= 40:
		return "yellow"
	default:
		return "green"
	}
}
