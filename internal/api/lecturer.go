package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LecturerCourses lists the courses a lecturer teaches.
func (h *Handler) LecturerCourses(c *gin.Context) {
	lecturerID, ok := paramID(c, "id")
	if !ok {
		return
	}

	courses, err := h.grading.Courses(c.Request.Context(), lecturerID)
	if err != nil {
		respondError(c, err, "Failed to load courses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// AssignmentDetail returns one assignment's metadata.
func (h *Handler) AssignmentDetail(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.grading.AssignmentDetail(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err, "Failed to load assignment")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// AssignmentSubmissions lists submissions for grading. Rows may lack a
// similarity score; the field is optional end to end.
func (h *Handler) AssignmentSubmissions(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	submissions, err := h.grading.Submissions(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err, "Failed to load submissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

type gradeRequest struct {
	Grade    float64 `json:"grade"`
	Feedback string  `json:"feedback"`
}

// GradeSubmission validates and forwards a grade. On success the caller
// patches its row to "graded" without refetching the list.
func (h *Handler) GradeSubmission(c *gin.Context) {
	submissionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if err := h.grading.Grade(c.Request.Context(), submissionID, req.Grade, req.Feedback); err != nil {
		respondError(c, err, "Failed to grade the submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "graded"})
}
