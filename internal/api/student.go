package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter, responding 400 on garbage.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid " + name + " parameter",
			Code:  "INVALID_REQUEST",
		})
		return 0, false
	}
	return id, true
}

// SubmitAssignment handles the student submit form: a name plus one file.
func (h *Handler) SubmitAssignment(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	name := c.PostForm("name")
	studentID := c.PostForm("student_id")

	var fileName string
	var fileReader io.Reader
	file, err := c.FormFile("file")
	if err == nil && file != nil {
		opened, openErr := file.Open()
		if openErr != nil {
			respondError(c, openErr, "Failed to read the uploaded file")
			return
		}
		defer opened.Close()
		fileName = file.Filename
		fileReader = opened
	}

	result, err := h.submissions.Submit(c.Request.Context(), assignmentID, name, studentID, fileName, fileReader)
	if err != nil {
		respondError(c, err, "Failed to submit the assignment")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// CurrentSubmission returns the locally persisted submission state.
func (h *Handler) CurrentSubmission(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	data, err := h.submissions.Current(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err, "Failed to load submission state")
		return
	}
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"submitted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submitted": true, "data": data})
}

// CheckWebSimilarity runs (or replays) the one-shot web-similarity check.
func (h *Handler) CheckWebSimilarity(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.submissions.CheckWebSimilarity(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err, "Failed to check web similarity")
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveSubmission deletes the submission, best effort remotely and
// unconditionally locally.
func (h *Handler) RemoveSubmission(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.submissions.Remove(c.Request.Context(), assignmentID); err != nil {
		respondError(c, err, "Failed to remove the submission")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
