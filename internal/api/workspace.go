package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/frontdesk/internal/workspace"
)

// WorkspaceAssignments lists the backend's existing assignments for
// selection.
func (h *Handler) WorkspaceAssignments(c *gin.Context) {
	assignments, err := h.workspace.ListAssignments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load assignments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// StageWorkspaceFile adds a local file to the comparison set. Upload to the
// backend is deferred until a comparison is requested.
func (h *Handler) StageWorkspaceFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Please select a file to add",
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		title = file.Filename
	}

	opened, err := file.Open()
	if err != nil {
		respondError(c, err, "Failed to read the uploaded file")
		return
	}
	defer opened.Close()
	content, err := io.ReadAll(opened)
	if err != nil {
		respondError(c, err, "Failed to read the uploaded file")
		return
	}

	h.workspace.AddFile(title, file.Filename, content)
	c.JSON(http.StatusOK, gin.H{
		"status":    "staged",
		"selection": h.workspace.SelectionSize(),
	})
}

// ToggleWorkspaceAssignment flips an existing assignment in or out of the
// comparison set.
func (h *Handler) ToggleWorkspaceAssignment(c *gin.Context) {
	assignmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	selected := h.workspace.ToggleAssignment(assignmentID)
	c.JSON(http.StatusOK, gin.H{
		"selected":  selected,
		"selection": h.workspace.SelectionSize(),
	})
}

// CompareAssignments uploads staged files and runs the comparison. An
// optional threshold query filters the returned rows.
func (h *Handler) CompareAssignments(c *gin.Context) {
	results, err := h.workspace.Compare(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compare assignments")
		return
	}

	if raw := c.Query("threshold"); raw != "" {
		if threshold, err := strconv.ParseFloat(raw, 64); err == nil {
			results = workspace.FilterByThreshold(results, threshold)
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type batchCheckRequest struct {
	SubmissionIDs []int64 `json:"submission_ids"`
}

// BatchWebSimilarity checks every selected submission against web content,
// all requests concurrently, responding only after the whole batch settles.
func (h *Handler) BatchWebSimilarity(c *gin.Context) {
	var req batchCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	results, err := h.workspace.CheckWebSimilarity(c.Request.Context(), req.SubmissionIDs)
	if err != nil {
		respondError(c, err, "Failed to run web similarity checks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// LatestPairComparison looks up the newest cached comparison for two
// assignments.
func (h *Handler) LatestPairComparison(c *gin.Context) {
	id1, err1 := strconv.ParseInt(c.Query("id1"), 10, 64)
	id2, err2 := strconv.ParseInt(c.Query("id2"), 10, 64)
	if err1 != nil || err2 != nil || id1 <= 0 || id2 <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Both id1 and id2 query parameters are required",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	record, err := h.workspace.LatestComparison(c.Request.Context(), id1, id2)
	if err != nil {
		respondError(c, err, "Failed to look up the comparison")
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "No cached comparison for this pair",
			Code:  "NOT_FOUND",
		})
		return
	}
	c.JSON(http.StatusOK, record)
}

// PurgeComparisonHistory drops cached rows for a deleted report.
func (h *Handler) PurgeComparisonHistory(c *gin.Context) {
	reportURL := c.Query("report_url")
	if reportURL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "report_url query parameter is required",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	purged, err := h.workspace.PurgeHistory(c.Request.Context(), reportURL)
	if err != nil {
		respondError(c, err, "Failed to purge comparison history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

// ComparisonHistory returns cached comparison rows above the threshold.
func (h *Handler) ComparisonHistory(c *gin.Context) {
	threshold := 0.0
	if raw := c.Query("threshold"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = parsed
		}
	}
	limit := int64(100)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.workspace.History(c.Request.Context(), limit, threshold)
	if err != nil {
		respondError(c, err, "Failed to load comparison history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}
