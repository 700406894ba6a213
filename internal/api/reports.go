package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/campuskit/frontdesk/internal/models"
	"github.com/campuskit/frontdesk/internal/report"
)

type resolveRequest struct {
	Result        *models.ComparisonResult `json:"result,omitempty"`
	ReportURL     string                   `json:"report_url,omitempty"`
	SubmissionID1 int64                    `json:"submission_id1,omitempty"`
	SubmissionID2 int64                    `json:"submission_id2,omitempty"`
	Score         float64                  `json:"score,omitempty"`
}

func (req *resolveRequest) toInput() *report.Input {
	return &report.Input{
		Result:        req.Result,
		ReportURL:     req.ReportURL,
		SubmissionID1: req.SubmissionID1,
		SubmissionID2: req.SubmissionID2,
		Score:         req.Score,
	}
}

// ResolveReport renders a side-by-side report through the fallback chain.
// The response carries the terminal state; a rendered report is always
// produced unless the identifier-only fetch itself failed.
func (h *Handler) ResolveReport(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	rep := h.resolver.Resolve(c.Request.Context(), req.toInput())
	if rep.State == models.ReportStateError {
		c.JSON(http.StatusBadGateway, rep)
		return
	}
	c.JSON(http.StatusOK, rep)
}

type exportRequest struct {
	resolveRequest
	Title1 string `json:"title1"`
	Title2 string `json:"title2"`
}

// ExportReport resolves a report and streams it back as a paginated PDF.
func (h *Handler) ExportReport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	rep := h.resolver.Resolve(c.Request.Context(), req.toInput())
	if rep.State == models.ReportStateError {
		c.JSON(http.StatusBadGateway, rep)
		return
	}

	title1 := req.Title1
	if title1 == "" {
		title1 = "Document 1"
	}
	title2 := req.Title2
	if title2 == "" {
		title2 = "Document 2"
	}

	path, err := h.exporter.Export(rep, title1, title2)
	if err != nil {
		respondError(c, err, "Failed to export the report")
		return
	}

	log.Info().Str("path", path).Msg("Report exported")
	c.FileAttachment(path, "similarity_report.pdf")
}

// DownloadReport proxies a backend-generated report, honoring its content
// type.
func (h *Handler) DownloadReport(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Report filename required",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	body, contentType, err := h.backend.DownloadReport(c.Request.Context(), filename)
	if err != nil {
		respondError(c, err, "Failed to download the report")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Report download interrupted")
	}
}
