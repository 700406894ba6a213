package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/campuskit/frontdesk/internal/backend"
	"github.com/campuskit/frontdesk/internal/config"
	"github.com/campuskit/frontdesk/internal/grading"
	"github.com/campuskit/frontdesk/internal/models"
	"github.com/campuskit/frontdesk/internal/report"
	"github.com/campuskit/frontdesk/internal/submission"
	"github.com/campuskit/frontdesk/internal/workspace"
)

// Handler holds dependencies for handlers
type Handler struct {
	cfg         *config.Config
	submissions *submission.Service
	grading     *grading.Service
	workspace   *workspace.Service
	resolver    *report.Resolver
	exporter    *report.Exporter
	backend     *backend.Client
}

// NewHandler creates a new handler
func NewHandler(
	cfg *config.Config,
	submissions *submission.Service,
	gradingSvc *grading.Service,
	workspaceSvc *workspace.Service,
	resolver *report.Resolver,
	exporter *report.Exporter,
	backendClient *backend.Client,
) *Handler {
	return &Handler{
		cfg:         cfg,
		submissions: submissions,
		grading:     gradingSvc,
		workspace:   workspaceSvc,
		resolver:    resolver,
		exporter:    exporter,
		backend:     backendClient,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// respondError maps an error to the response the user sees. Validation
// failures never reached the network and come back as 400 with their inline
// message; backend failures surface the backend's own message when present,
// else the action-specific fallback. No error is fatal: the caller's UI stays
// interactive either way.
func respondError(c *gin.Context, err error, fallback string) {
	if models.IsValidation(err) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Backend call failed")
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: msg,
			Code:  "BACKEND_ERROR",
		})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: fallback,
		Code:  "INTERNAL_ERROR",
	})
}
