package api

import (
	"github.com/campuskit/frontdesk/internal/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, handler *Handler) *gin.Engine {
	router := gin.Default()

	rateLimiter := NewRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS*2))

	router.Use(RequestIDMiddleware())
	router.Use(ErrorHandlerMiddleware())

	// Health endpoint (no auth)
	router.GET("/health", handler.Health)

	api := router.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(JWTAuthMiddleware(cfg.JWTSecret))
	}
	api.Use(RateLimitMiddleware(rateLimiter))
	{
		// Student submission flow
		api.POST("/assignments/:id/submission", handler.SubmitAssignment)
		api.GET("/assignments/:id/submission", handler.CurrentSubmission)
		api.POST("/assignments/:id/submission/web-similarity", handler.CheckWebSimilarity)
		api.DELETE("/assignments/:id/submission", handler.RemoveSubmission)

		// Lecturer views
		api.GET("/lecturers/:id/courses", handler.LecturerCourses)
		api.GET("/assignments/:id", handler.AssignmentDetail)
		api.GET("/assignments/:id/submissions", handler.AssignmentSubmissions)
		api.POST("/submissions/:id/grade", handler.GradeSubmission)

		// Comparison workspace
		api.GET("/workspace/assignments", handler.WorkspaceAssignments)
		api.POST("/workspace/files", handler.StageWorkspaceFile)
		api.POST("/workspace/assignments/:id/toggle", handler.ToggleWorkspaceAssignment)
		api.POST("/workspace/compare", handler.CompareAssignments)
		api.POST("/workspace/web-similarity", handler.BatchWebSimilarity)
		api.GET("/workspace/history", handler.ComparisonHistory)
		api.GET("/workspace/history/pair", handler.LatestPairComparison)
		api.DELETE("/workspace/history", handler.PurgeComparisonHistory)

		// Similarity reports
		api.POST("/reports/resolve", handler.ResolveReport)
		api.POST("/reports/export", handler.ExportReport)
		api.GET("/reports/:filename/download", handler.DownloadReport)
	}

	return router
}
