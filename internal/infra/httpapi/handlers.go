package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
	"github.com/rodneymanor/screenshot-api/internal/usecase"
	"go.uber.org/zap"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   apiError `json:"error"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateScreenshots runs one job synchronously and streams the
// resulting zip. The job directory is removed once the handler returns,
// i.e. after the response body has been written.
func (s *Server) handleCreateScreenshots(c echo.Context) error {
	fileHeader, err := c.FormFile("video")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: missing video file", entity.ErrInvalidParameter))
	}

	count, err := intParam(c, "num_screenshots", s.cfg.DefaultScreenshots)
	if err != nil {
		return writeError(c, err)
	}
	quality, err := intParam(c, "quality", s.cfg.DefaultQuality)
	if err != nil {
		return writeError(c, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("%w: open upload: %v", entity.ErrResource, err))
	}
	defer src.Close()

	res, err := s.uc.Execute(c.Request().Context(), usecase.Request{
		Filename: fileHeader.Filename,
		Video:    src,
		Count:    count,
		Quality:  quality,
	})
	if err != nil {
		return writeError(c, err)
	}

	defer func() {
		if rerr := s.workspace.Remove(res.WorkDir); rerr != nil {
			s.logger.Warn("failed to remove job dir after delivery",
				zap.String("job_id", res.Job.ID.String()),
				zap.Error(rerr),
			)
		}
	}()

	return c.Attachment(res.ArchivePath, fmt.Sprintf("screenshots_%s.zip", res.Job.ID))
}

type jobResponse struct {
	ID              string     `json:"id"`
	SourceName      string     `json:"source_name"`
	Status          string     `json:"status"`
	ScreenshotCount int        `json:"screenshot_count"`
	Quality         int        `json:"quality"`
	DurationSeconds float64    `json:"duration_seconds,omitempty"`
	ArtifactCount   int        `json:"artifact_count"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// handleGetJob serves the audit record for a job id. This is operator-
// facing metadata, not artifact retrieval: job directories are gone once
// the archive has been delivered.
func (s *Server) handleGetJob(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, fmt.Errorf("%w: malformed job id", entity.ErrInvalidParameter))
	}

	job, err := s.uc.LookupJob(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, jobResponse{
		ID:              job.ID.String(),
		SourceName:      job.SourceName,
		Status:          string(job.Status),
		ScreenshotCount: job.ScreenshotCount,
		Quality:         job.Quality,
		DurationSeconds: job.VideoDuration,
		ArtifactCount:   len(job.Artifacts),
		ErrorMessage:    job.ErrorMessage,
		CreatedAt:       job.CreatedAt,
		CompletedAt:     job.CompletedAt,
	})
}

func (s *Server) handleDeleteJob(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, fmt.Errorf("%w: malformed job id", entity.ErrInvalidParameter))
	}

	if err := s.workspace.RemoveJob(id.String()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.FormValue(name)
	if raw == "" {
		raw = c.QueryParam(name)
	}
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entity.ErrInvalidParameter, name)
	}
	return v, nil
}

// writeError maps domain sentinels to status codes. Internal tool
// diagnostics stay in the logs; callers get the coarse classification.
func writeError(c echo.Context, err error) error {
	code, status := classify(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = "error processing video"
	}
	return c.JSON(status, errorResponse{
		Success: false,
		Error:   apiError{Code: code, Message: msg},
	})
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, entity.ErrInvalidParameter):
		return "INVALID_PARAMETER", http.StatusBadRequest
	case errors.Is(err, entity.ErrUnprocessableMedia):
		return "UNPROCESSABLE_MEDIA", http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrNotFound):
		return "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, entity.ErrTimeout):
		return "TIMEOUT", http.StatusGatewayTimeout
	default:
		return "PROCESSING_FAILED", http.StatusInternalServerError
	}
}
