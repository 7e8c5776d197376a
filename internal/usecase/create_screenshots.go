package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
	"github.com/rodneymanor/screenshot-api/internal/domain/port"
	"github.com/rodneymanor/screenshot-api/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	MinQuality = 1
	MaxQuality = 31
)

// allowedExtensions is a weak content-type check on the upload filename,
// not a security boundary. ffprobe rejects anything it cannot read.
var allowedExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
}

type CreateScreenshotsUseCase struct {
	workspace port.Workspace
	prober    port.DurationProber
	extractor port.FrameExtractor
	archiver  port.Archiver
	repo      port.JobRepository
	store     port.ArchiveStore
	logger    *zap.Logger
}

// NewCreateScreenshotsUseCase wires the screenshot pipeline. store may be
// nil when archive offload is disabled.
func NewCreateScreenshotsUseCase(
	workspace port.Workspace,
	prober port.DurationProber,
	extractor port.FrameExtractor,
	archiver port.Archiver,
	repo port.JobRepository,
	store port.ArchiveStore,
	logger *zap.Logger,
) *CreateScreenshotsUseCase {
	return &CreateScreenshotsUseCase{
		workspace: workspace,
		prober:    prober,
		extractor: extractor,
		archiver:  archiver,
		repo:      repo,
		store:     store,
		logger:    logger,
	}
}

type Request struct {
	Filename string
	Video    io.Reader
	Count    int
	Quality  int
}

// Result points at the finished archive. The caller owns WorkDir from
// here on: it must remove the directory once the archive has been
// delivered (or abandoned).
type Result struct {
	Job         *entity.Job
	WorkDir     string
	ArchivePath string
}

// Execute runs one job end to end: validate, allocate, persist the
// upload, probe, plan, extract in index order, archive. All-or-nothing:
// the first failure removes the whole work directory, so partial
// screenshot sets never reach the caller.
func (uc *CreateScreenshotsUseCase) Execute(ctx context.Context, req Request) (*Result, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "CreateScreenshots.Execute")
	defer span.End()

	totalTimer := time.Now()

	// Validate before touching any external tool.
	if err := validateRequest(req); err != nil {
		metrics.JobsProcessedTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	job := entity.NewJob(req.Filename, 0, req.Count, req.Quality)
	span.SetAttributes(
		attribute.String("job.id", job.ID.String()),
		attribute.Int("job.screenshot_count", req.Count),
	)

	log := uc.logger.With(zap.String("job_id", job.ID.String()), zap.String("source", req.Filename))

	workDir, err := uc.workspace.Allocate(job.ID.String())
	if err != nil {
		log.Error("failed to allocate work dir", zap.Error(err))
		metrics.JobsProcessedTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := uc.repo.Create(ctx, job); err != nil {
		// Audit trail only; the pipeline keeps going.
		log.Warn("failed to create job record", zap.Error(err))
	}

	metrics.ActiveJobs.Inc()
	defer metrics.ActiveJobs.Dec()

	result, err := uc.runPipeline(ctx, job, req, workDir, log)
	if err != nil {
		_ = uc.workspace.Remove(workDir)
		job.MarkFailed(err.Error())
		if uerr := uc.repo.Update(ctx, job); uerr != nil {
			log.Warn("failed to update job record", zap.Error(uerr))
		}
		metrics.JobsProcessedTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	if uerr := uc.repo.Update(ctx, job); uerr != nil {
		log.Warn("failed to update job record", zap.Error(uerr))
	}

	metrics.JobsProcessedTotal.WithLabelValues("completed").Inc()
	metrics.JobDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())

	log.Info("job completed",
		zap.Int("screenshots", len(job.Artifacts)),
		zap.Float64("duration_secs", job.VideoDuration),
	)

	return result, nil
}

func (uc *CreateScreenshotsUseCase) runPipeline(
	ctx context.Context,
	job *entity.Job,
	req Request,
	workDir string,
	log *zap.Logger,
) (*Result, error) {
	tracer := otel.Tracer("usecase")

	job.MarkProcessing()

	// Persist the upload.
	videoPath, size, err := uc.workspace.SaveUpload(workDir, req.Filename, req.Video)
	if err != nil {
		log.Error("failed to persist upload", zap.Error(err))
		return nil, err
	}
	job.FileSize = size

	// Probe duration.
	probeStart := time.Now()
	ctxProbe, spanProbe := tracer.Start(ctx, "probe_duration")
	duration, err := uc.prober.Probe(ctxProbe, videoPath)
	spanProbe.End()
	if err != nil {
		log.Error("probe failed", zap.Error(err))
		return nil, err
	}
	metrics.JobDuration.WithLabelValues("probe").Observe(time.Since(probeStart).Seconds())

	// Plan timestamps.
	plan, err := entity.NewPlan(duration, req.Count)
	if err != nil {
		log.Warn("planning failed", zap.Float64("duration", duration), zap.Error(err))
		return nil, err
	}

	// Extract sequentially, increasing index order. One failure aborts
	// the remaining extractions; the caller rolls back the whole dir.
	extractStart := time.Now()
	ctxEx, spanEx := tracer.Start(ctx, "extract_frames")
	artifacts := make([]entity.Artifact, 0, len(plan.Timepoints))
	framePaths := make([]string, 0, len(plan.Timepoints))
	for _, tp := range plan.Timepoints {
		filename := entity.ArtifactFilename(tp.Index)
		destPath := filepath.Join(workDir, filename)
		if err := uc.extractor.ExtractFrame(ctxEx, videoPath, tp.Seconds, req.Quality, destPath); err != nil {
			spanEx.End()
			log.Error("extraction failed",
				zap.Int("index", tp.Index),
				zap.Int("seconds", tp.Seconds),
				zap.Error(err),
			)
			return nil, err
		}
		artifacts = append(artifacts, entity.Artifact{Index: tp.Index, Filename: filename})
		framePaths = append(framePaths, destPath)
		metrics.ScreenshotsExtractedTotal.Inc()
	}
	spanEx.End()
	metrics.JobDuration.WithLabelValues("extract").Observe(time.Since(extractStart).Seconds())

	// The source video is no longer needed; reclaim the space before
	// zipping so peak disk usage stays bounded.
	if err := os.Remove(videoPath); err != nil {
		log.Warn("failed to remove source video", zap.Error(err))
	}

	// Archive.
	zipStart := time.Now()
	ctxZip, spanZip := tracer.Start(ctx, "create_zip")
	archivePath := filepath.Join(workDir, "screenshots.zip")
	if err := uc.archiver.CreateZip(ctxZip, framePaths, archivePath); err != nil {
		spanZip.End()
		log.Error("zip creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: create zip: %v", entity.ErrResource, err)
	}
	spanZip.End()
	metrics.JobDuration.WithLabelValues("zip").Observe(time.Since(zipStart).Seconds())

	if uc.store != nil {
		if err := uc.offloadArchive(ctx, job, archivePath, log); err != nil {
			// Retention is best-effort; delivery does not depend on it.
			log.Warn("archive offload failed", zap.Error(err))
		}
	}

	job.MarkCompleted(duration, artifacts)

	return &Result{Job: job, WorkDir: workDir, ArchivePath: archivePath}, nil
}

// LookupJob returns the audit record for a job id. With the audit trail
// disabled every id reports entity.ErrNotFound.
func (uc *CreateScreenshotsUseCase) LookupJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *CreateScreenshotsUseCase) offloadArchive(ctx context.Context, job *entity.Job, archivePath string, log *zap.Logger) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat archive: %w", err)
	}

	key := fmt.Sprintf("screenshots_%s.zip", job.ID.String())
	if err := uc.store.UploadArchive(ctx, key, f, info.Size()); err != nil {
		return err
	}

	log.Info("archive offloaded", zap.String("object_key", key))
	return nil
}

func validateRequest(req Request) error {
	if req.Count <= 0 {
		return fmt.Errorf("%w: num_screenshots must be positive, got %d", entity.ErrInvalidParameter, req.Count)
	}
	if req.Quality < MinQuality || req.Quality > MaxQuality {
		return fmt.Errorf("%w: quality must be in [%d,%d], got %d", entity.ErrInvalidParameter, MinQuality, MaxQuality, req.Quality)
	}
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: unsupported file format %q", entity.ErrInvalidParameter, ext)
	}
	return nil
}
