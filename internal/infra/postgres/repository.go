package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, job *entity.Job) error {
	query := `
		INSERT INTO screenshot_jobs (
			id, source_name, file_size, status, screenshot_count, quality,
			video_duration, artifact_count, error_message,
			created_at, updated_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

	_, err := r.pool.Exec(ctx, query,
		job.ID, job.SourceName, job.FileSize, string(job.Status),
		job.ScreenshotCount, job.Quality, job.VideoDuration,
		len(job.Artifacts), job.ErrorMessage,
		job.CreatedAt, job.UpdatedAt, job.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, job *entity.Job) error {
	query := `
		UPDATE screenshot_jobs SET
			status=$2, file_size=$3, video_duration=$4, artifact_count=$5,
			error_message=$6, updated_at=$7, completed_at=$8
		WHERE id=$1`

	_, err := r.pool.Exec(ctx, query,
		job.ID, string(job.Status), job.FileSize, job.VideoDuration,
		len(job.Artifacts), job.ErrorMessage, job.UpdatedAt, job.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	query := `
		SELECT id, source_name, file_size, status, screenshot_count, quality,
			video_duration, artifact_count, error_message,
			created_at, updated_at, completed_at
		FROM screenshot_jobs WHERE id=$1`

	job := &entity.Job{}
	var status string
	var artifactCount int
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.SourceName, &job.FileSize, &status,
		&job.ScreenshotCount, &job.Quality, &job.VideoDuration,
		&artifactCount, &job.ErrorMessage,
		&job.CreatedAt, &job.UpdatedAt, &job.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", entity.ErrNotFound, id)
		}
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	job.Status = entity.JobStatus(status)

	// Filenames are canonical, so the count is enough to rebuild the
	// artifact list.
	for i := 1; i <= artifactCount; i++ {
		job.Artifacts = append(job.Artifacts, entity.Artifact{Index: i, Filename: entity.ArtifactFilename(i)})
	}
	return job, nil
}
