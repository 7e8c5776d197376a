package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusCreated    JobStatus = "CREATED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Artifact is one produced screenshot belonging to a job. Index is
// 1-based and matches the extraction plan order.
type Artifact struct {
	Index    int
	Filename string
}

// ArtifactFilename is the canonical screenshot filename for an index.
// Deterministic, so audit records only need to store a count.
func ArtifactFilename(index int) string {
	return fmt.Sprintf("screenshot_%03d.jpg", index)
}

// Job is one video-to-screenshots request and its isolated resources.
// The work directory is owned exclusively by the request that created it
// and is removed on failure or after the archive has been delivered.
type Job struct {
	ID              uuid.UUID
	SourceName      string
	FileSize        int64
	Status          JobStatus
	ScreenshotCount int
	Quality         int
	VideoDuration   float64
	Artifacts       []Artifact
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

func NewJob(sourceName string, fileSize int64, count, quality int) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:              uuid.New(),
		SourceName:      sourceName,
		FileSize:        fileSize,
		Status:          JobStatusCreated,
		ScreenshotCount: count,
		Quality:         quality,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (j *Job) MarkProcessing() {
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now().UTC()
}

func (j *Job) MarkCompleted(duration float64, artifacts []Artifact) {
	now := time.Now().UTC()
	j.Status = JobStatusCompleted
	j.VideoDuration = duration
	j.Artifacts = artifacts
	j.UpdatedAt = now
	j.CompletedAt = &now
}

func (j *Job) MarkFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.UpdatedAt = time.Now().UTC()
}
