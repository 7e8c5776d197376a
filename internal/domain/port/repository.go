package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
)

// JobRepository records job state transitions for operator diagnosis.
// The audit trail is best-effort: jobs are not durable across restarts
// and the pipeline does not depend on reads.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	Update(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
}
