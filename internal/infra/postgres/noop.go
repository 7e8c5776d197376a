package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
)

// NopRepository satisfies port.JobRepository when no DATABASE_URL is
// configured. The pipeline never reads job records, so writes can vanish.
type NopRepository struct{}

func (NopRepository) Create(context.Context, *entity.Job) error { return nil }
func (NopRepository) Update(context.Context, *entity.Job) error { return nil }

func (NopRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	return nil, fmt.Errorf("%w: %s (audit trail disabled)", entity.ErrNotFound, id)
}
