// internal/repository/biodata/instrumented.go
package biodata

import (
	"context"
	"errors"
	"time"

	"biodata-service/internal/common/observability"
	"biodata-service/internal/models"
)

// InstrumentedRepository records the outcome and latency of every call made
// to the wrapped store.
type InstrumentedRepository struct {
	next Repository
	obs  *observability.Observability
}

func NewInstrumentedRepository(next Repository, obs *observability.Observability) *InstrumentedRepository {
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &InstrumentedRepository{next: next, obs: obs}
}

func (r *InstrumentedRepository) FindAll(ctx context.Context) ([]models.BiodataRecord, error) {
	start := time.Now()
	out, err := r.next.FindAll(ctx)
	r.record(ctx, OpFindAll, start, err)
	return out, err
}

func (r *InstrumentedRepository) FindByApplicationNumber(ctx context.Context, value interface{}) (models.BiodataRecord, error) {
	start := time.Now()
	out, err := r.next.FindByApplicationNumber(ctx, value)
	r.record(ctx, OpFindByApplicationNumber, start, err)
	return out, err
}

func (r *InstrumentedRepository) Create(ctx context.Context, fields models.BiodataRecord) (string, error) {
	start := time.Now()
	id, err := r.next.Create(ctx, fields)
	r.record(ctx, OpCreate, start, err)
	return id, err
}

func (r *InstrumentedRepository) FindByID(ctx context.Context, id string) (models.BiodataRecord, error) {
	start := time.Now()
	out, err := r.next.FindByID(ctx, id)
	r.record(ctx, OpFindByID, start, err)
	return out, err
}

func (r *InstrumentedRepository) UpdateByID(ctx context.Context, id string, fields models.BiodataRecord) error {
	start := time.Now()
	err := r.next.UpdateByID(ctx, id, fields)
	r.record(ctx, OpUpdateByID, start, err)
	return err
}

func (r *InstrumentedRepository) DeleteByID(ctx context.Context, id string) error {
	start := time.Now()
	err := r.next.DeleteByID(ctx, id)
	r.record(ctx, OpDeleteByID, start, err)
	return err
}

func (r *InstrumentedRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *InstrumentedRepository) record(ctx context.Context, op string, start time.Time, err error) {
	r.obs.RecordStoreOperation(ctx, op, OutcomeStatus(err), time.Since(start))
}

// OutcomeStatus classifies a store result for metrics and logs.
func OutcomeStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
