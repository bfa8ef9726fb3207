package biodata

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"biodata-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeStatus(t *testing.T) {
	assert.Equal(t, "ok", OutcomeStatus(nil))
	assert.Equal(t, "not_found", OutcomeStatus(ErrNotFound))
	assert.Equal(t, "invalid_id", OutcomeStatus(fmt.Errorf("%w: x", ErrInvalidID)))
	assert.Equal(t, "timeout", OutcomeStatus(fmt.Errorf("find: %w", context.DeadlineExceeded)))
	assert.Equal(t, "error", OutcomeStatus(errors.New("boom")))
}

func TestInstrumentedRepository_Delegates(t *testing.T) {
	repo := NewInstrumentedRepository(NewMemoryRepository(), nil)
	ctx := context.Background()

	id, err := repo.Create(ctx, models.BiodataRecord{"application_number": "APP-1"})
	require.NoError(t, err)

	_, err = repo.FindByID(ctx, id)
	assert.NoError(t, err)
	_, err = repo.FindByApplicationNumber(ctx, "APP-1")
	assert.NoError(t, err)
	all, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.NoError(t, repo.UpdateByID(ctx, id, models.BiodataRecord{"x": 1}))
	assert.NoError(t, repo.DeleteByID(ctx, id))
	assert.ErrorIs(t, repo.DeleteByID(ctx, id), ErrNotFound)
	assert.NoError(t, repo.Ping(ctx))
}
