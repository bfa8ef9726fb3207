package biodata

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"biodata-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, models.BiodataRecord{"application_number": "APP-001", "name": "Jane"})
	require.NoError(t, err)
	require.True(t, models.IsValidID(id))

	rec, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.BiodataRecord{"_id": id, "application_number": "APP-001", "name": "Jane"}, rec)

	require.NoError(t, repo.UpdateByID(ctx, id, models.BiodataRecord{"name": "Jane Doe"}))
	rec, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec["name"])
	assert.Equal(t, "APP-001", rec["application_number"])

	require.NoError(t, repo.DeleteByID(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, id), ErrNotFound)
}

func TestMemoryRepository_ReturnedRecordsAreCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.Create(ctx, models.BiodataRecord{"name": "Jane"})
	require.NoError(t, err)

	rec, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	rec["name"] = "mutated"

	again, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane", again["name"])
}

func TestMemoryRepository_FindAllKeepsInsertionOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		id, err := repo.Create(ctx, models.BiodataRecord{"name": name})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.NoError(t, repo.DeleteByID(ctx, ids[1]))

	records, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[0], records[0].ID())
	assert.Equal(t, ids[2], records[1].ID())
}

func TestMemoryRepository_ApplicationNumberExactMatch(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, models.BiodataRecord{"application_number": "APP-001"})
	require.NoError(t, err)

	_, err = repo.FindByApplicationNumber(ctx, "APP-001")
	assert.NoError(t, err)

	for _, miss := range []interface{}{"app-001", " APP-001", "APP-001 ", nil} {
		_, err = repo.FindByApplicationNumber(ctx, miss)
		assert.ErrorIs(t, err, ErrNotFound, "value %#v must not match", miss)
	}
}

func TestMemoryRepository_ApplicationNumberComparesNumbersByValue(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, models.BiodataRecord{"application_number": json.Number("1001")})
	require.NoError(t, err)

	for _, hit := range []interface{}{json.Number("1001"), json.Number("1001.0"), json.Number("1.001e3"), 1001} {
		_, err = repo.FindByApplicationNumber(ctx, hit)
		assert.NoError(t, err, "value %#v must match", hit)
	}
	for _, miss := range []interface{}{"1001", json.Number("1002")} {
		_, err = repo.FindByApplicationNumber(ctx, miss)
		assert.ErrorIs(t, err, ErrNotFound, "value %#v must not match", miss)
	}
}

func TestMemoryRepository_MalformedIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, repo.UpdateByID(ctx, "nope", models.BiodataRecord{"a": 1}), ErrInvalidID)
	assert.ErrorIs(t, repo.DeleteByID(ctx, "nope"), ErrInvalidID)
}

func TestMemoryRepository_ConcurrentCreatesNeverCollide(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Create(ctx, models.BiodataRecord{"name": "same"})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
