// internal/repository/biodata/memory.go
package biodata

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"biodata-service/internal/models"
)

// MemoryRepository is a process-local store for development and tests. It
// keeps insertion order and applies the same id rules as the real stores.
type MemoryRepository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]models.BiodataRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]models.BiodataRecord)}
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]models.BiodataRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.BiodataRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.copyOf(id))
	}
	return out, nil
}

// FindByApplicationNumber compares numbers by value, so 1001, 1001.0 and
// 1.001e3 are equal as they are in the database stores.
func (r *MemoryRepository) FindByApplicationNumber(ctx context.Context, value interface{}) (models.BiodataRecord, error) {
	want := normalizeValue(value)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if reflect.DeepEqual(normalizeValue(r.records[id][models.ApplicationNumberField]), want) {
			return r.copyOf(id), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Create(ctx context.Context, fields models.BiodataRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := models.NewID()
	r.records[id] = fields.WithoutID()
	r.order = append(r.order, id)
	return id, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (models.BiodataRecord, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.records[id]; !ok {
		return nil, ErrNotFound
	}
	return r.copyOf(id), nil
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id string, fields models.BiodataRecord) error {
	if err := checkID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields.WithoutID() {
		rec[k] = v
	}
	return nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return ErrNotFound
	}
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	if r.records == nil {
		return fmt.Errorf("memory repository not initialized")
	}
	return nil
}

// copyOf must be called with the lock held.
func (r *MemoryRepository) copyOf(id string) models.BiodataRecord {
	src := r.records[id]
	out := make(models.BiodataRecord, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	out[models.IDField] = id
	return out
}

// normalizeValue turns every number into float64, recursing into objects and
// arrays, so equality does not depend on how a number was spelled.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	case models.BiodataRecord:
		return normalizeValue(map[string]interface{}(t))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
