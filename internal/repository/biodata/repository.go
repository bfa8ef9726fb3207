// Package biodata holds the document store implementations backing the
// biodata API.
package biodata

import (
	"context"
	"errors"

	"biodata-service/internal/models"
)

var (
	// ErrNotFound means a well-formed request matched no record.
	ErrNotFound = errors.New("RECORD_NOT_FOUND")
	// ErrInvalidID is raised by the store when an identifier cannot be
	// converted to its key type.
	ErrInvalidID = errors.New("INVALID_ID")
)

// Operation names used in logs and metrics.
const (
	OpFindAll                 = "find_all"
	OpFindByApplicationNumber = "find_by_application_number"
	OpCreate                  = "create"
	OpFindByID                = "find_by_id"
	OpUpdateByID              = "update_by_id"
	OpDeleteByID              = "delete_by_id"
)

// Repository is the document store contract. Each method is exactly one
// store round trip.
type Repository interface {
	// FindAll returns every record in the store's natural order.
	FindAll(ctx context.Context) ([]models.BiodataRecord, error)
	// FindByApplicationNumber returns one record whose application_number
	// equals value exactly, or ErrNotFound.
	FindByApplicationNumber(ctx context.Context, value interface{}) (models.BiodataRecord, error)
	// Create inserts fields as a new record and returns the assigned id.
	Create(ctx context.Context, fields models.BiodataRecord) (string, error)
	// FindByID returns the record with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (models.BiodataRecord, error)
	// UpdateByID merges fields into the record; ErrNotFound when none matched.
	UpdateByID(ctx context.Context, id string, fields models.BiodataRecord) error
	// DeleteByID removes the record; ErrNotFound when none matched.
	DeleteByID(ctx context.Context, id string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}
