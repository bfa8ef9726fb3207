// internal/models/biodata.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the document key that carries the store-assigned identifier.
const IDField = "_id"

// ApplicationNumberField is the lookup key used by the student check.
const ApplicationNumberField = "application_number"

// BiodataRecord is a schema-free biodata document. Apart from IDField the
// service never interprets its fields.
type BiodataRecord map[string]interface{}

// ID returns the record identifier as a hex string, or "" when it is missing.
func (r BiodataRecord) ID() string {
	switch v := r[IDField].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

// WithoutID returns a shallow copy of the record with IDField removed.
// Client-supplied identifiers never reach the store.
func (r BiodataRecord) WithoutID() BiodataRecord {
	out := make(BiodataRecord, len(r))
	for k, v := range r {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}

// IsValidID reports whether id has the store's identifier format: a
// 24-character hexadecimal ObjectID.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// NewID returns a freshly generated identifier in the store's format.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// EventType names a change published after a successful write.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// RecordEvent is the payload published on the change channel.
type RecordEvent struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
}
