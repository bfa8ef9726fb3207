// internal/common/http/response.go
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var errNotAnObject = errors.New("request body must be a JSON object")

// WriteJSON writes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// DecodeJSONObject reads the request body as one JSON object. Numbers are
// kept as json.Number so integers survive the round trip to the store.
func DecodeJSONObject(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]interface{}, error) {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty request body: %w", errNotAnObject)
		}
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON object: %w", errNotAnObject)
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, errNotAnObject
	}
	return obj, nil
}
