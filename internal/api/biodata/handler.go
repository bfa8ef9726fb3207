// internal/api/biodata/handler.go
package biodata

import (
	"context"
	"errors"
	"net/http"

	apperrors "biodata-service/internal/common/errors"
	commonhttp "biodata-service/internal/common/http"
	"biodata-service/internal/common/logger"
	"biodata-service/internal/models"
	repo "biodata-service/internal/repository/biodata"
)

// Handler maps each biodata route onto exactly one repository call.
type Handler struct {
	config *Config
	store  repo.Repository
	errs   *apperrors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, store repo.Repository, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"component": "biodata-api"})
	return &Handler{
		config: config,
		store:  store,
		errs:   apperrors.NewErrorHandler(log),
		logger: log,
	}
}

// storeContext detaches the store call from client cancellation so an
// abandoned request still completes its write, bounded by the configured timeout.
func (h *Handler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(r.Context())
	if h.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.config.Timeout)
}

// StudentCheck looks up one record by exact application_number equality.
func (h *Handler) StudentCheck(w http.ResponseWriter, r *http.Request) {
	body, err := commonhttp.DecodeJSONObject(w, r, h.config.MaxBodyBytes)
	if err != nil {
		h.errs.Write(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}
	input := StudentCheckInput{ApplicationNumber: body[models.ApplicationNumberField]}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	record, err := h.store.FindByApplicationNumber(ctx, input.ApplicationNumber)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			h.errs.Write(w, r, apperrors.NewStudentNotFoundError(input.ApplicationNumber))
			return
		}
		h.errs.Write(w, r, apperrors.NewStoreOperationFailedError(repo.OpFindByApplicationNumber, err))
		return
	}

	logger.FromContext(r.Context(), h.logger).Debug("student record found", map[string]interface{}{
		"id": record.ID(),
	})
	commonhttp.WriteJSON(w, http.StatusOK, StudentCheckOutput{Message: MsgStudentFound, ID: record})
}

// List returns every record in store order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	records, err := h.store.FindAll(ctx)
	if err != nil {
		h.errs.Write(w, r, apperrors.NewStoreOperationFailedError(repo.OpFindAll, err))
		return
	}
	if records == nil {
		records = []models.BiodataRecord{}
	}
	commonhttp.WriteJSON(w, http.StatusOK, records)
}

// Create inserts the body as a new record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := commonhttp.DecodeJSONObject(w, r, h.config.MaxBodyBytes)
	if err != nil {
		h.errs.Write(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	id, err := h.store.Create(ctx, models.BiodataRecord(body).WithoutID())
	if err != nil {
		h.errs.Write(w, r, apperrors.NewStoreOperationFailedError(repo.OpCreate, err))
		return
	}

	logger.FromContext(r.Context(), h.logger).Info("biodata record created", map[string]interface{}{
		"id": id,
	})
	commonhttp.WriteJSON(w, http.StatusCreated, CreateOutput{Message: MsgAdded, ID: id})
}

// Get returns one record. Malformed ids, including an empty one, are rejected
// before the store is called.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !models.IsValidID(id) {
		h.errs.Write(w, r, apperrors.NewInvalidIDError(id))
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	record, err := h.store.FindByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, repo.OpFindByID, id, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, record)
}

// Update merges the body into the record. The id is not pre-validated.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := commonhttp.DecodeJSONObject(w, r, h.config.MaxBodyBytes)
	if err != nil {
		h.errs.Write(w, r, apperrors.NewInvalidRequestBodyError(err))
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.store.UpdateByID(ctx, id, models.BiodataRecord(body).WithoutID()); err != nil {
		h.writeStoreError(w, r, repo.OpUpdateByID, id, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, MessageOutput{Message: MsgUpdated})
}

// Delete removes the record. The id is not pre-validated.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.store.DeleteByID(ctx, id); err != nil {
		h.writeStoreError(w, r, repo.OpDeleteByID, id, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, MessageOutput{Message: MsgDeleted})
}

// writeStoreError reports a missing record as 404 and everything else,
// including a store-side id rejection, as 500.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		h.errs.Write(w, r, apperrors.NewRecordNotFoundError(id))
		return
	}
	h.errs.Write(w, r, apperrors.NewStoreOperationFailedError(op, err))
}
