package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmaher/stockdata/internal/service"
)

func jsonOK(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}

// writeServiceErr maps the service error taxonomy onto status codes:
// InputError 400, not-found 404, InsufficientData 422,
// StoreUnavailable 503, anything else 500.
func (h *Handler) writeServiceErr(w http.ResponseWriter, err error) {
	var inputErr *service.InputError
	var insufficientErr *service.InsufficientDataError
	var unavailableErr *service.StoreUnavailableError

	switch {
	case errors.As(err, &inputErr):
		jsonErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		jsonErr(w, http.StatusNotFound, err.Error())
	case errors.As(err, &insufficientErr):
		jsonErr(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &unavailableErr):
		jsonErr(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("unhandled request error", "error", err)
		jsonErr(w, http.StatusInternalServerError, "internal error")
	}
}
