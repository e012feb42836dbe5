package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/budgetbee/budgetbee/internal/apperrors"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string          `json:"error"`
	Details string          `json:"details,omitempty"`
	Fields  []FieldErrorDTO `json:"fields,omitempty"`
}

type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON writes body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteError translates domain errors to HTTP responses. Unknown errors are logged and reported as 500.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		fields := make([]FieldErrorDTO, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, FieldErrorDTO{Field: f.Field, Message: f.Message})
		}
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: fields})
	case errors.Is(err, apperrors.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found", Details: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		WriteJSON(w, http.StatusForbidden, ErrorResponse{Error: "Not authorized", Details: err.Error()})
	default:
		log.Errorf("request failed: %v", err)
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// BadRequest reports a malformed request that never reached the service layer.
func BadRequest(w http.ResponseWriter, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

func DecodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// PathInt reads a positive integer path variable.
func PathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return value, nil
}

// QueryInt reads an optional integer query parameter. A missing parameter yields 0.
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return value, nil
}

// QueryDate reads an optional YYYY-MM-DD query parameter. A missing parameter yields the zero time.
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, expected YYYY-MM-DD: %q", name, raw)
	}
	return value, nil
}
