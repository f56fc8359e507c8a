package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reminisce-care/reminisce/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "error writing response", "err", err)
	}
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, messageResponse{Message: message})
}

// respondError translates sentinel errors from the service layer into HTTP
// status codes and user-facing messages.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.respondMessage(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, common.ErrCaretakerRequired):
		s.respondMessage(w, http.StatusBadRequest, "Caretaker username is required for patients")
	case errors.Is(err, common.ErrCaretakerNotFound):
		s.respondMessage(w, http.StatusBadRequest, "The specified Caretaker username does not exist. Please check the spelling and try again.")
	case errors.Is(err, common.ErrCaretakerWrongRole):
		s.respondMessage(w, http.StatusBadRequest, "The specified user is not a caretaker.")
	case errors.Is(err, common.ErrorConflict):
		s.respondMessage(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, common.ErrorUnauthenticated), errors.Is(err, common.ErrSessionExpired):
		s.respondMessage(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		s.respondMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, common.ErrorNotFound):
		s.respondMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrSpeechUnavailable):
		s.respondMessage(w, http.StatusInternalServerError, "Speech synthesis failed")
	default:
		s.logger.Error(context.Background(), "unhandled error", "err", err)
		s.respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.ErrorValidation
	}
	return nil
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorValidation
	}
	return id, nil
}

// patientIDQuery reads the optional patientId query parameter. Zero means
// "not supplied"; the scoping layer decides what that means per role.
func patientIDQuery(r *http.Request) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get("patientId"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
