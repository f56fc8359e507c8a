package httpapi

import (
	"errors"
	"net/http"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/services"
)

type emergencyTriggerResponse struct {
	*models.EmergencyLog
	Caretaker *services.CaretakerContact `json:"caretaker,omitempty"`
}

func (s *Server) handleEmergencyList(w http.ResponseWriter, r *http.Request) {
	list, err := s.emergency.List(r.Context(), accountFrom(r), patientIDQuery(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleEmergencyTrigger(w http.ResponseWriter, r *http.Request) {
	log, contact, err := s.emergency.Trigger(r.Context(), accountFrom(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, emergencyTriggerResponse{EmergencyLog: log, Caretaker: contact})
}

func (s *Server) handleEmergencyResolve(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	log, err := s.emergency.Resolve(r.Context(), accountFrom(r), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Emergency log not found")
			return
		}
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, log)
}
