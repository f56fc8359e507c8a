package httpapi

import (
	"errors"
	"net/http"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/services"
)

type routineCreateRequest struct {
	PatientID int64  `json:"patientId"`
	Task      string `json:"task"`
	TimeOfDay string `json:"timeOfDay"`
	Frequency string `json:"frequency"`
}

func (s *Server) handleRoutineList(w http.ResponseWriter, r *http.Request) {
	list, err := s.routines.List(r.Context(), accountFrom(r), patientIDQuery(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleRoutineCreate(w http.ResponseWriter, r *http.Request) {
	var req routineCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	routine, err := s.routines.Create(r.Context(), accountFrom(r), req.PatientID, services.RoutineParams{
		Task:      req.Task,
		TimeOfDay: req.TimeOfDay,
		Frequency: req.Frequency,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleRoutineToggle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	routine, err := s.routines.Toggle(r.Context(), accountFrom(r), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Routine not found")
			return
		}
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, routine)
}
