package httpapi

import (
	"errors"
	"net/http"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/services"
)

type medicationCreateRequest struct {
	PatientID int64  `json:"patientId"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	TimeOfDay string `json:"timeOfDay"`
	Frequency string `json:"frequency"`
}

func (s *Server) handleMedicationList(w http.ResponseWriter, r *http.Request) {
	list, err := s.medications.List(r.Context(), accountFrom(r), patientIDQuery(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleMedicationCreate(w http.ResponseWriter, r *http.Request) {
	var req medicationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	medication, err := s.medications.Create(r.Context(), accountFrom(r), req.PatientID, services.MedicationParams{
		Name:      req.Name,
		Dosage:    req.Dosage,
		TimeOfDay: req.TimeOfDay,
		Frequency: req.Frequency,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, medication)
}

func (s *Server) handleMedicationToggle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	medication, err := s.medications.Toggle(r.Context(), accountFrom(r), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.respondMessage(w, http.StatusNotFound, "Medication not found")
			return
		}
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, medication)
}
