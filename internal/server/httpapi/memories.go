package httpapi

import (
	"net/http"
)

type memoryCreateRequest struct {
	PatientID   int64  `json:"patientId"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

type memoryAnswerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleMemoryList(w http.ResponseWriter, r *http.Request) {
	list, err := s.memories.List(r.Context(), accountFrom(r), patientIDQuery(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleMemoryCreate(w http.ResponseWriter, r *http.Request) {
	var req memoryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	memory, err := s.memories.Create(r.Context(), accountFrom(r), req.PatientID, req.ImageURL, req.Description)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, memory)
}

func (s *Server) handleMemoryAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var req memoryAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	answer, err := s.memories.Answer(r.Context(), accountFrom(r), id, req.Answer)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, answer)
}

func (s *Server) handleMemoryAnswers(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	answers, err := s.memories.Answers(r.Context(), accountFrom(r), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, answers)
}
