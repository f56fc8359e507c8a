package httpapi

import (
	"net/http"

	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/services"
)

type registerRequest struct {
	Username          string      `json:"username"`
	Password          string      `json:"password"`
	Role              models.Role `json:"role"`
	CaretakerUsername string      `json:"caretakerUsername"`
	PhoneNumber       string      `json:"phoneNumber"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	account, session, err := s.identity.Register(r.Context(), services.RegisterParams{
		Username:          req.Username,
		Password:          req.Password,
		Role:              req.Role,
		CaretakerUsername: req.CaretakerUsername,
		PhoneNumber:       req.PhoneNumber,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.setSessionCookie(w, session)
	s.respondJSON(w, http.StatusCreated, account)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	account, session, err := s.identity.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.setSessionCookie(w, session)
	s.respondJSON(w, http.StatusOK, account)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.identity.Logout(r.Context(), cookie.Value); err != nil {
			s.respondError(w, err)
			return
		}
	}
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, accountFrom(r))
}

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	patients, err := s.identity.PatientsOf(r.Context(), accountFrom(r))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if patients == nil {
		patients = []*models.Account{}
	}
	s.respondJSON(w, http.StatusOK, patients)
}
