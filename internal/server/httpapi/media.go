package httpapi

import (
	"net/http"
)

type uploadImageRequest struct {
	ImageData string `json:"imageData"`
}

type uploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type textToSpeechRequest struct {
	Text string `json:"text"`
}

type textToSpeechResponse struct {
	AudioURL string `json:"audioUrl"`
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	var req uploadImageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	url, err := s.media.UploadImage(r.Context(), req.ImageData)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, uploadImageResponse{ImageURL: url})
}

func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req textToSpeechRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, err)
		return
	}

	url, err := s.media.Synthesize(r.Context(), req.Text)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, textToSpeechResponse{AudioURL: url})
}
