package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"docchat/internal/llm"
	"docchat/internal/rag"
	"docchat/internal/vectordb"
)

// chatRequest is the /chat request body.
type chatRequest struct {
	Text string `json:"text"`
	K    int    `json:"k,omitempty"`
}

// chatResponse is the /chat success body.
type chatResponse struct {
	Response string       `json:"response"`
	Sources  []rag.Source `json:"sources,omitempty"`
}

// errorResponse carries a machine-readable detail string.
type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	answer, err := s.engine.Answer(r.Context(), req.Text, req.K)
	if err != nil {
		status, detail := mapError(err)
		log.Printf("server: /chat failed (%d): %s", status, detail)
		writeError(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response: answer.Response,
		Sources:  answer.Sources,
	})
}

// mapError translates internal error kinds into client-visible statuses:
// 503 for a retryable index outage, 502 for a generation backend failure
// (carrying the backend's status and detail), 500 otherwise.
func mapError(err error) (int, string) {
	if errors.Is(err, vectordb.ErrUnavailable) {
		return http.StatusServiceUnavailable, err.Error()
	}
	if genErr, ok := llm.AsGenerationError(err); ok {
		return http.StatusBadGateway, genErr.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
