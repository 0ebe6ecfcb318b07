package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services"
)

type SessionHandler struct {
	service *services.SessionService
}

type StartSessionRequest struct {
	Subject         string                 `json:"subject"`
	Level           string                 `json:"level"`
	Style           string                 `json:"style"`
	CoachMode       *bool                  `json:"coachMode"`
	Accessibility   models.Accessibility   `json:"accessibility"`
	LearningProfile models.LearningProfile `json:"learningProfile"`
	Message         string                 `json:"message"`
}

type SessionStepRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	IsAttempt bool   `json:"isAttempt"`
}

type ResetSessionRequest struct {
	SessionID string `json:"sessionId"`
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/session/start", h.Start).Methods("POST")
	router.HandleFunc("/api/session/step", h.Step).Methods("POST")
	router.HandleFunc("/api/session/reset", h.Reset).Methods("POST")
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received session start request")

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode session start JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing message")
		return
	}

	coachMode := true
	if req.CoachMode != nil {
		coachMode = *req.CoachMode
	}

	result, err := h.service.Start(r.Context(), services.StartSessionParams{
		Subject:         req.Subject,
		Level:           req.Level,
		Style:           req.Style,
		CoachMode:       coachMode,
		Accessibility:   req.Accessibility,
		LearningProfile: req.LearningProfile,
		Message:         req.Message,
	})
	if err != nil {
		log.Printf("[ERROR] Session start failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *SessionHandler) Step(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received session step request")

	var req SessionStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode session step JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.SessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing sessionId")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing message")
		return
	}

	result, err := h.service.Step(r.Context(), req.SessionID, req.Message, req.IsAttempt)
	if err != nil {
		log.Printf("[ERROR] Session step failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode session reset JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.SessionID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing sessionId")
		return
	}

	if err := h.service.Reset(req.SessionID); err != nil {
		log.Printf("[ERROR] Session reset failed: %v", err)
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *SessionHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *SessionHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
