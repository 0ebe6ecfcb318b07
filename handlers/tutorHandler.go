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

type TutorHandler struct {
	service *services.TutorService
}

func NewTutorHandler(service *services.TutorService) *TutorHandler {
	return &TutorHandler{service: service}
}

func (h *TutorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/tutor", h.Tutor).Methods("POST")
}

func (h *TutorHandler) Tutor(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received tutor request")

	var req models.TutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode tutor request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if req.Message == nil || strings.TrimSpace(*req.Message) == "" {
		log.Printf("[ERROR] Tutor request is missing a message")
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing message")
		return
	}

	reply, err := h.service.Respond(r.Context(), &req)
	if err != nil {
		log.Printf("[ERROR] Tutor request failed: %v", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, map[string]string{
			"error":   "Completion service error",
			"details": err.Error(),
		})
		return
	}

	log.Printf("[INFO] Tutor request completed successfully")
	h.writeJSONResponse(w, http.StatusOK, models.TutorResponse{Reply: reply})
}

func (h *TutorHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *TutorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
