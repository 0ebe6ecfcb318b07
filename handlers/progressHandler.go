package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services/coach"
)

type ProgressHandler struct {
	service *services.MasteryService
}

type RecordProgressRequest struct {
	Subject string `json:"subject"`
	Level   string `json:"level"`
	Reply   string `json:"reply"`
}

type RecordProgressResponse struct {
	Skills   []string       `json:"skills"`
	Verdict  models.Verdict `json:"verdict"`
	Recorded bool           `json:"recorded"`
}

func NewProgressHandler(service *services.MasteryService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/progress/record", h.Record).Methods("POST")
	router.HandleFunc("/api/progress/report", h.Report).Methods("GET")
	router.HandleFunc("/api/progress/weakest", h.Weakest).Methods("GET")
	router.HandleFunc("/api/progress/skills", h.SearchSkills).Methods("GET")
	router.HandleFunc("/api/progress/export", h.Export).Methods("GET")
	router.HandleFunc("/api/progress", h.Clear).Methods("DELETE")
}

// Record parses a raw tutor reply and applies whatever it carried to
// the ledger. A reply without markers records nothing and still
// succeeds; the model is not guaranteed to follow the format.
func (h *ProgressHandler) Record(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received progress record request")

	var req RecordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode progress record JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if strings.TrimSpace(req.Reply) == "" {
		log.Printf("[ERROR] Progress record request is missing a reply")
		h.writeErrorResponse(w, http.StatusBadRequest, "Missing reply")
		return
	}

	result := coach.ParseReply(req.Reply)
	recorded := result.Verdict != models.VerdictUnknown && len(result.Skills) > 0

	if recorded {
		if err := h.service.RecordResult(req.Subject, req.Level, result.Skills, result.Verdict); err != nil {
			log.Printf("[ERROR] Failed to record progress: %v", err)
			h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	h.writeJSONResponse(w, http.StatusOK, RecordProgressResponse{
		Skills:   result.Skills,
		Verdict:  result.Verdict,
		Recorded: recorded,
	})
}

func (h *ProgressHandler) Report(w http.ResponseWriter, r *http.Request) {
	subject, level, window, err := rollupParams(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid days")
		return
	}

	reports, err := h.service.Report(subject, level, window)
	if err != nil {
		log.Printf("[ERROR] Failed to build progress report: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, reports)
}

func (h *ProgressHandler) Weakest(w http.ResponseWriter, r *http.Request) {
	subject, level, window, err := rollupParams(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid days")
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	reports, err := h.service.WeakestSkills(subject, level, window, limit)
	if err != nil {
		log.Printf("[ERROR] Failed to rank weakest skills: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, reports)
}

func (h *ProgressHandler) SearchSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.SearchSkills(r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("[ERROR] Skill search failed: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, skills)
}

func (h *ProgressHandler) Export(w http.ResponseWriter, r *http.Request) {
	subject, level, window, err := rollupParams(r)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid days")
		return
	}

	data, err := h.service.ExportCSV(subject, level, window)
	if err != nil {
		log.Printf("[ERROR] Failed to export progress CSV: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="progress.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(data))
}

func (h *ProgressHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearProgress(); err != nil {
		log.Printf("[ERROR] Failed to clear progress: %v", err)
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func rollupParams(r *http.Request) (subject, level string, window time.Duration, err error) {
	query := r.URL.Query()
	subject = query.Get("subject")
	level = query.Get("level")

	window = services.DefaultReportWindow
	if raw := query.Get("days"); raw != "" {
		days, convErr := strconv.Atoi(raw)
		if convErr != nil || days <= 0 {
			return "", "", 0, fmt.Errorf("invalid days value %q", raw)
		}
		window = time.Duration(days) * 24 * time.Hour
	}
	return subject, level, window, nil
}

func (h *ProgressHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ProgressHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
