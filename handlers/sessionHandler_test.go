package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/db"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services"
)

func newSessionRouter() *mux.Router {
	mastery := services.NewMasteryService(db.NewMemoryProgressRepository())
	tutor := services.NewTutorService(nil)
	handler := NewSessionHandler(services.NewSessionService(tutor, mastery))

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestSessionStartAndStep(t *testing.T) {
	router := newSessionRouter()

	rec := doJSON(router, http.MethodPost, "/api/session/start",
		`{"subject":"Math","level":"Middle School","message":"Solve 2x + 5 = 17"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var start services.ExchangeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &start); err != nil {
		t.Fatalf("failed to decode start response: %v", err)
	}
	if start.SessionID == "" {
		t.Fatal("expected a session ID")
	}
	if start.Attempts != 0 {
		t.Errorf("expected zero attempts after start, got %d", start.Attempts)
	}
	if !strings.Contains(start.Reply, "## Feedback") {
		t.Error("expected the session demo reply")
	}

	step := fmt.Sprintf(`{"sessionId":%q,"message":"I subtract 5 from both sides","isAttempt":true}`, start.SessionID)
	rec = doJSON(router, http.MethodPost, "/api/session/step", step)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result services.ExchangeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode step response: %v", err)
	}
	if result.Attempts != 1 {
		t.Errorf("expected one attempt after a graded step, got %d", result.Attempts)
	}
	if len(result.Skills) == 0 {
		t.Error("expected parsed skills from the reply")
	}

	rec = doJSON(router, http.MethodPost, "/api/session/reset",
		fmt.Sprintf(`{"sessionId":%q}`, start.SessionID))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 on reset, got %d", rec.Code)
	}
}

func TestSessionValidation(t *testing.T) {
	router := newSessionRouter()

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"start without message", "/api/session/start", `{"subject":"Math"}`, http.StatusBadRequest},
		{"step without session", "/api/session/step", `{"message":"hi"}`, http.StatusBadRequest},
		{"step without message", "/api/session/step", `{"sessionId":"abc"}`, http.StatusBadRequest},
		{"step with unknown session", "/api/session/step", `{"sessionId":"abc","message":"hi"}`, http.StatusInternalServerError},
		{"reset without session", "/api/session/reset", `{}`, http.StatusBadRequest},
		{"reset with unknown session", "/api/session/reset", `{"sessionId":"abc"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.code {
				t.Errorf("expected status %d, got %d", tt.code, rec.Code)
			}
		})
	}
}
