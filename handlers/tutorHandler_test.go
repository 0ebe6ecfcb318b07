package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/services"
)

// A tutor service with no completion client runs in demo mode and never
// calls out, which is exactly what handler tests need.
func newDemoRouter() *mux.Router {
	handler := NewTutorHandler(services.NewTutorService(nil))
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func postTutor(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/tutor", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTutorMissingMessage(t *testing.T) {
	router := newDemoRouter()

	tests := []struct {
		name string
		body string
	}{
		{"absent message field", `{"task":"tutor"}`},
		{"empty message", `{"task":"tutor","message":""}`},
		{"whitespace message", `{"message":"   "}`},
		{"non-string message", `{"message":42}`},
		{"invalid json", `{"message":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postTutor(t, router, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}

			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode error payload: %v", err)
			}
			if payload["error"] == "" {
				t.Error("expected an error field in the payload")
			}
		})
	}
}

func TestTutorPracticeDemoReply(t *testing.T) {
	router := newDemoRouter()

	rec := postTutor(t, router,
		`{"task":"practice","message":"Create a practice set focused on: Inverse operations"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode reply payload: %v", err)
	}

	reply := payload["reply"]
	if !strings.Contains(reply, "## Practice set") {
		t.Error("expected a practice set section")
	}
	if got := strings.Count(reply, "Hint:"); got != 6 {
		t.Errorf("expected six practice items, found %d hints", got)
	}
	if !strings.HasSuffix(reply, "Linear equations, Inverse operations, Combining like terms") {
		t.Error("expected the fixed practice skills line at the end of the reply")
	}
}

func TestTutorSessionDemoReply(t *testing.T) {
	router := newDemoRouter()

	rec := postTutor(t, router, `{"task":"tutor","mode":"session","message":"Solve 2x + 5 = 17"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode reply payload: %v", err)
	}

	for _, header := range []string{"## Feedback", "## Roadmap", "## Next step", "## Check", "## Skills"} {
		if !strings.Contains(payload["reply"], header) {
			t.Errorf("expected demo session reply to contain %q", header)
		}
	}
}

func TestTutorNormalDemoReply(t *testing.T) {
	router := newDemoRouter()

	rec := postTutor(t, router, `{"message":"Help me with fractions"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode reply payload: %v", err)
	}
	if !strings.Contains(payload["reply"], "## Goal") {
		t.Error("expected the normal-mode demo reply")
	}
}
