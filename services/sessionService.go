package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services/coach"
)

// Session is one bounded coaching conversation: a transcript and an
// attempt counter, reset together. The profile and the mastery ledger
// live outside it and survive resets.
type Session struct {
	ID              string
	Subject         string
	Level           string
	Style           string
	CoachMode       bool
	Accessibility   models.Accessibility
	LearningProfile models.LearningProfile
	Transcript      []models.Turn
	Attempts        int

	busy bool
}

type StartSessionParams struct {
	Subject         string
	Level           string
	Style           string
	CoachMode       bool
	Accessibility   models.Accessibility
	LearningProfile models.LearningProfile
	Message         string
}

// ExchangeResult is what one turn produced: the reply plus whatever the
// parser salvaged from it.
type ExchangeResult struct {
	SessionID string         `json:"sessionId"`
	Reply     string         `json:"reply"`
	Attempts  int            `json:"attempts"`
	Skills    []string       `json:"skills"`
	Verdict   models.Verdict `json:"verdict"`
}

// SessionService owns the turn-taking state machine: it appends turns,
// advances the attempt counter, drives the tutor service, and feeds
// parsed results to the mastery ledger. One exchange may be in flight
// per session; overlapping submissions are rejected.
type SessionService struct {
	tutor   *TutorService
	mastery *MasteryService

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionService(tutor *TutorService, mastery *MasteryService) *SessionService {
	return &SessionService{
		tutor:    tutor,
		mastery:  mastery,
		sessions: make(map[string]*Session),
	}
}

// Start creates a session and runs its first exchange. The opening
// message is not a graded attempt, so the counter stays at zero.
func (s *SessionService) Start(ctx context.Context, params StartSessionParams) (*ExchangeResult, error) {
	if params.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	session := &Session{
		ID:              uuid.NewString(),
		Subject:         params.Subject,
		Level:           params.Level,
		Style:           params.Style,
		CoachMode:       params.CoachMode,
		Accessibility:   params.Accessibility,
		LearningProfile: params.LearningProfile,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("[INFO] Started session %s for %s/%s", session.ID, params.Subject, params.Level)
	return s.exchange(ctx, session.ID, params.Message, false)
}

// Step runs one more exchange. isAttempt marks a graded attempt and
// advances the counter before the prompt is built, so the model sees
// the attempt it is judging.
func (s *SessionService) Step(ctx context.Context, sessionID, message string, isAttempt bool) (*ExchangeResult, error) {
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	return s.exchange(ctx, sessionID, message, isAttempt)
}

// Reset returns the session to idle: transcript and attempt counter are
// cleared together. Profile and mastery state are untouched.
func (s *SessionService) Reset(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}

	session.Transcript = nil
	session.Attempts = 0

	log.Printf("[INFO] Reset session %s", sessionID)
	return nil
}

func (s *SessionService) exchange(ctx context.Context, sessionID, message string, isAttempt bool) (*ExchangeResult, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if session.busy {
		s.mu.Unlock()
		return nil, fmt.Errorf("an exchange is already in flight for session %s", sessionID)
	}
	session.busy = true

	// The attempt counter tracks effort, so it advances whether or not
	// the reply ends up carrying a usable verdict.
	if isAttempt {
		session.Attempts++
	}

	history := append(slices.Clone(session.Transcript), models.Turn{
		Role: models.RoleStudent,
		Text: message,
	})
	attempts := session.Attempts

	coachMode := session.CoachMode
	req := &models.TutorRequest{
		Task:            models.TaskTutor,
		Subject:         session.Subject,
		Level:           session.Level,
		Style:           session.Style,
		Accessibility:   session.Accessibility,
		LearningProfile: session.LearningProfile,
		Mode:            models.ModeSession,
		CoachMode:       &coachMode,
		History:         history,
		Message:         &message,
		Attempts:        attempts,
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		session.busy = false
		s.mu.Unlock()
	}()

	reply, err := s.tutor.Respond(ctx, req)
	if err != nil {
		// A failed exchange leaves the transcript unchanged.
		return nil, err
	}

	s.mu.Lock()
	session.Transcript = append(history, models.Turn{
		Role: models.RoleTutor,
		Text: reply,
	})
	s.mu.Unlock()

	result := coach.ParseReply(reply)
	if result.Verdict != models.VerdictUnknown && len(result.Skills) > 0 {
		if err := s.mastery.RecordResult(session.Subject, session.Level, result.Skills, result.Verdict); err != nil {
			// The reply already succeeded; a ledger failure should not
			// break the exchange.
			log.Printf("[ERROR] Failed to record mastery for session %s: %v", sessionID, err)
		}
	}

	return &ExchangeResult{
		SessionID: sessionID,
		Reply:     reply,
		Attempts:  attempts,
		Skills:    result.Skills,
		Verdict:   result.Verdict,
	}, nil
}
