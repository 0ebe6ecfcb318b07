package services

import (
	"context"
	"fmt"
	"log"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services/coach"
	"github.com/davidcogill1011-code/ai-tutor-turnkey/services/llm"
)

// TutorService turns one tutoring request into one reply: it builds the
// instruction prompt and forwards it to the completion service. With no
// client configured it serves canned demo replies instead.
type TutorService struct {
	client llm.Client
}

func NewTutorService(client llm.Client) *TutorService {
	if client == nil {
		log.Printf("[INFO] No completion client configured, tutor runs in demo mode")
	}
	return &TutorService{client: client}
}

func (s *TutorService) DemoMode() bool {
	return s.client == nil
}

func (s *TutorService) Respond(ctx context.Context, req *models.TutorRequest) (string, error) {
	if req == nil || req.Message == nil {
		return "", fmt.Errorf("message is required")
	}

	task := req.Task
	if task == "" {
		task = models.TaskTutor
	}
	mode := req.Mode
	if mode == "" {
		mode = models.ModeNormal
	}
	coachMode := true
	if req.CoachMode != nil {
		coachMode = *req.CoachMode
	}

	if s.client == nil {
		log.Printf("[INFO] Serving demo reply for task=%s mode=%s", task, mode)
		return coach.DemoReply(task, mode), nil
	}

	prompt := coach.Build(coach.Params{
		Task:            task,
		Subject:         req.Subject,
		Level:           req.Level,
		Style:           req.Style,
		Accessibility:   req.Accessibility,
		LearningProfile: req.LearningProfile,
		Mode:            mode,
		CoachMode:       coachMode,
		Attempts:        req.Attempts,
		History:         req.History,
		StudentMessage:  *req.Message,
	})

	reply, err := s.client.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[ERROR] Tutor completion failed: %v", err)
		return "", err
	}

	log.Printf("[INFO] Tutor reply generated for task=%s mode=%s (%d characters)", task, mode, len(reply))
	return reply, nil
}
