package coach

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

func baseParams() Params {
	return Params{
		Task:           models.TaskTutor,
		Subject:        "Math",
		Level:          "Middle School",
		Mode:           models.ModeSession,
		CoachMode:      true,
		StudentMessage: "Solve 2x + 5 = 17",
	}
}

func TestBuildSectionHeaders(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		mode    string
		headers []string
	}{
		{
			name: "tutor session",
			task: models.TaskTutor,
			mode: models.ModeSession,
			headers: []string{
				"## Feedback",
				"## Roadmap",
				"## Next step",
				"## Check",
				"## Skills",
			},
		},
		{
			name: "tutor normal",
			task: models.TaskTutor,
			mode: models.ModeNormal,
			headers: []string{
				"## Goal",
				"## Roadmap",
				"## Step 1 (Your turn)",
				"## Hint",
				"## Check Understanding",
				"## Skills",
			},
		},
		{
			name: "practice",
			task: models.TaskPractice,
			mode: models.ModeNormal,
			headers: []string{
				"## Practice set",
				"## How to use this",
				"## Skills",
			},
		},
		{
			name: "grade",
			task: models.TaskGrade,
			mode: models.ModeNormal,
			headers: []string{
				"## Rubric check",
				"## First error",
				"## One fix",
				"## Next step question",
				"## Skills",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			p.Task = tt.task
			p.Mode = tt.mode

			prompt := Build(p)

			lastIndex := -1
			for _, header := range tt.headers {
				count := strings.Count(prompt, header)
				// "## Check" is a prefix of "## Check Understanding";
				// discount the longer header when counting the shorter.
				if header == "## Check" {
					count -= strings.Count(prompt, "## Check Understanding")
				}
				if count != 1 {
					t.Errorf("expected header %q exactly once, found %d times", header, count)
				}

				idx := strings.Index(prompt, header)
				if idx <= lastIndex {
					t.Errorf("header %q out of order at index %d (previous header at %d)", header, idx, lastIndex)
				}
				lastIndex = idx
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	p := baseParams()
	p.History = []models.Turn{
		{Role: models.RoleStudent, Text: "Solve 2x + 5 = 17"},
		{Role: models.RoleTutor, Text: "What do we undo first?"},
	}
	p.Attempts = 2

	if Build(p) != Build(p) {
		t.Error("expected identical prompts for identical input")
	}
}

func TestBuildAnswerRequestGating(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		attempts  int
		wantDefer bool
		wantAllow bool
	}{
		{"asks at zero attempts", "Just give me the final answer.", 0, true, false},
		{"asks at two attempts", "What is the answer?", 2, true, false},
		{"asks at three attempts", "Please give me the final answer now.", 3, false, true},
		{"asks at five attempts", "just tell me", 5, false, true},
		{"no request at zero attempts", "I think we subtract 5 first.", 0, false, false},
		{"no request at three attempts", "Is it 2x = 12 now?", 3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			p.StudentMessage = tt.message
			p.Attempts = tt.attempts

			prompt := Build(p)

			gotDefer := strings.Contains(prompt, "Do NOT reveal it. Require one more attempt")
			gotAllow := strings.Contains(prompt, "You may now provide it")

			if gotDefer != tt.wantDefer {
				t.Errorf("defer directive = %v, expected %v", gotDefer, tt.wantDefer)
			}
			if gotAllow != tt.wantAllow {
				t.Errorf("allow directive = %v, expected %v", gotAllow, tt.wantAllow)
			}
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	p := Params{
		Task:           models.TaskTutor,
		Mode:           models.ModeNormal,
		StudentMessage: "Help me factor x^2 - 9",
	}

	prompt := Build(p)

	for _, want := range []string{
		"- Subject: General",
		"- Level: Unknown",
		"- Preferred style: Socratic + step-by-step",
		"- Mode: NORMAL",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildTranscript(t *testing.T) {
	t.Run("empty history renders placeholder", func(t *testing.T) {
		prompt := Build(baseParams())
		if !strings.Contains(prompt, "Conversation so far:\n(none)") {
			t.Error("expected empty transcript placeholder")
		}
	})

	t.Run("roles are uppercased", func(t *testing.T) {
		p := baseParams()
		p.History = []models.Turn{
			{Role: models.RoleStudent, Text: "first step"},
			{Role: models.RoleTutor, Text: "good, next?"},
		}

		prompt := Build(p)
		if !strings.Contains(prompt, "STUDENT: first step") {
			t.Error("expected uppercased student turn")
		}
		if !strings.Contains(prompt, "TUTOR: good, next?") {
			t.Error("expected uppercased tutor turn")
		}
	})

	t.Run("history is capped to the most recent turns", func(t *testing.T) {
		p := baseParams()
		for i := 0; i < MaxTranscriptTurns+7; i++ {
			p.History = append(p.History, models.Turn{
				Role: models.RoleStudent,
				Text: fmt.Sprintf("turn number %d", i),
			})
		}

		prompt := Build(p)

		for i := 0; i < 7; i++ {
			if strings.Contains(prompt, fmt.Sprintf("turn number %d\n", i)) {
				t.Errorf("expected oldest turn %d to be dropped", i)
			}
		}
		if !strings.Contains(prompt, "turn number 7") {
			t.Error("expected first kept turn to be present")
		}
		if !strings.Contains(prompt, fmt.Sprintf("turn number %d", MaxTranscriptTurns+6)) {
			t.Error("expected newest turn to be present")
		}
	})
}

func TestBuildFlags(t *testing.T) {
	p := baseParams()
	p.Accessibility = models.Accessibility{PlainLanguage: true, FocusMode: true}
	p.LearningProfile = models.LearningProfile{ADHD: true, ELL: true}
	p.CoachMode = false

	prompt := Build(p)

	for _, want := range []string{
		"- Dyslexia-friendly: OFF",
		"- Plain language: ON",
		"- Focus mode: ON",
		"- ADHD/focus support: YES",
		"- Dyslexia support: NO",
		"- English learner (ELL): YES",
		"- Coach Mode: OFF",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestBuildSessionModeLabel(t *testing.T) {
	p := baseParams()
	prompt := Build(p)

	if !strings.Contains(prompt, "- Mode: SESSION (one micro-step at a time)") {
		t.Error("expected session mode label")
	}
	if !strings.Contains(prompt, "- Attempts so far: 0") {
		t.Error("expected attempt count in context")
	}
}
