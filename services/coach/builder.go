package coach

import (
	"fmt"
	"strings"

	"github.com/davidcogill1011-code/ai-tutor-turnkey/models"
)

const (
	// The transcript rendered into a prompt is capped to the most
	// recent turns; older turns are dropped from the front.
	MaxTranscriptTurns = 18

	// Attempts required before an explicit final-answer request is
	// honored.
	MinAttemptsForAnswer = 3

	EmptyTranscript = "(none)"

	DefaultSubject = "General"
	DefaultLevel   = "Unknown"
	DefaultStyle   = "Socratic + step-by-step"
)

// Params is the full context tuple for one prompt. Building is pure:
// no I/O, identical input yields identical output.
type Params struct {
	Task            string
	Subject         string
	Level           string
	Style           string
	Accessibility   models.Accessibility
	LearningProfile models.LearningProfile
	Mode            string
	CoachMode       bool
	Attempts        int
	History         []models.Turn
	StudentMessage  string
}

// Build renders the instruction prompt for one exchange.
func Build(p Params) string {
	base := buildBase(p)

	switch p.Task {
	case models.TaskPractice:
		return base + PRACTICE_PROMPT
	case models.TaskGrade:
		return base + GRADE_PROMPT
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(COACH_BEHAVIOR)

	if p.Mode == models.ModeSession {
		fmt.Fprintf(&b, SESSION_FORMAT, GlyphCorrect, GlyphIncorrect, RoadmapPlaceholder)
	} else {
		b.WriteString(NORMAL_FORMAT)
	}

	b.WriteString(STYLE_GUIDANCE)
	return b.String()
}

func buildBase(p Params) string {
	subject := p.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	level := p.Level
	if level == "" {
		level = DefaultLevel
	}
	style := p.Style
	if style == "" {
		style = DefaultStyle
	}

	mode := "NORMAL"
	if p.Mode == models.ModeSession {
		mode = "SESSION (one micro-step at a time)"
	}

	a := p.Accessibility
	f := p.LearningProfile

	base := fmt.Sprintf(BASE_PROMPT,
		p.Task,
		subject,
		level,
		style,
		mode,
		onOff(p.CoachMode),
		p.Attempts,
		onOff(a.DyslexiaMode),
		onOff(a.PlainLanguage),
		onOff(a.FocusMode),
		yesNo(f.ADHD),
		yesNo(f.Dyslexia),
		yesNo(f.Dyscalculia),
		yesNo(f.Autism),
		yesNo(f.Anxiety),
		yesNo(f.ELL),
		formatTranscript(p.History),
		p.StudentMessage,
	)

	if asksForFinalAnswer(p.StudentMessage) {
		if p.Attempts < MinAttemptsForAnswer {
			base += DEFER_ANSWER_DIRECTIVE
		} else {
			base += ALLOW_ANSWER_DIRECTIVE
		}
	}

	return base
}

func formatTranscript(history []models.Turn) string {
	if len(history) == 0 {
		return EmptyTranscript
	}

	if len(history) > MaxTranscriptTurns {
		history = history[len(history)-MaxTranscriptTurns:]
	}

	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(turn.Role), turn.Text))
	}
	return strings.Join(lines, "\n")
}

var answerRequestPhrases = []string{
	"final answer",
	"give me the answer",
	"tell me the answer",
	"what is the answer",
	"what's the answer",
	"just tell me",
	"just solve it",
}

func asksForFinalAnswer(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range answerRequestPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
