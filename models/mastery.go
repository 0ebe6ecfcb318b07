package models

import "time"

// Verdict is the correctness signal salvaged from a tutor reply.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	VerdictUnknown   Verdict = "unknown"
)

// MasteryRecord keeps running totals for one (subject, level, skill).
// CorrectCount never exceeds TotalCount; CurrentStreak resets to zero
// on any non-correct event.
type MasteryRecord struct {
	Subject       string    `json:"subject" db:"subject"`
	Level         string    `json:"level" db:"level"`
	Skill         string    `json:"skill" db:"skill"`
	CorrectCount  int       `json:"correct_count" db:"correct_count"`
	TotalCount    int       `json:"total_count" db:"total_count"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LastUpdatedAt time.Time `json:"last_updated_at" db:"last_updated_at"`
}

// Event is one append-only progress observation. The log is trimmed to
// the most recent 500 entries, oldest first.
type Event struct {
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Subject   string    `json:"subject" db:"subject"`
	Level     string    `json:"level" db:"level"`
	Skill     string    `json:"skill" db:"skill"`
	Correct   bool      `json:"correct" db:"correct"`
}

// SkillReport is one row of a windowed rollup.
type SkillReport struct {
	Skill           string `json:"skill"`
	Correct         int    `json:"correct"`
	Total           int    `json:"total"`
	AccuracyPercent int    `json:"accuracy_percent"`
}

// StudentProfile holds the persisted accessibility and learning-profile
// flags. It survives session resets and progress clears.
type StudentProfile struct {
	Accessibility   Accessibility   `json:"accessibility"`
	LearningProfile LearningProfile `json:"learningProfile"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
