package models

const (
	TaskTutor    = "tutor"
	TaskPractice = "practice"
	TaskGrade    = "grade"

	ModeSession = "session"
	ModeNormal  = "normal"

	RoleStudent = "student"
	RoleTutor   = "tutor"
)

type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Accessibility struct {
	DyslexiaMode  bool `json:"dyslexiaMode"`
	PlainLanguage bool `json:"plainLanguage"`
	FocusMode     bool `json:"focusMode"`
}

type LearningProfile struct {
	ADHD        bool `json:"adhd"`
	Dyslexia    bool `json:"dyslexia"`
	Dyscalculia bool `json:"dyscalculia"`
	Autism      bool `json:"autism"`
	Anxiety     bool `json:"anxiety"`
	ELL         bool `json:"ell"`
}

type TutorRequest struct {
	Task            string          `json:"task"`
	Subject         string          `json:"subject"`
	Level           string          `json:"level"`
	Style           string          `json:"style"`
	Accessibility   Accessibility   `json:"accessibility"`
	LearningProfile LearningProfile `json:"learningProfile"`
	Mode            string          `json:"mode"`
	CoachMode       *bool           `json:"coachMode"`
	History         []Turn          `json:"history"`
	Message         *string         `json:"message"`
	Attempts        int             `json:"attempts"`
}

type TutorResponse struct {
	Reply string `json:"reply"`
}
