package domain

import (
	"context"
	"time"
)

// Phase is a named step in the linear conversation flow. Validation
// failure re-enters the same phase; there is no other branching.
type Phase string

const (
	PhaseConsent    Phase = "consent"
	PhaseName       Phase = "name"
	PhaseEmail      Phase = "email"
	PhasePhone      Phase = "phone"
	PhaseExperience Phase = "experience"
	PhasePositions  Phase = "positions"
	PhaseLocation   Phase = "location"
	PhaseTechStack  Phase = "tech_stack"
	PhaseAssessment Phase = "assessment"
	PhaseClosing    Phase = "closing"
)

// ValidPhases returns all conversation phases in flow order
func ValidPhases() []Phase {
	return []Phase{
		PhaseConsent, PhaseName, PhaseEmail, PhasePhone, PhaseExperience,
		PhasePositions, PhaseLocation, PhaseTechStack, PhaseAssessment, PhaseClosing,
	}
}

// IsValid checks if the phase is a known conversation phase
func (p Phase) IsValid() bool {
	for _, valid := range ValidPhases() {
		if p == valid {
			return true
		}
	}
	return false
}

// Next returns the phase that follows p in the linear flow. Closing is
// terminal and returns itself.
func (p Phase) Next() Phase {
	phases := ValidPhases()
	for i, cur := range phases {
		if cur == p && i+1 < len(phases) {
			return phases[i+1]
		}
	}
	return PhaseClosing
}

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment,omitempty"`
	Language  string    `json:"language,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the complete phase-tagged state of one conversation. Turn
// handlers take the session in, mutate it and hand it back to the store;
// no conversation state lives anywhere else.
type Session struct {
	ID         string      `json:"session_id"`
	Phase      Phase       `json:"phase"`
	Candidate  Candidate   `json:"candidate"`
	Profile    *Profile    `json:"profile,omitempty"`
	Transcript []Message   `json:"transcript"`
	Assessment *Assessment `json:"assessment,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Done reports whether the conversation reached its terminal phase.
func (s *Session) Done() bool {
	return s.Phase == PhaseClosing
}

// AssessmentProgress is the cursor position exposed to the client.
type AssessmentProgress struct {
	Topic          string `json:"topic"`
	TopicNumber    int    `json:"topic_number"`
	TopicCount     int    `json:"topic_count"`
	QuestionNumber int    `json:"question_number"`
	QuestionCount  int    `json:"question_count"`
}

// TurnResult is what one processed user message produces.
type TurnResult struct {
	SessionID string              `json:"session_id"`
	Phase     Phase               `json:"phase"`
	Replies   []Message           `json:"replies"`
	Progress  *AssessmentProgress `json:"progress,omitempty"`
	Done      bool                `json:"done"`
}

// StartSessionResponse pairs a fresh session with the bearer token
// that authorizes turns on it.
type StartSessionResponse struct {
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}

// MessageRequest is one user turn
type MessageRequest struct {
	Content string `json:"content" binding:"required,max=4000,not_blank"`
}

// RestoreRequest loads a stored candidate record into a session
type RestoreRequest struct {
	CandidateID string `json:"candidate_id" binding:"required,max=64,record_id"`
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

type ConversationUsecase interface {
	// StartSession creates a session whose transcript already holds the
	// greeting and the consent prompt.
	StartSession(ctx context.Context) (*Session, error)
	// HandleMessage runs one turn of the phase machine. It never returns
	// an error for conversational failures; those become re-prompts,
	// warnings or fallback content inside the TurnResult.
	HandleMessage(ctx context.Context, sessionID, content string) (*TurnResult, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	// SaveRecord persists the candidate record on demand. Requires consent.
	SaveRecord(ctx context.Context, sessionID string) (*Candidate, error)
	// RestoreRecord loads a stored candidate record into the session.
	RestoreRecord(ctx context.Context, sessionID, candidateID string) (*Session, error)
}
