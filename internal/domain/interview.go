package domain

import "context"

type Question struct {
	Technology string     `json:"technology"`
	Difficulty Difficulty `json:"difficulty"`
	Text       string     `json:"text"`
}

// Verdict represents the evaluation outcome for an answer
type Verdict string

const (
	VerdictPass             Verdict = "pass"
	VerdictNeedsImprovement Verdict = "needs_improvement"
)

// Evaluation scores a free-text answer. Score is always within 0-100.
type Evaluation struct {
	Score    int     `json:"score"`
	Verdict  Verdict `json:"verdict"`
	Feedback string  `json:"feedback"`
	Fallback bool    `json:"fallback,omitempty"`
}

// Exchange is one asked question with the candidate's answer and its
// evaluation, kept on the persisted candidate record.
type Exchange struct {
	Question   Question    `json:"question"`
	Answer     string      `json:"answer"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}

// Assessment tracks the per-technology question loop inside a session.
// Difficulty is fixed when the plan is made and holds for every topic.
type Assessment struct {
	Topics      []string   `json:"topics"`
	TopicIdx    int        `json:"topic_idx"`
	Difficulty  Difficulty `json:"difficulty"`
	Questions   []Question `json:"questions"`
	QuestionIdx int        `json:"question_idx"`
	Exchanges   []Exchange `json:"exchanges"`
}

// CurrentTopic returns the technology under assessment, if any remain.
func (a *Assessment) CurrentTopic() (string, bool) {
	if a == nil || a.TopicIdx >= len(a.Topics) {
		return "", false
	}
	return a.Topics[a.TopicIdx], true
}

// CurrentQuestion returns the pending question for the current topic.
func (a *Assessment) CurrentQuestion() (Question, bool) {
	if a == nil || a.QuestionIdx >= len(a.Questions) {
		return Question{}, false
	}
	return a.Questions[a.QuestionIdx], true
}

// Done reports whether every planned technology's sub-loop completed.
func (a *Assessment) Done() bool {
	return a == nil || a.TopicIdx >= len(a.Topics)
}

// InterviewService generates questions and scores answers. Both methods
// always return usable content: when the model API stays unreachable for
// the whole retry budget they substitute deterministic fallbacks and
// report what happened through the error value, which callers downgrade
// to a logged warning. The conversation must never stall on either call.
type InterviewService interface {
	GenerateQuestions(ctx context.Context, technology string, difficulty Difficulty, n int, language string) ([]Question, error)
	Evaluate(ctx context.Context, answer string, question Question, language string) (*Evaluation, error)
}
