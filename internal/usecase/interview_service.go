package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/llm"
	"go-screening-backend/pkg/logger"
)

const (
	minQuestionsPerTopic = 3
	maxQuestionsPerTopic = 5
)

type interviewService struct {
	client      llm.ChatClient
	evalAnswers bool
}

// NewInterviewService wires a chat client into the question/evaluation
// contract. A nil client puts the service in offline mode: static
// question ladders and heuristic grading, with no error reported.
func NewInterviewService(client llm.ChatClient, evalAnswers bool) domain.InterviewService {
	return &interviewService{client: client, evalAnswers: evalAnswers}
}

func (s *interviewService) GenerateQuestions(ctx context.Context, technology string, difficulty domain.Difficulty, n int, language string) ([]domain.Question, error) {
	if n < minQuestionsPerTopic {
		n = minQuestionsPerTopic
	} else if n > maxQuestionsPerTopic {
		n = maxQuestionsPerTopic
	}
	if s.client == nil {
		return fallbackLadder(technology), nil
	}

	raw, err := s.client.Complete(ctx, interviewerSystemPrompt, buildQuestionsPrompt(technology, difficulty, n, language))
	if err == nil {
		var questions []domain.Question
		if questions, err = parseQuestions(raw, technology, difficulty, n); err == nil {
			return questions, nil
		}
	}
	logger.Log.Warn("question generation failed, using fallback ladder",
		"provider", s.client.Provider(), "technology", technology, "error", err)
	return fallbackLadder(technology), &apperror.ModelCallFailed{Provider: s.client.Provider(), Err: err}
}

func (s *interviewService) Evaluate(ctx context.Context, answer string, question domain.Question, language string) (*domain.Evaluation, error) {
	if !s.evalAnswers || s.client == nil {
		return heuristicEvaluation(question, answer), nil
	}

	raw, err := s.client.Complete(ctx, evaluatorSystemPrompt, buildEvalPrompt(question, answer, language))
	if err == nil {
		var ev *domain.Evaluation
		if ev, err = parseEvaluation(raw); err == nil {
			return ev, nil
		}
	}
	logger.Log.Warn("answer evaluation failed, using heuristic grade",
		"provider", s.client.Provider(), "technology", question.Technology, "error", err)
	ev := heuristicEvaluation(question, answer)
	ev.Fallback = true
	return ev, &apperror.ModelCallFailed{Provider: s.client.Provider(), Err: err}
}

type modelQuestion struct {
	Topic      string `json:"topic"`
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
}

// parseQuestions accepts either {"questions": [...]} or a bare array.
// Items without question text are dropped; unrecognized difficulties
// inherit the requested one.
func parseQuestions(raw, technology string, difficulty domain.Difficulty, n int) ([]domain.Question, error) {
	doc, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var items []modelQuestion
	if strings.HasPrefix(doc, "[") {
		err = json.Unmarshal([]byte(doc), &items)
	} else {
		var payload struct {
			Questions []modelQuestion `json:"questions"`
		}
		err = json.Unmarshal([]byte(doc), &payload)
		items = payload.Questions
	}
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, n)
	for _, item := range items {
		text := strings.TrimSpace(item.Question)
		if text == "" {
			continue
		}
		d := domain.Difficulty(strings.ToLower(strings.TrimSpace(item.Difficulty)))
		if !d.IsValid() || d == domain.DifficultyAuto {
			d = difficulty
		}
		questions = append(questions, domain.Question{Technology: technology, Difficulty: d, Text: text})
		if len(questions) == n {
			break
		}
	}
	if len(questions) == 0 {
		return nil, errors.New("no usable questions in model reply")
	}
	return questions, nil
}

func parseEvaluation(raw string) (*domain.Evaluation, error) {
	doc, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Score    *float64 `json:"score"`
		Verdict  string   `json:"verdict"`
		Feedback string   `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, err
	}

	verdict := domain.Verdict(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(payload.Verdict)), " ", "_"))
	validVerdict := verdict == domain.VerdictPass || verdict == domain.VerdictNeedsImprovement
	if payload.Score == nil && !validVerdict {
		return nil, errors.New("model verdict missing or unrecognized")
	}

	var score int
	switch {
	case payload.Score != nil:
		score = int(math.Round(*payload.Score))
		if score < 0 {
			score = 0
		} else if score > 100 {
			score = 100
		}
		if !validVerdict {
			verdict = domain.VerdictNeedsImprovement
			if score >= 60 {
				verdict = domain.VerdictPass
			}
		}
	case verdict == domain.VerdictPass:
		score = 75
	default:
		score = 40
	}

	return &domain.Evaluation{
		Score:    score,
		Verdict:  verdict,
		Feedback: strings.TrimSpace(payload.Feedback),
	}, nil
}
