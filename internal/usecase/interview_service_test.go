package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error")
	os.Exit(m.Run())
}

type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockChatClient) Provider() string {
	return "mock"
}

func TestGenerateQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Should serve the static ladder in offline mode", func(t *testing.T) {
		svc := usecase.NewInterviewService(nil, false)

		questions, err := svc.GenerateQuestions(ctx, "Python", domain.DifficultyIntermediate, 3, "en")
		assert.NoError(t, err)
		assert.Len(t, questions, 3)
		assert.Equal(t, "Python", questions[0].Technology)
		assert.Equal(t, domain.DifficultyBeginner, questions[0].Difficulty)
		assert.Contains(t, questions[0].Text, "Explain fundamentals of Python")
		assert.Equal(t, domain.DifficultyAdvanced, questions[2].Difficulty)
	})

	t.Run("Should parse a questions object from the model", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
			`{"questions": [
				{"topic": "Go", "question": "What is a goroutine?", "difficulty": "beginner"},
				{"topic": "Go", "question": "Explain channel select.", "difficulty": "intermediate"},
				{"topic": "Go", "question": "Design a worker pool.", "difficulty": "advanced"}
			]}`, nil)
		svc := usecase.NewInterviewService(client, false)

		questions, err := svc.GenerateQuestions(ctx, "Go", domain.DifficultyIntermediate, 3, "en")
		assert.NoError(t, err)
		assert.Len(t, questions, 3)
		assert.Equal(t, "What is a goroutine?", questions[0].Text)
		assert.Equal(t, domain.DifficultyBeginner, questions[0].Difficulty)
		assert.Equal(t, "Go", questions[0].Technology)
		client.AssertExpectations(t)
	})

	t.Run("Should accept a bare array and cap at n", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
			`[
				{"question": "Q1"}, {"question": "Q2"}, {"question": "Q3"},
				{"question": "Q4"}, {"question": "Q5"}
			]`, nil)
		svc := usecase.NewInterviewService(client, false)

		questions, err := svc.GenerateQuestions(ctx, "SQL", domain.DifficultyBeginner, 3, "en")
		assert.NoError(t, err)
		assert.Len(t, questions, 3)
	})

	t.Run("Should inherit the requested difficulty for unknown tiers", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
			`{"questions": [{"question": "Q1", "difficulty": "expert"}, {"question": "Q2", "difficulty": "auto"}, {"question": "Q3"}]}`, nil)
		svc := usecase.NewInterviewService(client, false)

		questions, err := svc.GenerateQuestions(ctx, "Docker", domain.DifficultyAdvanced, 3, "en")
		assert.NoError(t, err)
		for _, q := range questions {
			assert.Equal(t, domain.DifficultyAdvanced, q.Difficulty)
		}
	})

	t.Run("Should skip items without question text", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
			`{"questions": [{"question": "  "}, {"question": "Real question"}]}`, nil)
		svc := usecase.NewInterviewService(client, false)

		questions, err := svc.GenerateQuestions(ctx, "React", domain.DifficultyBeginner, 3, "en")
		assert.NoError(t, err)
		assert.Len(t, questions, 1)
		assert.Equal(t, "Real question", questions[0].Text)
	})

	t.Run("Should fall back to the ladder on unparseable replies", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("I refuse to answer in JSON.", nil)
		svc := usecase.NewInterviewService(client, false)

		questions, err := svc.GenerateQuestions(ctx, "Python", domain.DifficultyBeginner, 3, "en")
		assert.Error(t, err)
		var modelErr *apperror.ModelCallFailed
		assert.True(t, errors.As(err, &modelErr))
		assert.Equal(t, "mock", modelErr.Provider)
		assert.Len(t, questions, 3)
		assert.Contains(t, questions[0].Text, "Explain fundamentals of Python")
	})

	t.Run("Should fall back to the ladder on transport failure", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("connection reset"))
		svc := usecase.NewInterviewService(client, false)

		questions, err := svc.GenerateQuestions(ctx, "Django", domain.DifficultyIntermediate, 3, "en")
		assert.Error(t, err)
		assert.Len(t, questions, 3)
	})
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	pythonQuestion := domain.Question{Technology: "Python", Difficulty: domain.DifficultyBeginner, Text: "Explain functions."}

	t.Run("Should grade heuristically when model grading is off", func(t *testing.T) {
		client := new(MockChatClient)
		svc := usecase.NewInterviewService(client, false)

		ev, err := svc.Evaluate(ctx, "I would use a function and a class with a loop.", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, 90, ev.Score)
		assert.Equal(t, domain.VerdictPass, ev.Verdict)
		assert.Equal(t, "Covers several key concepts.", ev.Feedback)
		client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should grade heuristically with a nil client", func(t *testing.T) {
		svc := usecase.NewInterviewService(nil, true)

		ev, err := svc.Evaluate(ctx, "idk", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, domain.VerdictNeedsImprovement, ev.Verdict)
		assert.Equal(t, 35, ev.Score)
	})

	t.Run("Should be deterministic for identical input", func(t *testing.T) {
		svc := usecase.NewInterviewService(nil, false)

		first, err := svc.Evaluate(ctx, "A generator with a loop.", pythonQuestion, "en")
		assert.NoError(t, err)
		second, err := svc.Evaluate(ctx, "A generator with a loop.", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Should pass long answers without keyword hits", func(t *testing.T) {
		svc := usecase.NewInterviewService(nil, false)
		long := "When I approach problems of this kind I first reproduce the issue, then I isolate it and measure."

		ev, err := svc.Evaluate(ctx, long, domain.Question{Technology: "Kubernetes"}, "en")
		assert.NoError(t, err)
		assert.Equal(t, domain.VerdictPass, ev.Verdict)
		assert.Equal(t, 70, ev.Score)
	})

	t.Run("Should use the model verdict when grading is on", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
			`{"score": 82, "verdict": "pass", "feedback": "Solid answer."}`, nil)
		svc := usecase.NewInterviewService(client, true)

		ev, err := svc.Evaluate(ctx, "some answer", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, 82, ev.Score)
		assert.Equal(t, domain.VerdictPass, ev.Verdict)
		assert.Equal(t, "Solid answer.", ev.Feedback)
		assert.False(t, ev.Fallback)
	})

	t.Run("Should derive the verdict from a bare score", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(`{"score": 44}`, nil)
		svc := usecase.NewInterviewService(client, true)

		ev, err := svc.Evaluate(ctx, "some answer", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, 44, ev.Score)
		assert.Equal(t, domain.VerdictNeedsImprovement, ev.Verdict)
	})

	t.Run("Should normalize spaced verdicts and assign a default score", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(`{"verdict": "Needs Improvement"}`, nil)
		svc := usecase.NewInterviewService(client, true)

		ev, err := svc.Evaluate(ctx, "some answer", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, domain.VerdictNeedsImprovement, ev.Verdict)
		assert.Equal(t, 40, ev.Score)
	})

	t.Run("Should clamp out-of-range scores", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(`{"score": 140, "verdict": "pass"}`, nil)
		svc := usecase.NewInterviewService(client, true)

		ev, err := svc.Evaluate(ctx, "some answer", pythonQuestion, "en")
		assert.NoError(t, err)
		assert.Equal(t, 100, ev.Score)
	})

	t.Run("Should fall back to the heuristic on model failure", func(t *testing.T) {
		client := new(MockChatClient)
		client.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("timeout"))
		svc := usecase.NewInterviewService(client, true)

		ev, err := svc.Evaluate(ctx, "I would use a function and a class with a loop.", pythonQuestion, "en")
		assert.Error(t, err)
		var modelErr *apperror.ModelCallFailed
		assert.True(t, errors.As(err, &modelErr))
		assert.True(t, ev.Fallback)
		assert.Equal(t, 90, ev.Score)
	})
}
