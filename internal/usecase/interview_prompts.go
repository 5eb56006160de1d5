package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-screening-backend/internal/domain"
)

const interviewerSystemPrompt = "You are a concise, fair technical interviewer. " +
	"Generate clear, unambiguous questions and keep outputs in JSON when asked."

const evaluatorSystemPrompt = "You are a strict but fair technical interviewer. Reply with JSON only."

const questionsInstruction = "Produce structured interview questions for the candidate's " +
	"technology at the requested difficulty. Return JSON with the top-level key 'questions' " +
	"as a list of items, each item having keys: 'topic' (string), 'question' (string), and " +
	"'difficulty' in {'beginner','intermediate','advanced'}."

type exampleQuestion struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question"`
}

// Few-shot examples keyed by canonical technology name. Only sent when
// the requested technology has entries.
var questionExamples = map[string][]exampleQuestion{
	"Python": {
		{Topic: "Python", Difficulty: "beginner",
			Question: "Explain what a list and a dict are in Python and show a short example."},
		{Topic: "Python", Difficulty: "intermediate",
			Question: "When would a context manager be used? Provide a short with-statement example."},
	},
	"Django": {
		{Topic: "Django", Difficulty: "beginner",
			Question: "What are models, views, and templates? Give a brief overview."},
	},
	"SQL": {
		{Topic: "SQL", Difficulty: "intermediate",
			Question: "Compare INNER JOIN and LEFT JOIN with a simple example."},
	},
}

func buildQuestionsPrompt(technology string, difficulty domain.Difficulty, n int, language string) string {
	var b strings.Builder
	b.WriteString(questionsInstruction)
	fmt.Fprintf(&b, "\n\nTechnology: %s\nDifficulty: %s\nNumber of questions: %d\n", technology, difficulty, n)
	if examples := questionExamples[technology]; len(examples) > 0 {
		if enc, err := json.Marshal(map[string]any{"examples": examples}); err == nil {
			b.WriteString("\n")
			b.Write(enc)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	if language != "" {
		fmt.Fprintf(&b, "Respond in ISO language '%s'. ", language)
	}
	b.WriteString("Return JSON only.")
	return b.String()
}

func buildEvalPrompt(question domain.Question, answer, language string) string {
	rubric := fmt.Sprintf("Topic: %s. Difficulty: %s. Judge correctness, clarity, key concepts, "+
		"and presence of a brief example when appropriate.", question.Technology, question.Difficulty)
	payload, _ := json.Marshal(map[string]string{
		"rubric":   rubric,
		"question": question.Text,
		"answer":   answer,
		"language": language,
	})
	return string(payload) + "\n\nReturn JSON only with keys: 'score' (integer 0-100), " +
		"'verdict' in {'pass','needs_improvement'}, and 'feedback' (string)."
}
