package usecase

import (
	"fmt"
	"strings"

	"go-screening-backend/internal/domain"
)

// fallbackLadder builds the static three-question ladder used whenever
// the model is unavailable. One question per difficulty keeps the
// assessment meaningful without any external call.
func fallbackLadder(technology string) []domain.Question {
	return []domain.Question{
		{Technology: technology, Difficulty: domain.DifficultyBeginner,
			Text: fmt.Sprintf("Explain fundamentals of %s and show a simple example.", technology)},
		{Technology: technology, Difficulty: domain.DifficultyIntermediate,
			Text: fmt.Sprintf("Describe a debugging incident you solved in %s.", technology)},
		{Technology: technology, Difficulty: domain.DifficultyAdvanced,
			Text: fmt.Sprintf("Design for performance/reliability in %s under load. What are the key trade-offs?", technology)},
	}
}

// Per-topic keyword lists for heuristic grading when no model verdict
// is available.
var gradingKeywords = map[string][]string{
	"python":     {"function", "class", "list", "dict", "loop", "with", "context", "generator", "example"},
	"django":     {"model", "view", "template", "orm", "queryset", "middleware", "settings", "migration"},
	"react":      {"state", "props", "hook", "component", "useeffect", "memo", "render", "jsx"},
	"sql":        {"select", "join", "index", "transaction", "foreign key", "where", "group by", "explain"},
	"docker":     {"image", "container", "dockerfile", "build", "compose", "registry", "volume", "network"},
	"kubernetes": {"pod", "deployment", "service", "ingress", "namespace", "cluster", "helm", "scaling"},
	"pytorch":    {"tensor", "autograd", "module", "optimizer", "dataset", "dataloader", "backward"},
}

const (
	passFeedback  = "Covers several key concepts."
	improvementFb = "Add key concepts and a small code/example to strengthen the answer."
)

// heuristicEvaluation grades by keyword coverage: two topic keywords or
// a reasonably long answer passes. Deterministic for identical input.
func heuristicEvaluation(question domain.Question, answer string) *domain.Evaluation {
	text := " " + strings.ToLower(answer) + " "
	hits := 0
	for _, kw := range gradingKeywords[strings.ToLower(question.Technology)] {
		if strings.Contains(text, kw) {
			hits++
		}
	}

	pass := hits >= 2 || len(strings.TrimSpace(answer)) >= 80
	base := 35
	verdict := domain.VerdictNeedsImprovement
	feedback := improvementFb
	if pass {
		base = 70
		verdict = domain.VerdictPass
		feedback = passFeedback
	}
	return &domain.Evaluation{
		Score:    base + 5*min(hits, 5),
		Verdict:  verdict,
		Feedback: feedback,
	}
}
