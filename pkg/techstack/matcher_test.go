package techstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-screening-backend/pkg/techstack"
)

func TestParseFreeText(t *testing.T) {
	t.Run("Should bucket a comma separated list by category", func(t *testing.T) {
		r := techstack.Parse("Python, Django, PostgreSQL, Docker")
		assert.Equal(t, []string{"Python"}, r.Stack.Languages)
		assert.Equal(t, []string{"Django"}, r.Stack.Frameworks)
		assert.Equal(t, []string{"PostgreSQL"}, r.Stack.Databases)
		assert.Equal(t, []string{"Docker"}, r.Stack.Tools)
		assert.Empty(t, r.Unmatched)
	})

	t.Run("Should keep multiword names split only on real separators", func(t *testing.T) {
		r := techstack.Parse("Java, Spring Boot")
		assert.Equal(t, []string{"Java"}, r.Stack.Languages)
		assert.Equal(t, []string{"Spring Boot"}, r.Stack.Frameworks)
	})

	t.Run("Should treat a double space as a separator", func(t *testing.T) {
		r := techstack.Parse("Python  Docker")
		assert.Equal(t, []string{"Python"}, r.Stack.Languages)
		assert.Equal(t, []string{"Docker"}, r.Stack.Tools)
	})

	t.Run("Should deduplicate repeated entries", func(t *testing.T) {
		r := techstack.Parse("Python, python, PYTHON")
		assert.Equal(t, []string{"Python"}, r.Stack.Languages)
	})

	t.Run("Should return an empty result for empty input", func(t *testing.T) {
		r := techstack.Parse("   ")
		assert.True(t, r.Stack.IsEmpty())
		assert.Empty(t, r.Unmatched)
	})
}

func TestParseAliases(t *testing.T) {
	r := techstack.Parse("postgres, k8s, node, js")
	assert.Equal(t, []string{"JavaScript"}, r.Stack.Languages)
	assert.Equal(t, []string{"Node.js"}, r.Stack.Frameworks)
	assert.Equal(t, []string{"PostgreSQL"}, r.Stack.Databases)
	assert.Equal(t, []string{"Kubernetes"}, r.Stack.Tools)
	assert.Empty(t, r.Unmatched)
}

func TestParseFuzzyMatching(t *testing.T) {
	t.Run("Should correct a close typo", func(t *testing.T) {
		r := techstack.Parse("Kubernets")
		assert.Equal(t, []string{"Kubernetes"}, r.Stack.Tools)
		assert.Empty(t, r.Unmatched)
	})

	t.Run("Should drop tokens below the confidence threshold", func(t *testing.T) {
		r := techstack.Parse("pyton, Django")
		assert.Equal(t, []string{"Django"}, r.Stack.Frameworks)
		assert.Empty(t, r.Stack.Languages)
		assert.Equal(t, []string{"pyton"}, r.Unmatched)
	})

	t.Run("Should report unknown tokens instead of guessing", func(t *testing.T) {
		r := techstack.Parse("Python, juggling")
		assert.Equal(t, []string{"Python"}, r.Stack.Languages)
		assert.Equal(t, []string{"juggling"}, r.Unmatched)
	})

	t.Run("Should drop conversational noise words silently", func(t *testing.T) {
		r := techstack.Parse("snake, Python")
		assert.Equal(t, []string{"Python"}, r.Stack.Languages)
		assert.Empty(t, r.Unmatched)
	})
}

func TestParseJSONShape(t *testing.T) {
	r := techstack.Parse(`{"languages": ["python"], "tools": ["k8s"]}`)
	assert.Equal(t, []string{"Python"}, r.Stack.Languages)
	assert.Equal(t, []string{"Kubernetes"}, r.Stack.Tools)
	assert.Empty(t, r.Unmatched)
}

func TestParseLabeledShape(t *testing.T) {
	t.Run("Should file tokens under their declared category", func(t *testing.T) {
		r := techstack.Parse("languages: python, go\ndatabases: postgres")
		assert.Equal(t, []string{"Python", "Go"}, r.Stack.Languages)
		assert.Equal(t, []string{"PostgreSQL"}, r.Stack.Databases)
	})

	t.Run("Should reject tokens that contradict their label", func(t *testing.T) {
		r := techstack.Parse("languages: python\ndatabases: go")
		assert.Equal(t, []string{"Python"}, r.Stack.Languages)
		assert.Empty(t, r.Stack.Databases)
		assert.Equal(t, []string{"go"}, r.Unmatched)
	})
}
