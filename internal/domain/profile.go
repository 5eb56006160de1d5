package domain

import (
	"context"
	"strings"
	"time"
)

// Difficulty represents the question difficulty tier for a candidate
type Difficulty string

const (
	DifficultyAuto         Difficulty = "auto"
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ValidDifficulties returns all valid difficulty tiers
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyAuto, DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// IsValid checks if the difficulty tier is valid
func (d Difficulty) IsValid() bool {
	for _, valid := range ValidDifficulties() {
		if d == valid {
			return true
		}
	}
	return false
}

// MaxRecentTopics bounds the profile's topic history; the oldest entry
// is evicted first.
const MaxRecentTopics = 8

// Profile carries the per-candidate preferences that survive across
// sessions. There is at most one profile per email; lookups are
// case-insensitive on the email key.
type Profile struct {
	Email        string     `json:"email"`
	Language     string     `json:"language"`
	Difficulty   Difficulty `json:"preferred_difficulty"`
	RecentTopics []string   `json:"recent_topics"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DefaultProfile is what an unknown email resolves to.
func DefaultProfile(email string) *Profile {
	return &Profile{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Language:     "en",
		Difficulty:   DifficultyAuto,
		RecentTopics: []string{},
	}
}

// PushRecentTopics prepends topics keeping the list deduplicated and
// bounded to MaxRecentTopics.
func (p *Profile) PushRecentTopics(topics ...string) {
	merged := make([]string, 0, len(topics)+len(p.RecentTopics))
	seen := make(map[string]bool, len(topics)+len(p.RecentTopics))
	for _, t := range append(append([]string{}, topics...), p.RecentTopics...) {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, strings.TrimSpace(t))
	}
	if len(merged) > MaxRecentTopics {
		merged = merged[:MaxRecentTopics]
	}
	p.RecentTopics = merged
}

type ProfileRepository interface {
	// Get returns (nil, nil) when no profile exists for the email.
	Get(ctx context.Context, email string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
