package domain

import (
	"context"
	"strings"
	"time"
)

// TechStack groups the candidate's technologies into the four categories
// used for assessment planning. Category membership is a set: order of
// entry does not matter and duplicates are removed during matching.
type TechStack struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
	Tools      []string `json:"tools"`
}

func (ts TechStack) IsEmpty() bool {
	return len(ts.Languages)+len(ts.Frameworks)+len(ts.Databases)+len(ts.Tools) == 0
}

// All returns every technology in stack order: languages first, then
// frameworks, databases and tools. Assessment planning consumes this order.
func (ts TechStack) All() []string {
	out := make([]string, 0, len(ts.Languages)+len(ts.Frameworks)+len(ts.Databases)+len(ts.Tools))
	out = append(out, ts.Languages...)
	out = append(out, ts.Frameworks...)
	out = append(out, ts.Databases...)
	out = append(out, ts.Tools...)
	return out
}

type Candidate struct {
	ID              string     `json:"candidate_id"`
	Consent         bool       `json:"consent"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	YearsExperience float64    `json:"years_experience"`
	Positions       []string   `json:"desired_positions"`
	Location        string     `json:"current_location"`
	TechStack       TechStack  `json:"tech_stack"`
	Language        string     `json:"language"`
	Exchanges       []Exchange `json:"exchanges,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NormalizedEmail is the case-insensitive key the profile store uses.
func (c *Candidate) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(c.Email))
}

type CandidateRepository interface {
	Save(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type CandidateUsecase interface {
	ListRecords(ctx context.Context) ([]string, error)
	GetRecord(ctx context.Context, id string) (*Candidate, error)
	DeleteRecord(ctx context.Context, id string) error
}
