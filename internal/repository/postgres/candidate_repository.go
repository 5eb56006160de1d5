package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-screening-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *domain.Candidate) error {
	exchanges, err := json.Marshal(candidate.Exchanges)
	if err != nil {
		return fmt.Errorf("encode exchanges: %w", err)
	}

	query := `
		INSERT INTO candidates (
			id, consent, full_name, email, phone, years_experience,
			desired_positions, current_location,
			languages, frameworks, databases, tools,
			language, exchanges, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			consent = EXCLUDED.consent,
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			years_experience = EXCLUDED.years_experience,
			desired_positions = EXCLUDED.desired_positions,
			current_location = EXCLUDED.current_location,
			languages = EXCLUDED.languages,
			frameworks = EXCLUDED.frameworks,
			databases = EXCLUDED.databases,
			tools = EXCLUDED.tools,
			language = EXCLUDED.language,
			exchanges = EXCLUDED.exchanges,
			updated_at = NOW()`

	_, err = r.db.Exec(ctx, query,
		candidate.ID, candidate.Consent, candidate.FullName, candidate.Email,
		candidate.Phone, candidate.YearsExperience,
		pq.Array(candidate.Positions), candidate.Location,
		pq.Array(candidate.TechStack.Languages), pq.Array(candidate.TechStack.Frameworks),
		pq.Array(candidate.TechStack.Databases), pq.Array(candidate.TechStack.Tools),
		candidate.Language, exchanges,
	)
	if err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `
		SELECT
			id, consent, full_name, email, phone, years_experience,
			desired_positions, current_location,
			languages, frameworks, databases, tools,
			language, exchanges, created_at, updated_at
		FROM candidates WHERE id = $1`

	var c domain.Candidate
	var positions, languages, frameworks, databasesList, tools []string
	var exchanges []byte

	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Consent, &c.FullName, &c.Email, &c.Phone, &c.YearsExperience,
		pq.Array(&positions), &c.Location,
		pq.Array(&languages), pq.Array(&frameworks), pq.Array(&databasesList), pq.Array(&tools),
		&c.Language, &exchanges, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	c.Positions = positions
	c.TechStack = domain.TechStack{
		Languages:  languages,
		Frameworks: frameworks,
		Databases:  databasesList,
		Tools:      tools,
	}
	if len(exchanges) > 0 {
		if err := json.Unmarshal(exchanges, &c.Exchanges); err != nil {
			return nil, fmt.Errorf("decode exchanges: %w", err)
		}
	}
	return &c, nil
}

func (r *candidateRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM candidates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	return err
}
