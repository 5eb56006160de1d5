package postgres

import (
	"context"
	"errors"
	"strings"

	"go-screening-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, email string) (*domain.Profile, error) {
	if email == "" {
		return nil, nil
	}

	query := `
		SELECT email, language, preferred_difficulty, recent_topics, updated_at
		FROM profiles WHERE email = $1`

	var p domain.Profile
	var topics []string
	err := r.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&p.Email, &p.Language, &p.Difficulty, pq.Array(&topics), &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.RecentTopics = topics
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.Email == "" {
		return errors.New("profile email is required")
	}

	query := `
		INSERT INTO profiles (email, language, preferred_difficulty, recent_topics, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (email) DO UPDATE SET
			language = EXCLUDED.language,
			preferred_difficulty = EXCLUDED.preferred_difficulty,
			recent_topics = EXCLUDED.recent_topics,
			updated_at = NOW()`

	_, err := r.db.Exec(ctx, query,
		strings.ToLower(profile.Email), profile.Language,
		profile.Difficulty, pq.Array(profile.RecentTopics),
	)
	return err
}
