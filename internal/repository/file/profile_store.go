package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-screening-backend/internal/domain"
)

type profileStore struct {
	dir string
}

// NewProfileStore keeps one document per candidate email under
// dataDir/profiles. Keys are lowercased so repeat visits with different
// casing land on the same profile.
func NewProfileStore(dataDir string) (domain.ProfileRepository, error) {
	dir := filepath.Join(dataDir, "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}
	return &profileStore{dir: dir}, nil
}

func profileKey(email string) string {
	key := strings.ToLower(strings.TrimSpace(email))
	return strings.ReplaceAll(key, "/", "_")
}

func (s *profileStore) path(email string) string {
	return filepath.Join(s.dir, profileKey(email)+".json")
}

func (s *profileStore) Get(ctx context.Context, email string) (*domain.Profile, error) {
	if email == "" {
		return nil, nil
	}
	var p domain.Profile
	ok, err := readJSON(s.path(email), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (s *profileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.Email == "" {
		return errors.New("profile email is required")
	}
	return writeJSON(s.path(profile.Email), profile)
}
