package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-screening-backend/internal/domain"
)

type candidateStore struct {
	dir string
}

// NewCandidateStore keeps one document per candidate under
// dataDir/candidates/{id}.json.
func NewCandidateStore(dataDir string) (domain.CandidateRepository, error) {
	dir := filepath.Join(dataDir, "candidates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create candidates dir: %w", err)
	}
	return &candidateStore{dir: dir}, nil
}

func (s *candidateStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *candidateStore) Save(ctx context.Context, candidate *domain.Candidate) error {
	if candidate.ID == "" {
		return fmt.Errorf("candidate id is required")
	}
	return writeJSON(s.path(candidate.ID), candidate)
}

func (s *candidateStore) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	var c domain.Candidate
	ok, err := readJSON(s.path(id), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (s *candidateStore) ListIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *candidateStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
