package usecase

import (
	"context"
	"strings"

	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/logger"
)

// candidateUsecase backs the admin record endpoints. Records only exist
// for candidates who consented, so nothing here re-checks consent.
type candidateUsecase struct {
	repo domain.CandidateRepository
}

func NewCandidateUsecase(repo domain.CandidateRepository) domain.CandidateUsecase {
	return &candidateUsecase{repo: repo}
}

func (u *candidateUsecase) ListRecords(ctx context.Context) ([]string, error) {
	ids, err := u.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (u *candidateUsecase) GetRecord(ctx context.Context, id string) (*domain.Candidate, error) {
	record, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("Candidate record not found")
	}
	return record, nil
}

func (u *candidateUsecase) DeleteRecord(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	record, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return apperror.NotFound("Candidate record not found")
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("candidate record deleted", "candidate_id", id)
	return nil
}
