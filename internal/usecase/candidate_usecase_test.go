package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/apperror"
)

func TestListRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the stored ids", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("ListIDs", mock.Anything).Return([]string{"aa11", "bb22"}, nil)

		ids, err := usecase.NewCandidateUsecase(repo).ListRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"aa11", "bb22"}, ids)
	})

	t.Run("Should return an empty slice instead of nil", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("ListIDs", mock.Anything).Return(nil, nil)

		ids, err := usecase.NewCandidateUsecase(repo).ListRecords(ctx)
		require.NoError(t, err)
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
	})

	t.Run("Should pass storage errors through", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("ListIDs", mock.Anything).Return(nil, errors.New("unreadable directory"))

		_, err := usecase.NewCandidateUsecase(repo).ListRecords(ctx)
		assert.Error(t, err)
	})
}

func TestGetRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Should trim the id before the lookup", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByID", mock.Anything, "aa11").Return(&domain.Candidate{ID: "aa11", FullName: "John Smith"}, nil)

		record, err := usecase.NewCandidateUsecase(repo).GetRecord(ctx, "  aa11  ")
		require.NoError(t, err)
		assert.Equal(t, "John Smith", record.FullName)
	})

	t.Run("Should report missing records as not found", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		_, err := usecase.NewCandidateUsecase(repo).GetRecord(ctx, "nope")
		require.Error(t, err)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
		assert.Contains(t, appErr.Message, "Candidate record not found")
	})
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete an existing record", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByID", mock.Anything, "aa11").Return(&domain.Candidate{ID: "aa11"}, nil)
		repo.On("Delete", mock.Anything, "aa11").Return(nil)

		err := usecase.NewCandidateUsecase(repo).DeleteRecord(ctx, "aa11")
		require.NoError(t, err)
		repo.AssertCalled(t, "Delete", mock.Anything, "aa11")
	})

	t.Run("Should not delete what does not exist", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		err := usecase.NewCandidateUsecase(repo).DeleteRecord(ctx, "nope")
		require.Error(t, err)
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
