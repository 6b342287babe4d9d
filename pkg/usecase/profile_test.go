package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/usecase"
)

func TestProfileUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		created, err := uc.Profile.Create(ctx, &model.Profile{ID: "u1", Name: "Dana Smith"})
		gt.NoError(t, err).Required()
		gt.Value(t, created.LastActive.IsZero()).Equal(false)

		got, err := uc.Profile.Get(ctx, "u1")
		gt.NoError(t, err)
		gt.Value(t, got.Name).Equal("Dana Smith")
	})

	t.Run("duplicate ID is rejected", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Profile.Create(ctx, &model.Profile{ID: "u1"})
		gt.NoError(t, err)
		_, err = uc.Profile.Create(ctx, &model.Profile{ID: "u1"})
		gt.Bool(t, errors.Is(err, usecase.ErrProfileExists)).True()
	})

	t.Run("get of unknown profile is not found", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Profile.Get(ctx, "nobody")
		gt.Bool(t, errors.Is(err, usecase.ErrProfileNotFound)).True()
	})

	t.Run("update of unknown profile is not found", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Profile.Update(ctx, &model.Profile{ID: "nobody"})
		gt.Bool(t, errors.Is(err, usecase.ErrProfileNotFound)).True()
	})
}

func TestResumeUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("create requires an existing owner", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Resume.Create(ctx, &model.Resume{ProfileID: "nobody"})
		gt.Bool(t, errors.Is(err, usecase.ErrProfileNotFound)).True()
	})

	t.Run("create bumps resumes_created", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Profile.Create(ctx, &model.Profile{ID: "u1"})
		gt.NoError(t, err).Required()

		created, err := uc.Resume.Create(ctx, &model.Resume{ProfileID: "u1", Summary: "Engineer"})
		gt.NoError(t, err).Required()
		gt.Value(t, string(created.ID)).NotEqual("")

		profile, err := uc.Profile.Get(ctx, "u1")
		gt.NoError(t, err)
		gt.Number(t, profile.ResumesCreated).Equal(1)
	})

	t.Run("latest returns the most recently updated resume", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Profile.Create(ctx, &model.Profile{ID: "u1"})
		gt.NoError(t, err).Required()

		first, err := uc.Resume.Create(ctx, &model.Resume{ProfileID: "u1", Summary: "First"})
		gt.NoError(t, err).Required()
		second, err := uc.Resume.Create(ctx, &model.Resume{ProfileID: "u1", Summary: "Second"})
		gt.NoError(t, err).Required()

		second.Summary = "Second updated"
		_, err = uc.Resume.Update(ctx, second)
		gt.NoError(t, err).Required()

		latest, err := uc.Resume.Latest(ctx, "u1")
		gt.NoError(t, err)
		gt.Value(t, latest.ID).Equal(second.ID)

		resumes, err := uc.Resume.List(ctx, "u1")
		gt.NoError(t, err)
		gt.Array(t, resumes).Length(2)
		gt.Value(t, resumes[1].ID).Equal(first.ID)
	})

	t.Run("latest with no resume is not found", func(t *testing.T) {
		uc := usecase.New(newMemoryRepo())
		_, err := uc.Resume.Latest(ctx, "u1")
		gt.Bool(t, errors.Is(err, usecase.ErrResumeNotFound)).True()
	})
}
