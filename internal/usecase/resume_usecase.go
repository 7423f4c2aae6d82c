package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/filecheck"
	"recruitment-platform/pkg/storage"
)

const maxResumeSize = 5 << 20 // 5 MiB

type resumeUsecase struct {
	resumeRepo  domain.ResumeRepository
	profileRepo domain.JobSeekerProfileRepository
	store       *storage.ObjectStore
	notifier    domain.Notifier
}

func NewResumeUsecase(
	resumeRepo domain.ResumeRepository,
	profileRepo domain.JobSeekerProfileRepository,
	store *storage.ObjectStore,
	notifier domain.Notifier,
) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo:  resumeRepo,
		profileRepo: profileRepo,
		store:       store,
		notifier:    notifier,
	}
}

// Upload validates the file, stores it under an opaque key and records the
// resume. New resumes start inactive.
func (uc *resumeUsecase) Upload(ctx context.Context, caller *domain.User, title string, filename string, content []byte) (*domain.Resume, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers can upload resumes")
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.BadRequest("Create a job seeker profile before uploading resumes")
		}
		return nil, apperror.Internal(err)
	}

	if len(content) == 0 {
		return nil, apperror.BadRequest("Resume file is empty")
	}
	if len(content) > maxResumeSize {
		return nil, apperror.BadRequest("Resume file exceeds the 5 MB limit")
	}
	contentType, err := filecheck.Validate(filename, content)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	id := uuid.New().String()
	key := fmt.Sprintf("resumes/%s/%s%s", profile.ID, id, filepath.Ext(filename))
	fileURL, err := uc.store.Put(ctx, key, contentType, content)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var titlePtr *string
	if title != "" {
		titlePtr = &title
	}
	resume := &domain.Resume{
		ID:                 id,
		JobSeekerProfileID: profile.ID,
		Title:              titlePtr,
		FileURL:            fileURL,
		IsActive:           false,
		CreatedAt:          time.Now(),
		OwnerUserID:        &caller.ID,
	}
	if err := uc.resumeRepo.Create(ctx, resume); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifier.ResumeCreated(ctx, resume)
	return resume, nil
}

func (uc *resumeUsecase) ListMine(ctx context.Context, caller *domain.User) ([]domain.Resume, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers have resumes")
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Resume{}, nil
		}
		return nil, apperror.Internal(err)
	}
	resumes, err := uc.resumeRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}

// Activate marks the resume active and deactivates its siblings atomically.
func (uc *resumeUsecase) Activate(ctx context.Context, caller *domain.User, resumeID string) (*domain.Resume, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers have resumes")
	}
	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, apperror.Internal(err)
	}
	if !authz.OwnsResume(caller, resume) {
		return nil, apperror.NotFound("Resume not found")
	}
	if err := uc.resumeRepo.Activate(ctx, resume.JobSeekerProfileID, resume.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	resume.IsActive = true
	uc.notifier.ResumeActivated(ctx, resume)
	return resume, nil
}
