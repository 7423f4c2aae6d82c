package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type recruiterProfileUsecase struct {
	profileRepo domain.RecruiterProfileRepository
}

func NewRecruiterProfileUsecase(profileRepo domain.RecruiterProfileRepository) domain.RecruiterProfileUsecase {
	return &recruiterProfileUsecase{profileRepo: profileRepo}
}

func (uc *recruiterProfileUsecase) CreateProfile(ctx context.Context, caller *domain.User, profile *domain.RecruiterProfile) error {
	if !authz.IsRecruiter(caller) {
		return apperror.Forbidden("Only recruiters can create a recruiter profile")
	}
	if profile.CompanyName == "" {
		return apperror.BadRequest("Company name is required")
	}
	if existing, err := uc.profileRepo.GetByUserID(ctx, caller.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	} else if existing != nil {
		return apperror.Duplicate(apperror.KindDuplicateIdentity, "You already have a recruiter profile")
	}

	now := time.Now()
	profile.ID = uuid.New().String()
	profile.UserID = caller.ID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *recruiterProfileUsecase) GetMyProfile(ctx context.Context, caller *domain.User) (*domain.RecruiterProfile, error) {
	if !authz.IsRecruiter(caller) {
		return nil, apperror.Forbidden("Switch to the Recruiter role to view your company profile")
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recruiter profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *recruiterProfileUsecase) UpdateProfile(ctx context.Context, caller *domain.User, profile *domain.RecruiterProfile) error {
	if !authz.IsRecruiter(caller) {
		return apperror.Forbidden("Only recruiters can update a recruiter profile")
	}
	if profile.CompanyName == "" {
		return apperror.BadRequest("Company name is required")
	}
	existing, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Recruiter profile not found")
		}
		return apperror.Internal(err)
	}

	profile.ID = existing.ID
	profile.UserID = caller.ID
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ListProfiles is an admin directory of registered companies.
func (uc *recruiterProfileUsecase) ListProfiles(ctx context.Context, caller *domain.User, page, pageSize int) ([]domain.RecruiterProfile, int64, error) {
	if !authz.IsAdmin(caller) {
		return nil, 0, apperror.Forbidden("Only admins can list recruiter profiles")
	}
	limit, offset := pageBounds(page, pageSize)
	profiles, total, err := uc.profileRepo.Fetch(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return profiles, total, nil
}
