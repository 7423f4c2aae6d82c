package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type jobSeekerProfileUsecase struct {
	profileRepo domain.JobSeekerProfileRepository
	skillRepo   domain.SkillRepository
}

func NewJobSeekerProfileUsecase(
	profileRepo domain.JobSeekerProfileRepository,
	skillRepo domain.SkillRepository,
) domain.JobSeekerProfileUsecase {
	return &jobSeekerProfileUsecase{
		profileRepo: profileRepo,
		skillRepo:   skillRepo,
	}
}

func (uc *jobSeekerProfileUsecase) CreateProfile(ctx context.Context, caller *domain.User, profile *domain.JobSeekerProfile, skillNames []string) error {
	if !authz.IsJobSeeker(caller) {
		return apperror.Forbidden("Only job seekers can create a job seeker profile")
	}
	if existing, err := uc.profileRepo.GetByUserID(ctx, caller.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	} else if existing != nil {
		return apperror.Duplicate(apperror.KindDuplicateIdentity, "You already have a job seeker profile")
	}

	now := time.Now()
	profile.ID = uuid.New().String()
	profile.UserID = caller.ID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return uc.applySkills(ctx, profile, skillNames)
}

func (uc *jobSeekerProfileUsecase) GetMyProfile(ctx context.Context, caller *domain.User) (*domain.JobSeekerProfile, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Switch to the JobSeeker role to view your profile")
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job seeker profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *jobSeekerProfileUsecase) UpdateProfile(ctx context.Context, caller *domain.User, profile *domain.JobSeekerProfile, skillNames []string) error {
	if !authz.IsJobSeeker(caller) {
		return apperror.Forbidden("Only job seekers can update a job seeker profile")
	}
	existing, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job seeker profile not found")
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
	return uc.applySkills(ctx, profile, skillNames)
}

// ListSkills returns the shared skill catalog used for autocompletion.
func (uc *jobSeekerProfileUsecase) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	skills, err := uc.skillRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return skills, nil
}

// applySkills resolves skill names to rows, creating unseen ones, and
// replaces the profile's skill set. Names are matched case-insensitively.
func (uc *jobSeekerProfileUsecase) applySkills(ctx context.Context, profile *domain.JobSeekerProfile, skillNames []string) error {
	if skillNames == nil {
		return nil
	}
	seen := make(map[string]bool, len(skillNames))
	skillIDs := make([]string, 0, len(skillNames))
	skills := make([]domain.Skill, 0, len(skillNames))
	for _, name := range skillNames {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		skill, err := uc.skillRepo.GetByName(ctx, name)
		if errors.Is(err, domain.ErrNotFound) {
			skill = &domain.Skill{ID: uuid.New().String(), Name: name}
			err = uc.skillRepo.Create(ctx, skill)
		}
		if err != nil {
			return apperror.Internal(err)
		}
		skillIDs = append(skillIDs, skill.ID)
		skills = append(skills, *skill)
	}
	if err := uc.profileRepo.SetSkills(ctx, profile.ID, skillIDs); err != nil {
		return apperror.Internal(err)
	}
	profile.Skills = skills
	return nil
}
