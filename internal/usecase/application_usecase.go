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

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobPostingRepository
	resumeRepo      domain.ResumeRepository
	notifier        domain.Notifier
}

func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobPostingRepository,
	resumeRepo domain.ResumeRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		resumeRepo:      resumeRepo,
		notifier:        notifier,
	}
}

// Apply creates an application in Applied. The posting must be Approved and
// not expired, and the (seeker, posting) pair must be unique.
func (uc *applicationUsecase) Apply(ctx context.Context, caller *domain.User, postingSlug string, resumeID, coverLetter string) (*domain.Application, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers can apply to postings")
	}

	posting, err := uc.jobRepo.GetBySlug(ctx, postingSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job posting not found")
		}
		return nil, apperror.Internal(err)
	}
	if posting.Status != domain.JobStatusApproved || posting.Expired(time.Now()) || !posting.IsActive {
		return nil, apperror.NotFound("Job posting not found")
	}

	var resumePtr *string
	if resumeID != "" {
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
		resumePtr = &resume.ID
	}

	exists, err := uc.applicationRepo.Exists(ctx, caller.ID, posting.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Duplicate(apperror.KindDuplicateApplication, "You have already applied to this job")
	}

	var coverLetterPtr *string
	if coverLetter != "" {
		coverLetterPtr = &coverLetter
	}

	now := time.Now()
	app := &domain.Application{
		ID:           uuid.New().String(),
		JobSeekerID:  caller.ID,
		JobPostingID: posting.ID,
		ResumeID:     resumePtr,
		Status:       domain.ApplicationStatusApplied,
		CoverLetter:  coverLetterPtr,
		AppliedAt:    now,
		UpdatedAt:    now,
		JobTitle:     &posting.Title,
		JobSlug:      &posting.Slug,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// Withdraw is the seeker's exit: legal only from Applied, terminal.
func (uc *applicationUsecase) Withdraw(ctx context.Context, caller *domain.User, applicationID string) (*domain.Application, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers can withdraw applications")
	}
	app, err := uc.getOwned(ctx, applicationID, func(a *domain.Application) bool {
		return authz.OwnsApplication(caller, a)
	})
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, app, domain.ApplicationStatusApplied, domain.ApplicationStatusWithdrawn,
		"Applications can only be withdrawn while still in Applied")
}

// Offer moves the application to Offered. Legal from Applied only.
func (uc *applicationUsecase) Offer(ctx context.Context, caller *domain.User, applicationID string) (*domain.Application, error) {
	if !authz.IsRecruiter(caller) && !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only recruiters can make offers")
	}
	app, err := uc.getOwned(ctx, applicationID, func(a *domain.Application) bool {
		return authz.IsAdmin(caller) || authz.RecruitsApplication(caller, a)
	})
	if err != nil {
		return nil, err
	}
	return uc.transition(ctx, app, domain.ApplicationStatusApplied, domain.ApplicationStatusOffered,
		"Offers can only be made on applications in Applied")
}

// Reject is legal from Applied, and from Offered (a rejection supersedes a
// standing offer).
func (uc *applicationUsecase) Reject(ctx context.Context, caller *domain.User, applicationID string) (*domain.Application, error) {
	if !authz.IsRecruiter(caller) && !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only recruiters can reject applications")
	}
	app, err := uc.getOwned(ctx, applicationID, func(a *domain.Application) bool {
		return authz.IsAdmin(caller) || authz.RecruitsApplication(caller, a)
	})
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusApplied && app.Status != domain.ApplicationStatusOffered {
		return nil, apperror.InvalidTransition("Application can no longer be rejected")
	}
	return uc.transition(ctx, app, app.Status, domain.ApplicationStatusRejected,
		"Application can no longer be rejected")
}

// AcceptOffer requires an explicit confirmation flag and a standing offer.
func (uc *applicationUsecase) AcceptOffer(ctx context.Context, caller *domain.User, applicationID string, confirm bool) (*domain.Application, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers can accept offers")
	}
	if !confirm {
		return nil, apperror.BadRequest("Offer acceptance must be explicitly confirmed")
	}
	app, err := uc.getOwned(ctx, applicationID, func(a *domain.Application) bool {
		return authz.OwnsApplication(caller, a)
	})
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusOffered {
		return nil, apperror.InvalidTransition("Only a standing offer can be accepted")
	}
	return uc.transition(ctx, app, domain.ApplicationStatusOffered, domain.ApplicationStatusHired,
		"Only a standing offer can be accepted")
}

func (uc *applicationUsecase) ListMine(ctx context.Context, caller *domain.User) ([]domain.Application, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Switch to the JobSeeker role to view your applications")
	}
	apps, err := uc.applicationRepo.ListBySeeker(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) ListForPosting(ctx context.Context, caller *domain.User, postingSlug string) ([]domain.Application, error) {
	if !authz.IsRecruiter(caller) && !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only recruiters can list a posting's applications")
	}
	posting, err := uc.jobRepo.GetBySlug(ctx, postingSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job posting not found")
		}
		return nil, apperror.Internal(err)
	}
	if !authz.IsAdmin(caller) && !authz.OwnsPosting(caller, posting) {
		return nil, apperror.NotFound("Job posting not found")
	}
	apps, err := uc.applicationRepo.ListByPosting(ctx, posting.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// getOwned loads the application and hides it from callers that fail the
// ownership predicate, indistinguishably from true absence.
func (uc *applicationUsecase) getOwned(ctx context.Context, id string, owns func(*domain.Application) bool) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if !owns(app) {
		return nil, apperror.NotFound("Application not found")
	}
	return app, nil
}

// transition performs the conditional status update and dispatches exactly
// one notification once the new state is durable. A concurrent loser
// observes the stale precondition and gets InvalidTransition.
func (uc *applicationUsecase) transition(ctx context.Context, app *domain.Application, from, to domain.ApplicationStatus, guardMsg string) (*domain.Application, error) {
	if app.Status != from {
		return nil, apperror.InvalidTransition(guardMsg)
	}
	if err := uc.applicationRepo.UpdateStatus(ctx, app.ID, from, to); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			return nil, apperror.InvalidTransition(guardMsg)
		}
		return nil, apperror.Internal(err)
	}
	app.Status = to
	app.UpdatedAt = time.Now()
	uc.notifier.ApplicationStatusChanged(ctx, app, from, to)
	return app, nil
}
