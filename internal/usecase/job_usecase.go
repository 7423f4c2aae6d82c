package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type jobUsecase struct {
	jobRepo           domain.JobPostingRepository
	profileRepo       domain.RecruiterProfileRepository
	seekerProfileRepo domain.JobSeekerProfileRepository
	notifier          domain.Notifier
}

func NewJobUsecase(
	jobRepo domain.JobPostingRepository,
	profileRepo domain.RecruiterProfileRepository,
	seekerProfileRepo domain.JobSeekerProfileRepository,
	notifier domain.Notifier,
) domain.JobPostingUsecase {
	return &jobUsecase{
		jobRepo:           jobRepo,
		profileRepo:       profileRepo,
		seekerProfileRepo: seekerProfileRepo,
		notifier:          notifier,
	}
}

// ensureSlug computes a unique slug from the title, suffixing an incrementing
// integer on collision: engineer, engineer-1, engineer-2, ...
func (u *jobUsecase) ensureSlug(ctx context.Context, posting *domain.JobPosting) error {
	base := slug.Make(posting.Title)
	candidate := base
	for num := 1; ; num++ {
		exists, err := u.jobRepo.SlugExists(ctx, candidate, posting.ID)
		if err != nil {
			return err
		}
		if !exists {
			posting.Slug = candidate
			return nil
		}
		candidate = fmt.Sprintf("%s-%d", base, num)
	}
}

// expireIfDue applies the lazy expiration check: a posting past its
// expiration date is demoted to Expired/inactive before anything else
// happens. No background sweep exists; this runs on every load or mutation.
func (u *jobUsecase) expireIfDue(ctx context.Context, posting *domain.JobPosting) error {
	if posting.Status == domain.JobStatusExpired || !posting.Expired(time.Now()) {
		return nil
	}
	if err := u.jobRepo.MarkExpired(ctx, posting.ID); err != nil {
		return err
	}
	posting.Status = domain.JobStatusExpired
	posting.IsActive = false
	return nil
}

func (u *jobUsecase) validateFields(posting *domain.JobPosting) error {
	if posting.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if posting.Description == "" {
		return apperror.BadRequest("Description is required")
	}
	if posting.Location == "" {
		return apperror.BadRequest("Location is required")
	}
	if posting.SalaryMin != nil && posting.SalaryMax != nil && *posting.SalaryMin > *posting.SalaryMax {
		return apperror.BadRequest("SalaryMin cannot be greater than SalaryMax")
	}
	if posting.JobType == "" {
		posting.JobType = domain.JobTypeFullTime
	}
	if !posting.JobType.Valid() {
		return apperror.BadRequest("Unknown job type")
	}
	return nil
}

// CreateDraft creates a posting in Draft for the caller's recruiter profile.
// No notification fires on creation.
func (u *jobUsecase) CreateDraft(ctx context.Context, caller *domain.User, posting *domain.JobPosting) error {
	if !authz.IsRecruiter(caller) {
		return apperror.Forbidden("Only recruiters can create job postings")
	}
	profile, err := u.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Recruiter profile not found. Please create a company profile first.")
		}
		return apperror.Internal(err)
	}
	if err := u.validateFields(posting); err != nil {
		return err
	}

	now := time.Now()
	posting.ID = uuid.New().String()
	posting.RecruiterProfileID = profile.ID
	posting.RecruiterUserID = &caller.ID
	posting.Status = domain.JobStatusDraft
	posting.IsActive = true
	posting.ViewsCount = 0
	posting.CreatedAt = now
	posting.UpdatedAt = now

	if err := u.ensureSlug(ctx, posting); err != nil {
		return apperror.Internal(err)
	}
	if err := u.jobRepo.Create(ctx, posting); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) UpdatePosting(ctx context.Context, caller *domain.User, posting *domain.JobPosting) error {
	existing, err := u.jobRepo.GetBySlug(ctx, posting.Slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job posting not found")
		}
		return apperror.Internal(err)
	}
	if !authz.IsAdmin(caller) && !authz.OwnsPosting(caller, existing) {
		// Indistinguishable from true absence
		return apperror.NotFound("Job posting not found")
	}
	if err := u.expireIfDue(ctx, existing); err != nil {
		return apperror.Internal(err)
	}
	if err := u.validateFields(posting); err != nil {
		return err
	}

	titleChanged := existing.Title != posting.Title
	existing.Title = posting.Title
	existing.Description = posting.Description
	existing.Requirements = posting.Requirements
	existing.Location = posting.Location
	existing.SalaryMin = posting.SalaryMin
	existing.SalaryMax = posting.SalaryMax
	existing.JobType = posting.JobType
	existing.ExpirationDate = posting.ExpirationDate
	existing.UpdatedAt = time.Now()

	if titleChanged {
		if err := u.ensureSlug(ctx, existing); err != nil {
			return apperror.Internal(err)
		}
	}
	if err := u.jobRepo.Update(ctx, existing); err != nil {
		return apperror.Internal(err)
	}
	*posting = *existing
	return nil
}

// GetBySlug is the public read: only Approved, non-expired postings are
// visible; anything else reads as absent.
func (u *jobUsecase) GetBySlug(ctx context.Context, slugStr string) (*domain.JobPosting, error) {
	posting, err := u.jobRepo.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job posting not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := u.expireIfDue(ctx, posting); err != nil {
		return nil, apperror.Internal(err)
	}
	if posting.Status != domain.JobStatusApproved {
		return nil, apperror.NotFound("Job posting not found")
	}
	return posting, nil
}

func (u *jobUsecase) SubmitForApproval(ctx context.Context, caller *domain.User, slugStr string) (*domain.JobPosting, error) {
	posting, err := u.jobRepo.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job posting not found")
		}
		return nil, apperror.Internal(err)
	}
	if !authz.IsAdmin(caller) && !authz.OwnsPosting(caller, posting) {
		return nil, apperror.NotFound("Job posting not found")
	}
	if err := u.expireIfDue(ctx, posting); err != nil {
		return nil, apperror.Internal(err)
	}
	if posting.Status != domain.JobStatusDraft {
		return nil, apperror.InvalidTransition("Only drafts can be submitted for approval")
	}
	if err := u.jobRepo.UpdateStatus(ctx, posting.ID, domain.JobStatusDraft, domain.JobStatusPending); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			return nil, apperror.InvalidTransition("Only drafts can be submitted for approval")
		}
		return nil, apperror.Internal(err)
	}
	posting.Status = domain.JobStatusPending
	u.notifier.JobStatusChanged(ctx, posting, domain.JobStatusDraft, domain.JobStatusPending)
	return posting, nil
}

func (u *jobUsecase) Approve(ctx context.Context, caller *domain.User, slugStr string) (*domain.JobPosting, error) {
	posting, err := u.moderate(ctx, caller, slugStr, domain.JobStatusApproved)
	if err != nil {
		return nil, err
	}
	// The posting just became visible to seekers: broadcast it.
	u.notifier.JobPublished(ctx, posting)
	return posting, nil
}

func (u *jobUsecase) Reject(ctx context.Context, caller *domain.User, slugStr string) (*domain.JobPosting, error) {
	return u.moderate(ctx, caller, slugStr, domain.JobStatusRejected)
}

// moderate performs the Pending -> Approved/Rejected admin transition.
func (u *jobUsecase) moderate(ctx context.Context, caller *domain.User, slugStr string, to domain.JobStatus) (*domain.JobPosting, error) {
	if !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only admins can moderate job postings")
	}
	posting, err := u.jobRepo.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job posting not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := u.expireIfDue(ctx, posting); err != nil {
		return nil, apperror.Internal(err)
	}
	if posting.Status != domain.JobStatusPending {
		return nil, apperror.InvalidTransition("Job posting is not awaiting approval")
	}
	if err := u.jobRepo.UpdateStatus(ctx, posting.ID, domain.JobStatusPending, to); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			return nil, apperror.InvalidTransition("Job posting is not awaiting approval")
		}
		return nil, apperror.Internal(err)
	}
	oldStatus := posting.Status
	posting.Status = to
	u.notifier.JobStatusChanged(ctx, posting, oldStatus, to)
	return posting, nil
}

// IncrementView is public and fires no notification.
func (u *jobUsecase) IncrementView(ctx context.Context, slugStr string) (int64, error) {
	posting, err := u.jobRepo.GetBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.NotFound("Job posting not found")
		}
		return 0, apperror.Internal(err)
	}
	if err := u.expireIfDue(ctx, posting); err != nil {
		return 0, apperror.Internal(err)
	}
	count, err := u.jobRepo.IncrementViews(ctx, posting.ID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

// ListPublic relies on the repository excluding expired rows, so the page and
// the reported total stay consistent across pages.
func (u *jobUsecase) ListPublic(ctx context.Context, page, pageSize int) ([]domain.JobPosting, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	postings, total, err := u.jobRepo.FetchApproved(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return postings, total, nil
}

// expireListed applies the lazy expiration check to every listed posting.
// Listings are reads too; a row past its expiration date must come back
// demoted, not with its stale stored status.
func (u *jobUsecase) expireListed(ctx context.Context, postings []domain.JobPosting) error {
	for i := range postings {
		if err := u.expireIfDue(ctx, &postings[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListForCaller scopes the listing by role: admins see everything,
// recruiters their own postings, everyone else only Approved ones.
func (u *jobUsecase) ListForCaller(ctx context.Context, caller *domain.User, page, pageSize int) ([]domain.JobPosting, int64, error) {
	limit, offset := pageBounds(page, pageSize)

	switch {
	case authz.IsAdmin(caller):
		postings, total, err := u.jobRepo.FetchAll(ctx, limit, offset)
		if err != nil {
			return nil, 0, apperror.Internal(err)
		}
		if err := u.expireListed(ctx, postings); err != nil {
			return nil, 0, apperror.Internal(err)
		}
		return postings, total, nil
	case authz.IsRecruiter(caller):
		profile, err := u.profileRepo.GetByUserID(ctx, caller.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, 0, apperror.NotFound("Recruiter profile not found. Please create a company profile first.")
			}
			return nil, 0, apperror.Internal(err)
		}
		postings, total, err := u.jobRepo.FetchByRecruiterProfile(ctx, profile.ID, limit, offset)
		if err != nil {
			return nil, 0, apperror.Internal(err)
		}
		if err := u.expireListed(ctx, postings); err != nil {
			return nil, 0, apperror.Internal(err)
		}
		return postings, total, nil
	default:
		return u.ListPublic(ctx, page, pageSize)
	}
}

func (u *jobUsecase) ListPending(ctx context.Context, caller *domain.User) ([]domain.JobPosting, error) {
	if !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only admins can list pending job postings")
	}
	postings, err := u.jobRepo.FetchPending(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return postings, nil
}

// Recommend matches approved postings against the seeker's profile skills.
func (u *jobUsecase) Recommend(ctx context.Context, caller *domain.User) ([]domain.JobPosting, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers can get recommendations")
	}
	profile, err := u.seekerProfileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("You have no job seeker profile yet")
		}
		return nil, apperror.Internal(err)
	}
	skills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		skills = append(skills, s.Name)
	}
	postings, err := u.jobRepo.SearchApprovedBySkills(ctx, skills, 10)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return postings, nil
}
