package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type interviewUsecase struct {
	interviewRepo   domain.InterviewRepository
	applicationRepo domain.ApplicationRepository
	notifier        domain.Notifier
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	applicationRepo domain.ApplicationRepository,
	notifier domain.Notifier,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo:   interviewRepo,
		applicationRepo: applicationRepo,
		notifier:        notifier,
	}
}

// meetingLink generates the video room location. Callers can never supply
// their own location.
func meetingLink() string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("https://meet.jit.si/recruitment-%s", token)
}

// Schedule creates an interview for an application the caller recruits for.
// The scheduled time must lie in the future.
func (uc *interviewUsecase) Schedule(ctx context.Context, caller *domain.User, applicationID string, when time.Time, notes string) (*domain.Interview, error) {
	if !authz.IsRecruiter(caller) && !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only recruiters can schedule interviews")
	}
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if !authz.IsAdmin(caller) && !authz.RecruitsApplication(caller, app) {
		return nil, apperror.NotFound("Application not found")
	}
	if app.Status == domain.ApplicationStatusWithdrawn || app.Status == domain.ApplicationStatusRejected {
		return nil, apperror.InvalidTransition("Interviews cannot be scheduled on a closed application")
	}
	if !when.After(time.Now()) {
		return nil, apperror.BadRequest("Interview must be scheduled in the future")
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	now := time.Now()
	interview := &domain.Interview{
		ID:            uuid.New().String(),
		ApplicationID: app.ID,
		ScheduledAt:   when,
		Location:      meetingLink(),
		Status:        domain.InterviewStatusScheduled,
		Notes:         notesPtr,
		CreatedAt:     now,
		UpdatedAt:     now,
		JobTitle:      app.JobTitle,
		SeekerUserID:  &app.JobSeekerID,
	}
	if err := uc.interviewRepo.Create(ctx, interview); err != nil {
		return nil, apperror.Internal(err)
	}
	return interview, nil
}

func (uc *interviewUsecase) Cancel(ctx context.Context, caller *domain.User, interviewID string) (*domain.Interview, error) {
	return uc.close(ctx, caller, interviewID, domain.InterviewStatusCanceled)
}

func (uc *interviewUsecase) Complete(ctx context.Context, caller *domain.User, interviewID string) (*domain.Interview, error) {
	return uc.close(ctx, caller, interviewID, domain.InterviewStatusCompleted)
}

// close ends an interview. Legal from Scheduled only; Completed and Canceled
// are terminal.
func (uc *interviewUsecase) close(ctx context.Context, caller *domain.User, interviewID string, to domain.InterviewStatus) (*domain.Interview, error) {
	if !authz.IsRecruiter(caller) && !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only recruiters can update interviews")
	}
	interview, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, apperror.Internal(err)
	}
	if !authz.IsAdmin(caller) && !authz.RecruitsInterview(caller, interview) {
		return nil, apperror.NotFound("Interview not found")
	}
	if interview.Status != domain.InterviewStatusScheduled {
		return nil, apperror.InvalidTransition("Only a scheduled interview can be updated")
	}
	if err := uc.interviewRepo.UpdateStatus(ctx, interview.ID, domain.InterviewStatusScheduled, to); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			return nil, apperror.InvalidTransition("Only a scheduled interview can be updated")
		}
		return nil, apperror.Internal(err)
	}
	old := interview.Status
	interview.Status = to
	interview.UpdatedAt = time.Now()
	uc.notifier.InterviewStatusChanged(ctx, interview, old, to)
	return interview, nil
}

// ListMine returns the interviews visible to the caller under their active
// role: as seeker, interviews on their applications; as recruiter,
// interviews on their postings.
func (uc *interviewUsecase) ListMine(ctx context.Context, caller *domain.User) ([]domain.Interview, error) {
	switch {
	case authz.IsJobSeeker(caller):
		interviews, err := uc.interviewRepo.ListForSeeker(ctx, caller.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return interviews, nil
	case authz.IsRecruiter(caller):
		interviews, err := uc.interviewRepo.ListForRecruiter(ctx, caller.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return interviews, nil
	default:
		return nil, apperror.Forbidden("Activate a role to view interviews")
	}
}
