package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/usecase"
	"recruitment-platform/pkg/apperror"
)

func newApplicationUsecase(appRepo *MockApplicationRepo, jobRepo *MockJobRepo, resumeRepo *MockResumeRepo, notifier *MockNotifier) domain.ApplicationUsecase {
	return usecase.NewApplicationUsecase(appRepo, jobRepo, resumeRepo, notifier)
}

func applicationIn(status domain.ApplicationStatus, seekerID, recruiterID string) *domain.Application {
	return &domain.Application{
		ID:              "app-1",
		JobSeekerID:     seekerID,
		JobPostingID:    "job-1",
		Status:          status,
		RecruiterUserID: &recruiterID,
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse recruiters", func(t *testing.T) {
		uc := newApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		_, err := uc.Apply(ctx, recruiterUser(), "backend-engineer", "", "")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("Should treat unapproved postings as absent", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newApplicationUsecase(new(MockApplicationRepo), jobRepo, new(MockResumeRepo), new(MockNotifier))

		pending := approvedPosting("owner")
		pending.Status = domain.JobStatusPending
		jobRepo.On("GetBySlug", ctx, "backend-engineer").Return(pending, nil)

		_, err := uc.Apply(ctx, seekerUser(), "backend-engineer", "", "")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Should refuse a second application to the same posting", func(t *testing.T) {
		seeker := seekerUser()
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUsecase(appRepo, jobRepo, new(MockResumeRepo), new(MockNotifier))

		jobRepo.On("GetBySlug", ctx, "backend-engineer").Return(approvedPosting("owner"), nil)
		appRepo.On("Exists", ctx, seeker.ID, "job-1").Return(true, nil)

		_, err := uc.Apply(ctx, seeker, "backend-engineer", "", "")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindDuplicateApplication, appErr.Kind)
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should hide another seeker's resume", func(t *testing.T) {
		seeker := seekerUser()
		jobRepo := new(MockJobRepo)
		resumeRepo := new(MockResumeRepo)
		uc := newApplicationUsecase(new(MockApplicationRepo), jobRepo, resumeRepo, new(MockNotifier))

		jobRepo.On("GetBySlug", ctx, "backend-engineer").Return(approvedPosting("owner"), nil)
		resumeRepo.On("GetByID", ctx, "cv-1").Return(&domain.Resume{
			ID:          "cv-1",
			OwnerUserID: strPtr("someone-else"),
		}, nil)

		_, err := uc.Apply(ctx, seeker, "backend-engineer", "cv-1", "")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Should create the application in Applied without notifying", func(t *testing.T) {
		seeker := seekerUser()
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		notifier := new(MockNotifier)
		uc := newApplicationUsecase(appRepo, jobRepo, new(MockResumeRepo), notifier)

		jobRepo.On("GetBySlug", ctx, "backend-engineer").Return(approvedPosting("owner"), nil)
		appRepo.On("Exists", ctx, seeker.ID, "job-1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.Apply(ctx, seeker, "backend-engineer", "", "I would love to join")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		notifier.AssertNotCalled(t, "ApplicationStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hide applications owned by another seeker", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		appRepo.On("GetByID", ctx, "app-1").Return(applicationIn(domain.ApplicationStatusApplied, "someone-else", "rec"), nil)

		_, err := uc.Withdraw(ctx, seekerUser(), "app-1")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Should refuse withdrawing a standing offer", func(t *testing.T) {
		seeker := seekerUser()
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		appRepo.On("GetByID", ctx, "app-1").Return(applicationIn(domain.ApplicationStatusOffered, seeker.ID, "rec"), nil)

		_, err := uc.Withdraw(ctx, seeker, "app-1")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindInvalidTransition, appErr.Kind)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should withdraw and fire exactly one notification", func(t *testing.T) {
		seeker := seekerUser()
		appRepo := new(MockApplicationRepo)
		notifier := new(MockNotifier)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), notifier)

		app := applicationIn(domain.ApplicationStatusApplied, seeker.ID, "rec")
		appRepo.On("GetByID", ctx, "app-1").Return(app, nil)
		appRepo.On("UpdateStatus", ctx, "app-1", domain.ApplicationStatusApplied, domain.ApplicationStatusWithdrawn).Return(nil)
		notifier.On("ApplicationStatusChanged", ctx, app, domain.ApplicationStatusApplied, domain.ApplicationStatusWithdrawn).Return()

		got, err := uc.Withdraw(ctx, seeker, "app-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusWithdrawn, got.Status)
		notifier.AssertNumberOfCalls(t, "ApplicationStatusChanged", 1)
	})
}

func TestOfferAndReject(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hide applications on another recruiter's posting", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		appRepo.On("GetByID", ctx, "app-1").Return(applicationIn(domain.ApplicationStatusApplied, "seeker", "someone-else"), nil)

		_, err := uc.Offer(ctx, recruiterUser(), "app-1")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Should let admins offer on any application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		notifier := new(MockNotifier)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), notifier)

		app := applicationIn(domain.ApplicationStatusApplied, "seeker", "some-recruiter")
		appRepo.On("GetByID", ctx, "app-1").Return(app, nil)
		appRepo.On("UpdateStatus", ctx, "app-1", domain.ApplicationStatusApplied, domain.ApplicationStatusOffered).Return(nil)
		notifier.On("ApplicationStatusChanged", ctx, app, domain.ApplicationStatusApplied, domain.ApplicationStatusOffered).Return()

		got, err := uc.Offer(ctx, adminUser(), "app-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusOffered, got.Status)
	})

	t.Run("Should let a rejection supersede a standing offer", func(t *testing.T) {
		recruiter := recruiterUser()
		appRepo := new(MockApplicationRepo)
		notifier := new(MockNotifier)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), notifier)

		app := applicationIn(domain.ApplicationStatusOffered, "seeker", recruiter.ID)
		appRepo.On("GetByID", ctx, "app-1").Return(app, nil)
		appRepo.On("UpdateStatus", ctx, "app-1", domain.ApplicationStatusOffered, domain.ApplicationStatusRejected).Return(nil)
		notifier.On("ApplicationStatusChanged", ctx, app, domain.ApplicationStatusOffered, domain.ApplicationStatusRejected).Return()

		got, err := uc.Reject(ctx, recruiter, "app-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, got.Status)
	})

	t.Run("Should refuse rejecting a terminal application", func(t *testing.T) {
		recruiter := recruiterUser()
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		appRepo.On("GetByID", ctx, "app-1").Return(applicationIn(domain.ApplicationStatusHired, "seeker", recruiter.ID), nil)

		_, err := uc.Reject(ctx, recruiter, "app-1")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindInvalidTransition, appErr.Kind)
	})

	t.Run("Should surface a lost race as an invalid transition", func(t *testing.T) {
		recruiter := recruiterUser()
		appRepo := new(MockApplicationRepo)
		notifier := new(MockNotifier)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), notifier)

		app := applicationIn(domain.ApplicationStatusApplied, "seeker", recruiter.ID)
		appRepo.On("GetByID", ctx, "app-1").Return(app, nil)
		appRepo.On("UpdateStatus", ctx, "app-1", domain.ApplicationStatusApplied, domain.ApplicationStatusOffered).
			Return(domain.ErrStaleStatus)

		_, err := uc.Offer(ctx, recruiter, "app-1")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindInvalidTransition, appErr.Kind)
		notifier.AssertNotCalled(t, "ApplicationStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAcceptOffer(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require the explicit confirmation flag", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		_, err := uc.AcceptOffer(ctx, seekerUser(), "app-1", false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "confirmed")
		appRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should only accept a standing offer", func(t *testing.T) {
		seeker := seekerUser()
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), new(MockNotifier))

		appRepo.On("GetByID", ctx, "app-1").Return(applicationIn(domain.ApplicationStatusApplied, seeker.ID, "rec"), nil)

		_, err := uc.AcceptOffer(ctx, seeker, "app-1", true)
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindInvalidTransition, appErr.Kind)
	})

	t.Run("Should hire the seeker on confirmation", func(t *testing.T) {
		seeker := seekerUser()
		appRepo := new(MockApplicationRepo)
		notifier := new(MockNotifier)
		uc := newApplicationUsecase(appRepo, new(MockJobRepo), new(MockResumeRepo), notifier)

		app := applicationIn(domain.ApplicationStatusOffered, seeker.ID, "rec")
		appRepo.On("GetByID", ctx, "app-1").Return(app, nil)
		appRepo.On("UpdateStatus", ctx, "app-1", domain.ApplicationStatusOffered, domain.ApplicationStatusHired).Return(nil)
		notifier.On("ApplicationStatusChanged", ctx, app, domain.ApplicationStatusOffered, domain.ApplicationStatusHired).Return()

		got, err := uc.AcceptOffer(ctx, seeker, "app-1", true)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusHired, got.Status)
		assert.WithinDuration(t, time.Now(), got.UpdatedAt, time.Second)
	})
}

func TestListForPosting(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hide another recruiter's posting", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := newApplicationUsecase(new(MockApplicationRepo), jobRepo, new(MockResumeRepo), new(MockNotifier))

		jobRepo.On("GetBySlug", ctx, "backend-engineer").Return(approvedPosting("someone-else"), nil)

		_, err := uc.ListForPosting(ctx, recruiterUser(), "backend-engineer")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("Should list applications for the owning recruiter", func(t *testing.T) {
		recruiter := recruiterUser()
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := newApplicationUsecase(appRepo, jobRepo, new(MockResumeRepo), new(MockNotifier))

		jobRepo.On("GetBySlug", ctx, "backend-engineer").Return(approvedPosting(recruiter.ID), nil)
		appRepo.On("ListByPosting", ctx, "job-1").Return([]domain.Application{
			*applicationIn(domain.ApplicationStatusApplied, "seeker", recruiter.ID),
		}, nil)

		apps, err := uc.ListForPosting(ctx, recruiter, "backend-engineer")
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})
}
