package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/usecase"
	"recruitment-platform/pkg/apperror"
)

// The object store is only reached after authorization and file validation,
// so these paths run with a nil store.
func newResumeUsecase(resumeRepo *MockResumeRepo, profileRepo *MockSeekerProfileRepo, notifier *MockNotifier) domain.ResumeUsecase {
	return usecase.NewResumeUsecase(resumeRepo, profileRepo, nil, notifier)
}

func TestUploadResume(t *testing.T) {
	ctx := context.Background()
	pdfBytes := []byte("%PDF-1.7 test content")

	t.Run("Should refuse recruiters", func(t *testing.T) {
		uc := newResumeUsecase(new(MockResumeRepo), new(MockSeekerProfileRepo), new(MockNotifier))

		_, err := uc.Upload(ctx, recruiterUser(), "CV", "cv.pdf", pdfBytes)
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("Should require a job seeker profile", func(t *testing.T) {
		seeker := seekerUser()
		profileRepo := new(MockSeekerProfileRepo)
		uc := newResumeUsecase(new(MockResumeRepo), profileRepo, new(MockNotifier))

		profileRepo.On("GetByUserID", ctx, seeker.ID).Return(nil, domain.ErrNotFound)

		_, err := uc.Upload(ctx, seeker, "CV", "cv.pdf", pdfBytes)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "profile")
	})

	t.Run("Should reject an empty file", func(t *testing.T) {
		seeker := seekerUser()
		profileRepo := new(MockSeekerProfileRepo)
		uc := newResumeUsecase(new(MockResumeRepo), profileRepo, new(MockNotifier))

		profileRepo.On("GetByUserID", ctx, seeker.ID).Return(&domain.JobSeekerProfile{ID: "sp-1", UserID: seeker.ID}, nil)

		_, err := uc.Upload(ctx, seeker, "CV", "cv.pdf", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("Should reject content that does not match the extension", func(t *testing.T) {
		seeker := seekerUser()
		profileRepo := new(MockSeekerProfileRepo)
		resumeRepo := new(MockResumeRepo)
		uc := newResumeUsecase(resumeRepo, profileRepo, new(MockNotifier))

		profileRepo.On("GetByUserID", ctx, seeker.ID).Return(&domain.JobSeekerProfile{ID: "sp-1", UserID: seeker.ID}, nil)

		_, err := uc.Upload(ctx, seeker, "CV", "cv.pdf", []byte("plain text pretending to be a pdf"))
		assert.Error(t, err)
		resumeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListMyResumes(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return an empty list without a profile", func(t *testing.T) {
		seeker := seekerUser()
		profileRepo := new(MockSeekerProfileRepo)
		uc := newResumeUsecase(new(MockResumeRepo), profileRepo, new(MockNotifier))

		profileRepo.On("GetByUserID", ctx, seeker.ID).Return(nil, domain.ErrNotFound)

		resumes, err := uc.ListMine(ctx, seeker)
		assert.NoError(t, err)
		assert.Empty(t, resumes)
	})
}

func TestActivateResume(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hide another seeker's resume", func(t *testing.T) {
		resumeRepo := new(MockResumeRepo)
		uc := newResumeUsecase(resumeRepo, new(MockSeekerProfileRepo), new(MockNotifier))

		resumeRepo.On("GetByID", ctx, "cv-1").Return(&domain.Resume{
			ID:                 "cv-1",
			JobSeekerProfileID: "sp-other",
			OwnerUserID:        strPtr("someone-else"),
		}, nil)

		_, err := uc.Activate(ctx, seekerUser(), "cv-1")
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
		resumeRepo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should activate atomically within the profile and notify", func(t *testing.T) {
		seeker := seekerUser()
		resumeRepo := new(MockResumeRepo)
		notifier := new(MockNotifier)
		uc := newResumeUsecase(resumeRepo, new(MockSeekerProfileRepo), notifier)

		resume := &domain.Resume{
			ID:                 "cv-1",
			JobSeekerProfileID: "sp-1",
			OwnerUserID:        &seeker.ID,
		}
		resumeRepo.On("GetByID", ctx, "cv-1").Return(resume, nil)
		resumeRepo.On("Activate", ctx, "sp-1", "cv-1").Return(nil)
		notifier.On("ResumeActivated", ctx, resume).Return()

		got, err := uc.Activate(ctx, seeker, "cv-1")
		assert.NoError(t, err)
		assert.True(t, got.IsActive)
		notifier.AssertNumberOfCalls(t, "ResumeActivated", 1)
	})
}
