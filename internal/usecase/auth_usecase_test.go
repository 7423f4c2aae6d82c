package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/usecase"
	"recruitment-platform/pkg/apperror"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthUsecase(userRepo *MockUserRepo, grantRepo *MockGrantRepo, notifier *MockNotifier) domain.AuthUsecase {
	return usecase.NewAuthUsecase(userRepo, grantRepo, notifier, nil, "http://localhost:3000", testLogger())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject duplicate username", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		grantRepo := new(MockGrantRepo)
		notifier := new(MockNotifier)
		uc := newAuthUsecase(userRepo, grantRepo, notifier)

		userRepo.On("GetByUsername", ctx, "taken").Return(&domain.User{ID: "u1", Username: "taken"}, nil)

		_, err := uc.Register(ctx, "taken", "new@example.com", "password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already taken")
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		grantRepo := new(MockGrantRepo)
		notifier := new(MockNotifier)
		uc := newAuthUsecase(userRepo, grantRepo, notifier)

		userRepo.On("GetByUsername", ctx, "fresh").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{ID: "u1"}, nil)

		_, err := uc.Register(ctx, "fresh", "taken@example.com", "password123")
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, apperror.KindDuplicateIdentity, appErr.Kind)
	})

	t.Run("Should reject short password before touching the repo", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		grantRepo := new(MockGrantRepo)
		notifier := new(MockNotifier)
		uc := newAuthUsecase(userRepo, grantRepo, notifier)

		_, err := uc.Register(ctx, "fresh", "fresh@example.com", "short")
		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Should create user with an approved JobSeeker grant", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		grantRepo := new(MockGrantRepo)
		notifier := new(MockNotifier)
		uc := newAuthUsecase(userRepo, grantRepo, notifier)

		userRepo.On("GetByUsername", ctx, "fresh").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "fresh@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		grantRepo.On("Create", ctx, mock.AnythingOfType("*domain.RoleGrant")).Run(func(args mock.Arguments) {
			grant := args.Get(1).(*domain.RoleGrant)
			assert.Equal(t, domain.RoleJobSeeker, grant.Role)
			assert.True(t, grant.IsApproved)
		}).Return(nil)
		notifier.On("UserRegistered", ctx, mock.AnythingOfType("*domain.User")).Return()

		user, err := uc.Register(ctx, "fresh", "fresh@example.com", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.True(t, user.IsActive)
		assert.Len(t, user.Grants, 1)
		notifier.AssertNumberOfCalls(t, "UserRegistered", 1)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should not reveal whether the account exists", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo, new(MockGrantRepo), new(MockNotifier))

		userRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound)
		userRepo.On("GetByEmail", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "ghost", "password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should refuse disabled accounts", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo, new(MockGrantRepo), new(MockNotifier))

		userRepo.On("GetByUsername", ctx, "disabled").Return(&domain.User{ID: "u1", IsActive: false}, nil)

		_, err := uc.Login(ctx, "disabled", "password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})
}

func TestActivateRole(t *testing.T) {
	ctx := context.Background()
	caller := seekerUser()

	t.Run("Should refuse a role that was never granted", func(t *testing.T) {
		grantRepo := new(MockGrantRepo)
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo, grantRepo, new(MockNotifier))

		grantRepo.On("GetByUserAndRole", ctx, caller.ID, domain.RoleRecruiter).Return(nil, domain.ErrNotFound)

		err := uc.ActivateRole(ctx, caller, domain.RoleRecruiter)
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindRoleNotApproved, appErr.Kind)
		userRepo.AssertNotCalled(t, "SetActiveRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse a pending grant", func(t *testing.T) {
		grantRepo := new(MockGrantRepo)
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo, grantRepo, new(MockNotifier))

		grantRepo.On("GetByUserAndRole", ctx, caller.ID, domain.RoleRecruiter).
			Return(&domain.RoleGrant{ID: "g1", UserID: caller.ID, Role: domain.RoleRecruiter, IsApproved: false}, nil)

		err := uc.ActivateRole(ctx, caller, domain.RoleRecruiter)
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindRoleNotApproved, appErr.Kind)
		userRepo.AssertNotCalled(t, "SetActiveRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should switch to an approved role", func(t *testing.T) {
		grantRepo := new(MockGrantRepo)
		userRepo := new(MockUserRepo)
		uc := newAuthUsecase(userRepo, grantRepo, new(MockNotifier))

		grantRepo.On("GetByUserAndRole", ctx, caller.ID, domain.RoleRecruiter).
			Return(&domain.RoleGrant{ID: "g1", UserID: caller.ID, Role: domain.RoleRecruiter, IsApproved: true}, nil)
		userRepo.On("SetActiveRole", ctx, caller.ID, domain.RoleRecruiter).Return(nil)

		err := uc.ActivateRole(ctx, caller, domain.RoleRecruiter)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should reject unknown role names", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGrantRepo), new(MockNotifier))

		err := uc.ActivateRole(ctx, caller, domain.RoleName("SuperUser"))
		assert.Error(t, err)
	})
}

func TestRequestRole(t *testing.T) {
	ctx := context.Background()
	caller := seekerUser()

	t.Run("Should refuse requesting the Admin role", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGrantRepo), new(MockNotifier))

		_, err := uc.RequestRole(ctx, caller, domain.RoleAdmin)
		assert.Error(t, err)
	})

	t.Run("Should refuse a second request for the same role", func(t *testing.T) {
		grantRepo := new(MockGrantRepo)
		uc := newAuthUsecase(new(MockUserRepo), grantRepo, new(MockNotifier))

		grantRepo.On("GetByUserAndRole", ctx, caller.ID, domain.RoleRecruiter).
			Return(&domain.RoleGrant{ID: "g1", UserID: caller.ID, Role: domain.RoleRecruiter}, nil)

		_, err := uc.RequestRole(ctx, caller, domain.RoleRecruiter)
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindDuplicateGrant, appErr.Kind)
	})

	t.Run("Should create a pending grant", func(t *testing.T) {
		grantRepo := new(MockGrantRepo)
		uc := newAuthUsecase(new(MockUserRepo), grantRepo, new(MockNotifier))

		grantRepo.On("GetByUserAndRole", ctx, caller.ID, domain.RoleRecruiter).Return(nil, domain.ErrNotFound)
		grantRepo.On("Create", ctx, mock.AnythingOfType("*domain.RoleGrant")).Return(nil)

		grant, err := uc.RequestRole(ctx, caller, domain.RoleRecruiter)
		assert.NoError(t, err)
		assert.False(t, grant.IsApproved)
	})
}

func TestApproveGrants(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse non-admin callers", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGrantRepo), new(MockNotifier))

		_, err := uc.ApproveGrants(ctx, recruiterUser(), []string{"g1"})
		assert.Error(t, err)
		appErr := err.(*apperror.AppError)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("Should notify only rows that were actually flipped", func(t *testing.T) {
		admin := adminUser()
		grantRepo := new(MockGrantRepo)
		notifier := new(MockNotifier)
		uc := newAuthUsecase(new(MockUserRepo), grantRepo, notifier)

		// Three ids requested, one already approved: the repo reports two
		// touched rows.
		touched := []domain.RoleGrant{
			{ID: "g1", UserID: "u1", Role: domain.RoleRecruiter, IsApproved: true},
			{ID: "g2", UserID: "u2", Role: domain.RoleRecruiter, IsApproved: true},
		}
		grantRepo.On("Approve", ctx, []string{"g1", "g2", "g3"}, admin.ID, mock.AnythingOfType("time.Time")).
			Return(int64(2), touched, nil)
		notifier.On("RoleApproved", ctx, mock.AnythingOfType("*domain.RoleGrant")).Return()

		count, err := uc.ApproveGrants(ctx, admin, []string{"g1", "g2", "g3"})
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		notifier.AssertNumberOfCalls(t, "RoleApproved", 2)
	})

	t.Run("Should require at least one grant id", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGrantRepo), new(MockNotifier))

		_, err := uc.ApproveGrants(ctx, adminUser(), nil)
		assert.Error(t, err)
	})
}

func TestAssignAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should ensure the grant exists approved", func(t *testing.T) {
		admin := adminUser()
		userRepo := new(MockUserRepo)
		grantRepo := new(MockGrantRepo)
		uc := newAuthUsecase(userRepo, grantRepo, new(MockNotifier))

		userRepo.On("GetByID", ctx, "target").Return(&domain.User{ID: "target"}, nil)
		grantRepo.On("EnsureApproved", ctx, "target", domain.RoleAdmin, admin.ID, mock.AnythingOfType("time.Time")).Return(nil)

		err := uc.AssignAdmin(ctx, admin, "target")
		assert.NoError(t, err)
		grantRepo.AssertExpectations(t)
	})

	t.Run("Should refuse recruiters even for themselves", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGrantRepo), new(MockNotifier))

		err := uc.AssignAdmin(ctx, recruiterUser(), recruiterUser().ID)
		assert.Error(t, err)
	})
}
