package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/auth"
	"recruitment-platform/pkg/email"
)

type authUsecase struct {
	userRepo    domain.UserRepository
	grantRepo   domain.RoleGrantRepository
	notifier    domain.Notifier
	emailSvc    *email.EmailService
	frontendURL string
	log         *slog.Logger
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	grantRepo domain.RoleGrantRepository,
	notifier domain.Notifier,
	emailSvc *email.EmailService,
	frontendURL string,
	log *slog.Logger,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		grantRepo:   grantRepo,
		notifier:    notifier,
		emailSvc:    emailSvc,
		frontendURL: frontendURL,
		log:         log,
	}
}

// Register creates the user together with an auto-approved JobSeeker grant.
// The welcome notification and email are best-effort side effects.
func (u *authUsecase) Register(ctx context.Context, username, emailAddr, password string) (*domain.User, error) {
	if username == "" || emailAddr == "" {
		return nil, apperror.BadRequest("Username and email are required")
	}
	if len(password) < 8 {
		return nil, apperror.BadRequest("Password must be at least 8 characters")
	}

	if existing, err := u.userRepo.GetByUsername(ctx, username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	} else if existing != nil {
		return nil, apperror.Duplicate(apperror.KindDuplicateIdentity, "Username is already taken")
	}
	if existing, err := u.userRepo.GetByEmail(ctx, emailAddr); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	} else if existing != nil {
		return nil, apperror.Duplicate(apperror.KindDuplicateIdentity, "Email is already registered")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	// Everyone starts as an approved job seeker.
	grant := &domain.RoleGrant{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		Role:       domain.RoleJobSeeker,
		IsApproved: true,
		ApprovedAt: &now,
		CreatedAt:  now,
	}
	if err := u.grantRepo.Create(ctx, grant); err != nil {
		return nil, apperror.Internal(err)
	}
	user.Grants = []domain.RoleGrant{*grant}

	u.notifier.UserRegistered(ctx, user)

	if u.emailSvc != nil && u.emailSvc.IsConfigured() {
		if err := u.emailSvc.SendWelcomeEmail(user.Email, email.WelcomeEmailData{
			Username:    user.Username,
			FrontendURL: u.frontendURL,
		}); err != nil {
			u.log.Error("failed to send welcome email", "user", user.ID, "error", err)
		}
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		// Allow login with email as well
		user, err = u.userRepo.GetByEmail(ctx, username)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is disabled")
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// RequestRole creates a pending grant. Admin cannot be self-requested.
func (u *authUsecase) RequestRole(ctx context.Context, caller *domain.User, role domain.RoleName) (*domain.RoleGrant, error) {
	if role != domain.RoleJobSeeker && role != domain.RoleRecruiter {
		return nil, apperror.BadRequest("Only the JobSeeker or Recruiter role can be requested")
	}
	existing, err := u.grantRepo.GetByUserAndRole(ctx, caller.ID, role)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Duplicate(apperror.KindDuplicateGrant, "You already requested or hold this role")
	}

	grant := &domain.RoleGrant{
		ID:        uuid.New().String(),
		UserID:    caller.ID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := u.grantRepo.Create(ctx, grant); err != nil {
		return nil, apperror.Internal(err)
	}
	return grant, nil
}

// ActivateRole switches the caller's active role. Approval must hold at the
// moment of activation; a pending grant is not enough.
func (u *authUsecase) ActivateRole(ctx context.Context, caller *domain.User, role domain.RoleName) error {
	if !role.Valid() {
		return apperror.BadRequest("Unknown role name")
	}
	grant, err := u.grantRepo.GetByUserAndRole(ctx, caller.ID, role)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	if grant == nil || !grant.IsApproved {
		return apperror.RoleNotApproved("Role does not exist for you or has not been approved")
	}
	if err := u.userRepo.SetActiveRole(ctx, caller.ID, role); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) ListMyGrants(ctx context.Context, caller *domain.User) ([]domain.RoleGrant, error) {
	grants, err := u.grantRepo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return grants, nil
}

func (u *authUsecase) ListPendingGrants(ctx context.Context, caller *domain.User) ([]domain.RoleGrant, error) {
	if !authz.IsAdmin(caller) {
		return nil, apperror.Forbidden("Only admins can review role requests")
	}
	grants, err := u.grantRepo.ListPending(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return grants, nil
}

// ApproveGrants flips pending grants to approved. Idempotent: already
// approved or unknown ids are skipped, only touched rows are counted and
// notified.
func (u *authUsecase) ApproveGrants(ctx context.Context, caller *domain.User, grantIDs []string) (int64, error) {
	if !authz.IsAdmin(caller) {
		return 0, apperror.Forbidden("Only admins can approve role requests")
	}
	if len(grantIDs) == 0 {
		return 0, apperror.BadRequest("A list of grant ids is required")
	}
	count, approved, err := u.grantRepo.Approve(ctx, grantIDs, caller.ID, time.Now())
	if err != nil {
		return 0, apperror.Internal(err)
	}
	for i := range approved {
		u.notifier.RoleApproved(ctx, &approved[i])
	}
	return count, nil
}

// AssignAdmin creates or approves the Admin grant for the target user.
func (u *authUsecase) AssignAdmin(ctx context.Context, caller *domain.User, targetUserID string) error {
	if !authz.IsAdmin(caller) {
		return apperror.Forbidden("Only admins can assign the Admin role")
	}
	if _, err := u.userRepo.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return apperror.Internal(err)
	}
	if err := u.grantRepo.EnsureApproved(ctx, targetUserID, domain.RoleAdmin, caller.ID, time.Now()); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
