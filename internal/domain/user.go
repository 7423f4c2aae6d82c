package domain

import (
	"context"
	"time"
)

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleJobSeeker RoleName = "JobSeeker"
	RoleRecruiter RoleName = "Recruiter"
	RoleAdmin     RoleName = "Admin"
)

// Valid reports whether the role is one of the known role names.
func (r RoleName) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	AvatarURL    *string     `json:"avatar_url,omitempty"`
	ActiveRole   *RoleName   `json:"active_role,omitempty"`
	IsVerified   bool        `json:"is_verified"`
	IsActive     bool        `json:"is_active"`
	Grants       []RoleGrant `json:"grants,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RoleGrant is a (user, role) pair. It is created pending, flipped to approved
// by an admin, and never deleted. Unique per (user, role).
type RoleGrant struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Role       RoleName   `json:"role"`
	IsApproved bool       `json:"is_approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy *string    `json:"approved_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Joined for admin listings
	Username *string `json:"username,omitempty"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// GetByID returns the user with its role grants populated.
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
	SetActiveRole(ctx context.Context, userID string, role RoleName) error
	// ListActiveJobSeekerIDs returns ids of active users holding an approved
	// JobSeeker grant; used for the new-job broadcast.
	ListActiveJobSeekerIDs(ctx context.Context) ([]string, error)
}

type RoleGrantRepository interface {
	Create(ctx context.Context, grant *RoleGrant) error
	GetByUserAndRole(ctx context.Context, userID string, role RoleName) (*RoleGrant, error)
	ListByUser(ctx context.Context, userID string) ([]RoleGrant, error)
	ListPending(ctx context.Context) ([]RoleGrant, error)
	// Approve flips the matching unapproved grants and returns how many rows
	// were actually touched. Already-approved and unknown ids are skipped.
	Approve(ctx context.Context, grantIDs []string, approvedBy string, approvedAt time.Time) (int64, []RoleGrant, error)
	// EnsureApproved creates the grant approved, or approves it in place if it
	// already exists. Used for admin assignment.
	EnsureApproved(ctx context.Context, userID string, role RoleName, approvedBy string, approvedAt time.Time) error
}

type AuthUsecase interface {
	Register(ctx context.Context, username, email, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	RequestRole(ctx context.Context, caller *User, role RoleName) (*RoleGrant, error)
	ActivateRole(ctx context.Context, caller *User, role RoleName) error
	ListMyGrants(ctx context.Context, caller *User) ([]RoleGrant, error)
	ListPendingGrants(ctx context.Context, caller *User) ([]RoleGrant, error)
	ApproveGrants(ctx context.Context, caller *User, grantIDs []string) (int64, error)
	AssignAdmin(ctx context.Context, caller *User, targetUserID string) error
}
