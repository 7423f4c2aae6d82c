package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
)

func userWith(active *domain.RoleName, grants ...domain.RoleGrant) *domain.User {
	return &domain.User{
		ID:         "u1",
		IsActive:   true,
		ActiveRole: active,
		Grants:     grants,
	}
}

func TestCanActAs(t *testing.T) {
	recruiter := domain.RoleRecruiter

	t.Run("Should require both the active role and an approved grant", func(t *testing.T) {
		u := userWith(&recruiter, domain.RoleGrant{Role: domain.RoleRecruiter, IsApproved: true})
		assert.True(t, authz.CanActAs(u, domain.RoleRecruiter))
	})

	t.Run("Should refuse an active role backed only by a pending grant", func(t *testing.T) {
		u := userWith(&recruiter, domain.RoleGrant{Role: domain.RoleRecruiter, IsApproved: false})
		assert.False(t, authz.CanActAs(u, domain.RoleRecruiter))
	})

	t.Run("Should refuse an approved grant that is not the active role", func(t *testing.T) {
		seeker := domain.RoleJobSeeker
		u := userWith(&seeker,
			domain.RoleGrant{Role: domain.RoleJobSeeker, IsApproved: true},
			domain.RoleGrant{Role: domain.RoleRecruiter, IsApproved: true},
		)
		assert.False(t, authz.CanActAs(u, domain.RoleRecruiter))
		assert.True(t, authz.CanActAs(u, domain.RoleJobSeeker))
	})

	t.Run("Should refuse users with no active role", func(t *testing.T) {
		u := userWith(nil, domain.RoleGrant{Role: domain.RoleRecruiter, IsApproved: true})
		assert.False(t, authz.CanActAs(u, domain.RoleRecruiter))
	})

	t.Run("Should refuse deactivated accounts", func(t *testing.T) {
		u := userWith(&recruiter, domain.RoleGrant{Role: domain.RoleRecruiter, IsApproved: true})
		u.IsActive = false
		assert.False(t, authz.CanActAs(u, domain.RoleRecruiter))
	})

	t.Run("Should tolerate nil users", func(t *testing.T) {
		assert.False(t, authz.CanActAs(nil, domain.RoleAdmin))
		assert.False(t, authz.HasApprovedGrant(nil, domain.RoleAdmin))
	})
}

func TestOwnershipPredicates(t *testing.T) {
	owner := "u1"
	u := &domain.User{ID: owner, IsActive: true}

	t.Run("Should match the user behind the recruiter profile", func(t *testing.T) {
		assert.True(t, authz.OwnsPosting(u, &domain.JobPosting{RecruiterUserID: &owner}))
		assert.False(t, authz.OwnsPosting(u, &domain.JobPosting{}))
	})

	t.Run("Should match the applying seeker", func(t *testing.T) {
		assert.True(t, authz.OwnsApplication(u, &domain.Application{JobSeekerID: owner}))
		assert.False(t, authz.OwnsApplication(u, &domain.Application{JobSeekerID: "other"}))
	})

	t.Run("Should resolve interview ownership through the posting", func(t *testing.T) {
		assert.True(t, authz.RecruitsInterview(u, &domain.Interview{RecruiterUserID: &owner}))
		assert.False(t, authz.RecruitsInterview(u, &domain.Interview{}))
		assert.False(t, authz.RecruitsInterview(nil, &domain.Interview{RecruiterUserID: &owner}))
	})

	t.Run("Should resolve resume ownership through the profile", func(t *testing.T) {
		assert.True(t, authz.OwnsResume(u, &domain.Resume{OwnerUserID: &owner}))
		assert.False(t, authz.OwnsResume(u, nil))
	})
}
