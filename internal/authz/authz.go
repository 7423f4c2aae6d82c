// Package authz is the authorization evaluator: stateless predicates over the
// caller (with its grants and active role) and the target entity. Every
// role-scoped capability requires BOTH an approved grant for the role AND
// that role being the caller's currently active one.
package authz

import (
	"recruitment-platform/internal/domain"
)

// HasApprovedGrant reports whether the user holds an approved grant for role.
func HasApprovedGrant(u *domain.User, role domain.RoleName) bool {
	if u == nil {
		return false
	}
	for _, g := range u.Grants {
		if g.Role == role && g.IsApproved {
			return true
		}
	}
	return false
}

// CanActAs is the core rule: active role selected AND approved grant held,
// concurrently. Selecting a role whose approval was never given (or both
// checks passing at different times) is not enough.
func CanActAs(u *domain.User, role domain.RoleName) bool {
	if u == nil || !u.IsActive || u.ActiveRole == nil || *u.ActiveRole != role {
		return false
	}
	return HasApprovedGrant(u, role)
}

func IsAdmin(u *domain.User) bool {
	return CanActAs(u, domain.RoleAdmin)
}

func IsRecruiter(u *domain.User) bool {
	return CanActAs(u, domain.RoleRecruiter)
}

func IsJobSeeker(u *domain.User) bool {
	return CanActAs(u, domain.RoleJobSeeker)
}

// OwnsPosting reports whether the caller is the posting's derived owner: the
// user behind its recruiter profile.
func OwnsPosting(u *domain.User, posting *domain.JobPosting) bool {
	if u == nil || posting == nil || posting.RecruiterUserID == nil {
		return false
	}
	return *posting.RecruiterUserID == u.ID
}

// OwnsApplication reports whether the caller is the applying job seeker.
func OwnsApplication(u *domain.User, app *domain.Application) bool {
	if u == nil || app == nil {
		return false
	}
	return app.JobSeekerID == u.ID
}

// RecruitsApplication reports whether the caller owns the posting the
// application targets.
func RecruitsApplication(u *domain.User, app *domain.Application) bool {
	if u == nil || app == nil || app.RecruiterUserID == nil {
		return false
	}
	return *app.RecruiterUserID == u.ID
}

// RecruitsInterview reports whether the caller owns the posting behind the
// interview's application.
func RecruitsInterview(u *domain.User, iv *domain.Interview) bool {
	if u == nil || iv == nil || iv.RecruiterUserID == nil {
		return false
	}
	return *iv.RecruiterUserID == u.ID
}

// OwnsResume reports whether the caller is the job seeker behind the resume's
// profile.
func OwnsResume(u *domain.User, resume *domain.Resume) bool {
	if u == nil || resume == nil || resume.OwnerUserID == nil {
		return false
	}
	return *resume.OwnerUserID == u.ID
}
