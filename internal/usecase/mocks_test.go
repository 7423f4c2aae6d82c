package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"recruitment-platform/internal/domain"
)

// --- Test users ---

func roleUser(role domain.RoleName, approved bool) *domain.User {
	grant := domain.RoleGrant{
		ID:         "grant-" + string(role),
		UserID:     "user-" + string(role),
		Role:       role,
		IsApproved: approved,
	}
	return &domain.User{
		ID:         "user-" + string(role),
		Username:   "user_" + string(role),
		IsActive:   true,
		ActiveRole: &role,
		Grants:     []domain.RoleGrant{grant},
	}
}

func seekerUser() *domain.User    { return roleUser(domain.RoleJobSeeker, true) }
func recruiterUser() *domain.User { return roleUser(domain.RoleRecruiter, true) }
func adminUser() *domain.User     { return roleUser(domain.RoleAdmin, true) }

func strPtr(s string) *string { return &s }

// --- Repository mocks ---

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) SetActiveRole(ctx context.Context, userID string, role domain.RoleName) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockUserRepo) ListActiveJobSeekerIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGrantRepo struct {
	mock.Mock
}

func (m *MockGrantRepo) Create(ctx context.Context, grant *domain.RoleGrant) error {
	return m.Called(ctx, grant).Error(0)
}

func (m *MockGrantRepo) GetByUserAndRole(ctx context.Context, userID string, role domain.RoleName) (*domain.RoleGrant, error) {
	args := m.Called(ctx, userID, role)
	if g := args.Get(0); g != nil {
		return g.(*domain.RoleGrant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepo) ListByUser(ctx context.Context, userID string) ([]domain.RoleGrant, error) {
	args := m.Called(ctx, userID)
	if g := args.Get(0); g != nil {
		return g.([]domain.RoleGrant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepo) ListPending(ctx context.Context) ([]domain.RoleGrant, error) {
	args := m.Called(ctx)
	if g := args.Get(0); g != nil {
		return g.([]domain.RoleGrant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGrantRepo) Approve(ctx context.Context, grantIDs []string, approvedBy string, approvedAt time.Time) (int64, []domain.RoleGrant, error) {
	args := m.Called(ctx, grantIDs, approvedBy, approvedAt)
	var approved []domain.RoleGrant
	if g := args.Get(1); g != nil {
		approved = g.([]domain.RoleGrant)
	}
	return args.Get(0).(int64), approved, args.Error(2)
}

func (m *MockGrantRepo) EnsureApproved(ctx context.Context, userID string, role domain.RoleName, approvedBy string, approvedAt time.Time) error {
	return m.Called(ctx, userID, role, approvedBy, approvedAt).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, posting *domain.JobPosting) error {
	return m.Called(ctx, posting).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.JobPosting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepo) GetBySlug(ctx context.Context, slug string) (*domain.JobPosting, error) {
	args := m.Called(ctx, slug)
	if p := args.Get(0); p != nil {
		return p.(*domain.JobPosting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, posting *domain.JobPosting) error {
	return m.Called(ctx, posting).Error(0)
}

func (m *MockJobRepo) UpdateStatus(ctx context.Context, id string, from, to domain.JobStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockJobRepo) MarkExpired(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepo) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepo) FetchApproved(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, limit, offset)
	var postings []domain.JobPosting
	if p := args.Get(0); p != nil {
		postings = p.([]domain.JobPosting)
	}
	return postings, args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchAll(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, limit, offset)
	var postings []domain.JobPosting
	if p := args.Get(0); p != nil {
		postings = p.([]domain.JobPosting)
	}
	return postings, args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchByRecruiterProfile(ctx context.Context, profileID string, limit, offset int) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, profileID, limit, offset)
	var postings []domain.JobPosting
	if p := args.Get(0); p != nil {
		postings = p.([]domain.JobPosting)
	}
	return postings, args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchPending(ctx context.Context) ([]domain.JobPosting, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.JobPosting), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepo) SearchApprovedBySkills(ctx context.Context, skills []string, limit int) ([]domain.JobPosting, error) {
	args := m.Called(ctx, skills, limit)
	if p := args.Get(0); p != nil {
		return p.([]domain.JobPosting), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRecruiterProfileRepo struct {
	mock.Mock
}

func (m *MockRecruiterProfileRepo) Create(ctx context.Context, profile *domain.RecruiterProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockRecruiterProfileRepo) GetByID(ctx context.Context, id string) (*domain.RecruiterProfile, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.RecruiterProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecruiterProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.RecruiterProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecruiterProfileRepo) Update(ctx context.Context, profile *domain.RecruiterProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockRecruiterProfileRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.RecruiterProfile, int64, error) {
	args := m.Called(ctx, limit, offset)
	var profiles []domain.RecruiterProfile
	if p := args.Get(0); p != nil {
		profiles = p.([]domain.RecruiterProfile)
	}
	return profiles, args.Get(1).(int64), args.Error(2)
}

type MockSeekerProfileRepo struct {
	mock.Mock
}

func (m *MockSeekerProfileRepo) Create(ctx context.Context, profile *domain.JobSeekerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockSeekerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.JobSeekerProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSeekerProfileRepo) Update(ctx context.Context, profile *domain.JobSeekerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockSeekerProfileRepo) SetSkills(ctx context.Context, profileID string, skillIDs []string) error {
	return m.Called(ctx, profileID, skillIDs).Error(0)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *MockSkillRepo) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	args := m.Called(ctx, name)
	if s := args.Get(0); s != nil {
		return s.(*domain.Skill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]domain.Skill), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, seekerID, postingID string) (bool, error) {
	args := m.Called(ctx, seekerID, postingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockApplicationRepo) ListBySeeker(ctx context.Context, seekerID string) ([]domain.Application, error) {
	args := m.Called(ctx, seekerID)
	if a := args.Get(0); a != nil {
		return a.([]domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationRepo) ListByPosting(ctx context.Context, postingID string) ([]domain.Application, error) {
	args := m.Called(ctx, postingID)
	if a := args.Get(0); a != nil {
		return a.([]domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if iv := args.Get(0); iv != nil {
		return iv.(*domain.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewRepo) UpdateStatus(ctx context.Context, id string, from, to domain.InterviewStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *MockInterviewRepo) ListForSeeker(ctx context.Context, userID string) ([]domain.Interview, error) {
	args := m.Called(ctx, userID)
	if iv := args.Get(0); iv != nil {
		return iv.([]domain.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInterviewRepo) ListForRecruiter(ctx context.Context, userID string) ([]domain.Interview, error) {
	args := m.Called(ctx, userID)
	if iv := args.Get(0); iv != nil {
		return iv.([]domain.Interview), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	return m.Called(ctx, resume).Error(0)
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Resume), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResumeRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.Resume, error) {
	args := m.Called(ctx, profileID)
	if r := args.Get(0); r != nil {
		return r.([]domain.Resume), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResumeRepo) Activate(ctx context.Context, profileID, resumeID string) error {
	return m.Called(ctx, profileID, resumeID).Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, recipientID, limit, offset)
	var notifications []domain.Notification
	if n := args.Get(0); n != nil {
		notifications = n.([]domain.Notification)
	}
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepo) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	return m.Called(ctx, id, recipientID).Error(0)
}

// MockNotifier records dispatched events so tests can assert a transition
// fired exactly one notification.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) UserRegistered(ctx context.Context, user *domain.User) {
	m.Called(ctx, user)
}

func (m *MockNotifier) RoleApproved(ctx context.Context, grant *domain.RoleGrant) {
	m.Called(ctx, grant)
}

func (m *MockNotifier) JobStatusChanged(ctx context.Context, posting *domain.JobPosting, oldStatus, newStatus domain.JobStatus) {
	m.Called(ctx, posting, oldStatus, newStatus)
}

func (m *MockNotifier) JobPublished(ctx context.Context, posting *domain.JobPosting) {
	m.Called(ctx, posting)
}

func (m *MockNotifier) ApplicationStatusChanged(ctx context.Context, app *domain.Application, oldStatus, newStatus domain.ApplicationStatus) {
	m.Called(ctx, app, oldStatus, newStatus)
}

func (m *MockNotifier) InterviewStatusChanged(ctx context.Context, interview *domain.Interview, oldStatus, newStatus domain.InterviewStatus) {
	m.Called(ctx, interview, oldStatus, newStatus)
}

func (m *MockNotifier) ResumeCreated(ctx context.Context, resume *domain.Resume) {
	m.Called(ctx, resume)
}

func (m *MockNotifier) ResumeActivated(ctx context.Context, resume *domain.Resume) {
	m.Called(ctx, resume)
}
