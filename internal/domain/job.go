package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	// ErrStaleStatus is returned by conditional status updates when the row's
	// current status no longer matches the expected one (a concurrent
	// transition won).
	ErrStaleStatus = errors.New("entity status changed concurrently")
)

type JobType string

const (
	JobTypeFullTime  JobType = "Full-time"
	JobTypePartTime  JobType = "Part-time"
	JobTypeFreelance JobType = "Freelance"
	JobTypeIntern    JobType = "Intern"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeFreelance, JobTypeIntern:
		return true
	}
	return false
}

type JobStatus string

const (
	JobStatusDraft    JobStatus = "Draft"
	JobStatusPending  JobStatus = "Pending"
	JobStatusApproved JobStatus = "Approved"
	JobStatusRejected JobStatus = "Rejected"
	JobStatusExpired  JobStatus = "Expired"
)

type RecruiterProfile struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	CompanyWebsite     *string   `json:"company_website,omitempty"`
	CompanyDescription *string   `json:"company_description,omitempty"`
	Industry           *string   `json:"industry,omitempty"`
	Address            *string   `json:"address,omitempty"`
	CompanyLogoURL     *string   `json:"company_logo_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type JobPosting struct {
	ID                 string     `json:"id"`
	RecruiterProfileID string     `json:"recruiter_profile_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Requirements       *string    `json:"requirements,omitempty"`
	Location           string     `json:"location"`
	SalaryMin          *float64   `json:"salary_min,omitempty"`
	SalaryMax          *float64   `json:"salary_max,omitempty"`
	JobType            JobType    `json:"job_type"`
	Status             JobStatus  `json:"status"`
	IsActive           bool       `json:"is_active"`
	ExpirationDate     *time.Time `json:"expiration_date,omitempty"`
	ViewsCount         int64      `json:"views_count"`
	Slug               string     `json:"slug"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Joined for responses and ownership checks
	CompanyName     *string `json:"company_name,omitempty"`
	RecruiterUserID *string `json:"-"`
}

// Expired reports whether the posting's expiration date has passed. The
// demotion to Expired is applied lazily on every load or mutation; there is
// no background sweep.
func (p *JobPosting) Expired(now time.Time) bool {
	return p.ExpirationDate != nil && p.ExpirationDate.Before(now)
}

type RecruiterProfileRepository interface {
	Create(ctx context.Context, profile *RecruiterProfile) error
	GetByID(ctx context.Context, id string) (*RecruiterProfile, error)
	GetByUserID(ctx context.Context, userID string) (*RecruiterProfile, error)
	Update(ctx context.Context, profile *RecruiterProfile) error
	Fetch(ctx context.Context, limit, offset int) ([]RecruiterProfile, int64, error)
}

type JobPostingRepository interface {
	Create(ctx context.Context, posting *JobPosting) error
	GetByID(ctx context.Context, id string) (*JobPosting, error)
	GetBySlug(ctx context.Context, slug string) (*JobPosting, error)
	Update(ctx context.Context, posting *JobPosting) error
	// UpdateStatus performs a conditional update: the row is only touched if
	// its current status equals from. ErrStaleStatus on zero rows.
	UpdateStatus(ctx context.Context, id string, from, to JobStatus) error
	// MarkExpired forces is_active=false, status=Expired regardless of the
	// stored status. Used by the lazy expiration check.
	MarkExpired(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
	FetchApproved(ctx context.Context, limit, offset int) ([]JobPosting, int64, error)
	FetchAll(ctx context.Context, limit, offset int) ([]JobPosting, int64, error)
	FetchByRecruiterProfile(ctx context.Context, profileID string, limit, offset int) ([]JobPosting, int64, error)
	FetchPending(ctx context.Context) ([]JobPosting, error)
	// SearchApprovedBySkills matches active approved postings whose
	// description or requirements mention any of the given skills.
	SearchApprovedBySkills(ctx context.Context, skills []string, limit int) ([]JobPosting, error)
}

type RecruiterProfileUsecase interface {
	CreateProfile(ctx context.Context, caller *User, profile *RecruiterProfile) error
	GetMyProfile(ctx context.Context, caller *User) (*RecruiterProfile, error)
	UpdateProfile(ctx context.Context, caller *User, profile *RecruiterProfile) error
	ListProfiles(ctx context.Context, caller *User, page, pageSize int) ([]RecruiterProfile, int64, error)
}

type JobPostingUsecase interface {
	CreateDraft(ctx context.Context, caller *User, posting *JobPosting) error
	UpdatePosting(ctx context.Context, caller *User, posting *JobPosting) error
	GetBySlug(ctx context.Context, slug string) (*JobPosting, error)
	SubmitForApproval(ctx context.Context, caller *User, slug string) (*JobPosting, error)
	Approve(ctx context.Context, caller *User, slug string) (*JobPosting, error)
	Reject(ctx context.Context, caller *User, slug string) (*JobPosting, error)
	IncrementView(ctx context.Context, slug string) (int64, error)
	ListPublic(ctx context.Context, page, pageSize int) ([]JobPosting, int64, error)
	ListForCaller(ctx context.Context, caller *User, page, pageSize int) ([]JobPosting, int64, error)
	ListPending(ctx context.Context, caller *User) ([]JobPosting, error)
	Recommend(ctx context.Context, caller *User) ([]JobPosting, error)
}
