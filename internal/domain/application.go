package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "Applied"
	ApplicationStatusOffered   ApplicationStatus = "Offered"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusHired     ApplicationStatus = "Hired"
	ApplicationStatusWithdrawn ApplicationStatus = "Withdrawn"
)

// Application is a job seeker's application to a posting. Unique per
// (job_seeker, job_posting). Withdrawn, Hired and Rejected are terminal;
// the record is never deleted.
type Application struct {
	ID           string            `json:"id"`
	JobSeekerID  string            `json:"job_seeker_id"`
	JobPostingID string            `json:"job_posting_id"`
	ResumeID     *string           `json:"resume_id,omitempty"`
	Status       ApplicationStatus `json:"status"`
	CoverLetter  *string           `json:"cover_letter,omitempty"`
	AppliedAt    time.Time         `json:"applied_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Joined for responses and ownership checks
	JobTitle        *string `json:"job_title,omitempty"`
	JobSlug         *string `json:"job_slug,omitempty"`
	SeekerUsername  *string `json:"seeker_username,omitempty"`
	RecruiterUserID *string `json:"-"`
}

type InterviewStatus string

const (
	InterviewStatusScheduled InterviewStatus = "Scheduled"
	InterviewStatusCompleted InterviewStatus = "Completed"
	InterviewStatusCanceled  InterviewStatus = "Canceled"
)

// Interview belongs to exactly one application. Location is a
// system-generated meeting link and is never settable by callers.
type Interview struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"application_id"`
	ScheduledAt   time.Time       `json:"scheduled_at"`
	Location      string          `json:"location"`
	Status        InterviewStatus `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Joined for responses and ownership checks
	JobTitle        *string `json:"job_title,omitempty"`
	SeekerUserID    *string `json:"-"`
	RecruiterUserID *string `json:"-"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Exists(ctx context.Context, seekerID, postingID string) (bool, error)
	// UpdateStatus is conditional on the expected current status;
	// ErrStaleStatus on zero rows.
	UpdateStatus(ctx context.Context, id string, from, to ApplicationStatus) error
	ListBySeeker(ctx context.Context, seekerID string) ([]Application, error)
	ListByPosting(ctx context.Context, postingID string) ([]Application, error)
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
	UpdateStatus(ctx context.Context, id string, from, to InterviewStatus) error
	ListForSeeker(ctx context.Context, userID string) ([]Interview, error)
	ListForRecruiter(ctx context.Context, userID string) ([]Interview, error)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, caller *User, postingSlug string, resumeID, coverLetter string) (*Application, error)
	Withdraw(ctx context.Context, caller *User, applicationID string) (*Application, error)
	Offer(ctx context.Context, caller *User, applicationID string) (*Application, error)
	Reject(ctx context.Context, caller *User, applicationID string) (*Application, error)
	AcceptOffer(ctx context.Context, caller *User, applicationID string, confirm bool) (*Application, error)
	ListMine(ctx context.Context, caller *User) ([]Application, error)
	ListForPosting(ctx context.Context, caller *User, postingSlug string) ([]Application, error)
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, caller *User, applicationID string, when time.Time, notes string) (*Interview, error)
	Cancel(ctx context.Context, caller *User, interviewID string) (*Interview, error)
	Complete(ctx context.Context, caller *User, interviewID string) (*Interview, error)
	ListMine(ctx context.Context, caller *User) ([]Interview, error)
}
