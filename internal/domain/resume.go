package domain

import (
	"context"
	"time"
)

type Skill struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type JobSeekerProfile struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Summary     *string    `json:"summary,omitempty"`
	Experience  *string    `json:"experience,omitempty"`
	Education   *string    `json:"education,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Skills      []Skill    `json:"skills,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Resume is an uploaded CV. At most one resume per profile is active at any
// time; activation deactivates all siblings in the same transaction.
type Resume struct {
	ID                 string    `json:"id"`
	JobSeekerProfileID string    `json:"job_seeker_profile_id"`
	Title              *string   `json:"title,omitempty"`
	FileURL            string    `json:"file_url"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`

	// Joined for ownership checks
	OwnerUserID *string `json:"-"`
}

type SkillRepository interface {
	Create(ctx context.Context, skill *Skill) error
	GetByName(ctx context.Context, name string) (*Skill, error)
	List(ctx context.Context) ([]Skill, error)
}

type JobSeekerProfileRepository interface {
	Create(ctx context.Context, profile *JobSeekerProfile) error
	GetByUserID(ctx context.Context, userID string) (*JobSeekerProfile, error)
	Update(ctx context.Context, profile *JobSeekerProfile) error
	SetSkills(ctx context.Context, profileID string, skillIDs []string) error
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	ListByProfile(ctx context.Context, profileID string) ([]Resume, error)
	// Activate deactivates every resume of the profile and activates the
	// target in a single transaction.
	Activate(ctx context.Context, profileID, resumeID string) error
}

type JobSeekerProfileUsecase interface {
	CreateProfile(ctx context.Context, caller *User, profile *JobSeekerProfile, skillNames []string) error
	GetMyProfile(ctx context.Context, caller *User) (*JobSeekerProfile, error)
	UpdateProfile(ctx context.Context, caller *User, profile *JobSeekerProfile, skillNames []string) error
	ListSkills(ctx context.Context) ([]Skill, error)
}

type ResumeUsecase interface {
	Upload(ctx context.Context, caller *User, title string, filename string, content []byte) (*Resume, error)
	ListMine(ctx context.Context, caller *User) ([]Resume, error)
	Activate(ctx context.Context, caller *User, resumeID string) (*Resume, error)
}
