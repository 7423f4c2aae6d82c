package domain

import "context"

// RecruiterJobStats aggregates hiring outcomes per posting.
type RecruiterJobStats struct {
	JobID               string   `json:"job_id"`
	JobTitle            string   `json:"job_title"`
	ViewsCount          int64    `json:"views_count"`
	TotalApplications   int64    `json:"total_applications"`
	HiredCount          int64    `json:"hired_count"`
	InterviewsCompleted int64    `json:"interviews_completed"`
	HiredRatio          float64  `json:"hired_ratio"`
	AvgDaysToHire       *float64 `json:"avg_days_to_hire,omitempty"`
}

type JobSeekerStats struct {
	TotalApplications   int64                       `json:"total_applications"`
	ByStatus            map[ApplicationStatus]int64 `json:"by_status"`
	InterviewsUpcoming  int64                       `json:"interviews_upcoming"`
	InterviewsCompleted int64                       `json:"interviews_completed"`
}

type ReportRepository interface {
	RecruiterJobStats(ctx context.Context, recruiterProfileID string) ([]RecruiterJobStats, error)
	JobSeekerStats(ctx context.Context, seekerUserID string) (*JobSeekerStats, error)
}

type ReportUsecase interface {
	RecruiterReport(ctx context.Context, caller *User) ([]RecruiterJobStats, error)
	JobSeekerReport(ctx context.Context, caller *User) (*JobSeekerStats, error)
	// ExportRecruiterReport renders the recruiter report as an xlsx workbook.
	ExportRecruiterReport(ctx context.Context, caller *User) ([]byte, error)
}
