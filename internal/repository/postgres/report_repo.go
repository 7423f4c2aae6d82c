package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type reportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) domain.ReportRepository {
	return &reportRepo{db: db}
}

// RecruiterJobStats aggregates per posting. The hired ratio and days-to-hire
// are computed in SQL so the usecase only shapes the output.
func (r *reportRepo) RecruiterJobStats(ctx context.Context, recruiterProfileID string) ([]domain.RecruiterJobStats, error) {
	query := `
		SELECT
			j.id,
			j.title,
			j.views_count,
			COUNT(a.id) AS total_applications,
			COUNT(a.id) FILTER (WHERE a.status = 'Hired') AS hired_count,
			COUNT(i.id) FILTER (WHERE i.status = 'Completed') AS interviews_completed,
			CASE WHEN COUNT(a.id) = 0 THEN 0
			     ELSE COUNT(a.id) FILTER (WHERE a.status = 'Hired')::float / COUNT(a.id)
			END AS hired_ratio,
			AVG(EXTRACT(EPOCH FROM (a.updated_at - a.applied_at)) / 86400.0)
			    FILTER (WHERE a.status = 'Hired') AS avg_days_to_hire
		FROM job_postings j
		LEFT JOIN applications a ON a.job_posting_id = j.id
		LEFT JOIN interviews i ON i.application_id = a.id
		WHERE j.recruiter_profile_id = $1
		GROUP BY j.id, j.title, j.views_count
		ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query, recruiterProfileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.RecruiterJobStats
	for rows.Next() {
		var s domain.RecruiterJobStats
		if err := rows.Scan(
			&s.JobID, &s.JobTitle, &s.ViewsCount, &s.TotalApplications,
			&s.HiredCount, &s.InterviewsCompleted, &s.HiredRatio, &s.AvgDaysToHire,
		); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *reportRepo) JobSeekerStats(ctx context.Context, seekerUserID string) (*domain.JobSeekerStats, error) {
	stats := &domain.JobSeekerStats{
		ByStatus: make(map[domain.ApplicationStatus]int64),
	}

	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE job_seeker_id = $1 GROUP BY status`,
		seekerUserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.TotalApplications += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE i.status = 'Scheduled' AND i.scheduled_at > NOW()),
			COUNT(*) FILTER (WHERE i.status = 'Completed')
		FROM interviews i
		JOIN applications a ON i.application_id = a.id
		WHERE a.job_seeker_id = $1`
	if err := r.db.QueryRow(ctx, query, seekerUserID).Scan(
		&stats.InterviewsUpcoming, &stats.InterviewsCompleted,
	); err != nil {
		return nil, err
	}
	return stats, nil
}
