package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationSelect = `
	SELECT
		a.id, a.job_seeker_id, a.job_posting_id, a.resume_id, a.status,
		a.cover_letter, a.applied_at, a.updated_at,
		j.title, j.slug, u.username, rp.user_id
	FROM applications a
	JOIN job_postings j ON a.job_posting_id = j.id
	JOIN recruiter_profiles rp ON j.recruiter_profile_id = rp.id
	JOIN users u ON a.job_seeker_id = u.id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.JobSeekerID, &a.JobPostingID, &a.ResumeID, &a.Status,
		&a.CoverLetter, &a.AppliedAt, &a.UpdatedAt,
		&a.JobTitle, &a.JobSlug, &a.SeekerUsername, &a.RecruiterUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (id, job_seeker_id, job_posting_id, resume_id, status, cover_letter, applied_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobSeekerID, app.JobPostingID, app.ResumeID, app.Status,
		app.CoverLetter, app.AppliedAt, app.UpdatedAt,
	)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

func (r *applicationRepo) Exists(ctx context.Context, seekerID, postingID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_seeker_id = $1 AND job_posting_id = $2)`,
		seekerID, postingID,
	).Scan(&exists)
	return exists, err
}

// UpdateStatus is conditional on the expected current status so concurrent
// transitions cannot both win.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrStaleStatus
	}
	return nil
}

func (r *applicationRepo) ListBySeeker(ctx context.Context, seekerID string) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+` WHERE a.job_seeker_id = $1 ORDER BY a.applied_at DESC`, seekerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepo) ListByPosting(ctx context.Context, postingID string) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+` WHERE a.job_posting_id = $1 ORDER BY a.applied_at DESC`, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	var apps []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}
