package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const interviewSelect = `
	SELECT
		i.id, i.application_id, i.scheduled_at, i.location, i.status, i.notes,
		i.created_at, i.updated_at,
		j.title, a.job_seeker_id, rp.user_id
	FROM interviews i
	JOIN applications a ON i.application_id = a.id
	JOIN job_postings j ON a.job_posting_id = j.id
	JOIN recruiter_profiles rp ON j.recruiter_profile_id = rp.id`

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	err := row.Scan(
		&iv.ID, &iv.ApplicationID, &iv.ScheduledAt, &iv.Location, &iv.Status, &iv.Notes,
		&iv.CreatedAt, &iv.UpdatedAt,
		&iv.JobTitle, &iv.SeekerUserID, &iv.RecruiterUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	query := `INSERT INTO interviews (id, application_id, scheduled_at, location, status, notes, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		interview.ID, interview.ApplicationID, interview.ScheduledAt, interview.Location,
		interview.Status, interview.Notes, interview.CreatedAt, interview.UpdatedAt,
	)
	return err
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	return scanInterview(r.db.QueryRow(ctx, interviewSelect+` WHERE i.id = $1`, id))
}

func (r *interviewRepo) UpdateStatus(ctx context.Context, id string, from, to domain.InterviewStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE interviews SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
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

func (r *interviewRepo) ListForSeeker(ctx context.Context, userID string) ([]domain.Interview, error) {
	rows, err := r.db.Query(ctx, interviewSelect+` WHERE a.job_seeker_id = $1 ORDER BY i.scheduled_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInterviews(rows)
}

func (r *interviewRepo) ListForRecruiter(ctx context.Context, userID string) ([]domain.Interview, error) {
	rows, err := r.db.Query(ctx, interviewSelect+` WHERE rp.user_id = $1 ORDER BY i.scheduled_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInterviews(rows)
}

func collectInterviews(rows pgx.Rows) ([]domain.Interview, error) {
	var interviews []domain.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}
