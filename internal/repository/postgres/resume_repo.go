package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeSelect = `
	SELECT r.id, r.job_seeker_profile_id, r.title, r.file_url, r.is_active, r.created_at, p.user_id
	FROM resumes r
	JOIN job_seeker_profiles p ON r.job_seeker_profile_id = p.id`

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var resume domain.Resume
	err := row.Scan(
		&resume.ID, &resume.JobSeekerProfileID, &resume.Title, &resume.FileURL,
		&resume.IsActive, &resume.CreatedAt, &resume.OwnerUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	query := `INSERT INTO resumes (id, job_seeker_profile_id, title, file_url, is_active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		resume.ID, resume.JobSeekerProfileID, resume.Title, resume.FileURL,
		resume.IsActive, resume.CreatedAt,
	)
	return err
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	return scanResume(r.db.QueryRow(ctx, resumeSelect+` WHERE r.id = $1`, id))
}

func (r *resumeRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.Resume, error) {
	rows, err := r.db.Query(ctx, resumeSelect+` WHERE r.job_seeker_profile_id = $1 ORDER BY r.created_at DESC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *resume)
	}
	return resumes, rows.Err()
}

// Activate deactivates every sibling and activates the target in one
// transaction, so at most one resume per profile is ever active.
func (r *resumeRepo) Activate(ctx context.Context, profileID, resumeID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE resumes SET is_active = false WHERE job_seeker_profile_id = $1`,
		profileID,
	); err != nil {
		return err
	}
	result, err := tx.Exec(ctx,
		`UPDATE resumes SET is_active = true WHERE id = $1 AND job_seeker_profile_id = $2`,
		resumeID, profileID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit(ctx)
}
