package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobPostingRepository(db *pgxpool.Pool) domain.JobPostingRepository {
	return &jobRepo{db: db}
}

const jobSelect = `
	SELECT
		j.id, j.recruiter_profile_id, j.title, j.description, j.requirements,
		j.location, j.salary_min, j.salary_max, j.job_type, j.status,
		j.is_active, j.expiration_date, j.views_count, j.slug,
		j.created_at, j.updated_at,
		rp.company_name, rp.user_id
	FROM job_postings j
	JOIN recruiter_profiles rp ON j.recruiter_profile_id = rp.id`

func scanJob(row pgx.Row) (*domain.JobPosting, error) {
	var p domain.JobPosting
	err := row.Scan(
		&p.ID, &p.RecruiterProfileID, &p.Title, &p.Description, &p.Requirements,
		&p.Location, &p.SalaryMin, &p.SalaryMax, &p.JobType, &p.Status,
		&p.IsActive, &p.ExpirationDate, &p.ViewsCount, &p.Slug,
		&p.CreatedAt, &p.UpdatedAt,
		&p.CompanyName, &p.RecruiterUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *jobRepo) Create(ctx context.Context, posting *domain.JobPosting) error {
	query := `INSERT INTO job_postings (id, recruiter_profile_id, title, description, requirements, location, salary_min, salary_max, job_type, status, is_active, expiration_date, views_count, slug, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		posting.ID, posting.RecruiterProfileID, posting.Title, posting.Description, posting.Requirements,
		posting.Location, posting.SalaryMin, posting.SalaryMax, posting.JobType, posting.Status,
		posting.IsActive, posting.ExpirationDate, posting.ViewsCount, posting.Slug,
		posting.CreatedAt, posting.UpdatedAt,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	return scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
}

func (r *jobRepo) GetBySlug(ctx context.Context, slug string) (*domain.JobPosting, error) {
	return scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.slug = $1`, slug))
}

func (r *jobRepo) Update(ctx context.Context, posting *domain.JobPosting) error {
	query := `UPDATE job_postings SET
		title = $2,
		description = $3,
		requirements = $4,
		location = $5,
		salary_min = $6,
		salary_max = $7,
		job_type = $8,
		is_active = $9,
		expiration_date = $10,
		slug = $11,
		updated_at = $12
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		posting.ID, posting.Title, posting.Description, posting.Requirements, posting.Location,
		posting.SalaryMin, posting.SalaryMax, posting.JobType, posting.IsActive,
		posting.ExpirationDate, posting.Slug, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus is the optimistic guard for lifecycle transitions: the row is
// only touched when its status still equals from.
func (r *jobRepo) UpdateStatus(ctx context.Context, id string, from, to domain.JobStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE job_postings SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
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

func (r *jobRepo) MarkExpired(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE job_postings SET status = $2, is_active = false, updated_at = $3 WHERE id = $1`,
		id, domain.JobStatusExpired, time.Now(),
	)
	return err
}

func (r *jobRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.QueryRow(ctx,
		`UPDATE job_postings SET views_count = views_count + 1 WHERE id = $1 RETURNING views_count`,
		id,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return views, nil
}

func (r *jobRepo) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_postings WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// FetchApproved excludes rows past their expiration date in SQL so both the
// page and the total agree on what is live.
func (r *jobRepo) FetchApproved(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	where := `WHERE j.status = 'Approved' AND j.is_active = true
		AND (j.expiration_date IS NULL OR j.expiration_date > NOW())`
	return r.fetch(ctx, where, nil, limit, offset)
}

func (r *jobRepo) FetchAll(ctx context.Context, limit, offset int) ([]domain.JobPosting, int64, error) {
	return r.fetch(ctx, "", nil, limit, offset)
}

func (r *jobRepo) FetchByRecruiterProfile(ctx context.Context, profileID string, limit, offset int) ([]domain.JobPosting, int64, error) {
	where := `WHERE j.recruiter_profile_id = $3`
	return r.fetch(ctx, where, []interface{}{profileID}, limit, offset)
}

func (r *jobRepo) FetchPending(ctx context.Context) ([]domain.JobPosting, error) {
	rows, err := r.db.Query(ctx, jobSelect+` WHERE j.status = 'Pending' ORDER BY j.updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// SearchApprovedBySkills matches live postings whose text mentions any of
// the given skill names, case-insensitively.
func (r *jobRepo) SearchApprovedBySkills(ctx context.Context, skills []string, limit int) ([]domain.JobPosting, error) {
	if len(skills) == 0 {
		return nil, nil
	}
	conditions := make([]string, 0, len(skills))
	args := []interface{}{limit}
	for _, skill := range skills {
		args = append(args, "%"+skill+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d OR j.requirements ILIKE $%d)", idx, idx, idx))
	}
	query := jobSelect + `
	WHERE j.status = 'Approved' AND j.is_active = true
	AND (j.expiration_date IS NULL OR j.expiration_date > NOW())
	AND (` + strings.Join(conditions, " OR ") + `)
	ORDER BY j.created_at DESC
	LIMIT $1`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

func (r *jobRepo) fetch(ctx context.Context, where string, extraArgs []interface{}, limit, offset int) ([]domain.JobPosting, int64, error) {
	query := jobSelect + ` ` + where + ` ORDER BY j.created_at DESC LIMIT $1 OFFSET $2`
	args := append([]interface{}{limit, offset}, extraArgs...)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	postings, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM job_postings j ` + where
	countQuery = strings.ReplaceAll(countQuery, "$3", "$1")
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, extraArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return postings, total, nil
}

func collectJobs(rows pgx.Rows) ([]domain.JobPosting, error) {
	var postings []domain.JobPosting
	for rows.Next() {
		p, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	return postings, rows.Err()
}
