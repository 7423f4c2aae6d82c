package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type recruiterProfileRepo struct {
	db *pgxpool.Pool
}

func NewRecruiterProfileRepository(db *pgxpool.Pool) domain.RecruiterProfileRepository {
	return &recruiterProfileRepo{db: db}
}

const recruiterProfileColumns = `id, user_id, company_name, company_website, company_description, industry, address, company_logo_url, created_at, updated_at`

func scanRecruiterProfile(row pgx.Row) (*domain.RecruiterProfile, error) {
	var p domain.RecruiterProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.CompanyWebsite, &p.CompanyDescription,
		&p.Industry, &p.Address, &p.CompanyLogoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *recruiterProfileRepo) Create(ctx context.Context, profile *domain.RecruiterProfile) error {
	query := `INSERT INTO recruiter_profiles (id, user_id, company_name, company_website, company_description, industry, address, company_logo_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.UserID, profile.CompanyName, profile.CompanyWebsite, profile.CompanyDescription,
		profile.Industry, profile.Address, profile.CompanyLogoURL, profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *recruiterProfileRepo) GetByID(ctx context.Context, id string) (*domain.RecruiterProfile, error) {
	return scanRecruiterProfile(r.db.QueryRow(ctx,
		`SELECT `+recruiterProfileColumns+` FROM recruiter_profiles WHERE id = $1`, id))
}

func (r *recruiterProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	return scanRecruiterProfile(r.db.QueryRow(ctx,
		`SELECT `+recruiterProfileColumns+` FROM recruiter_profiles WHERE user_id = $1`, userID))
}

func (r *recruiterProfileRepo) Update(ctx context.Context, profile *domain.RecruiterProfile) error {
	query := `UPDATE recruiter_profiles SET
		company_name = $2,
		company_website = $3,
		company_description = $4,
		industry = $5,
		address = $6,
		company_logo_url = $7,
		updated_at = $8
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		profile.ID, profile.CompanyName, profile.CompanyWebsite, profile.CompanyDescription,
		profile.Industry, profile.Address, profile.CompanyLogoURL, profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *recruiterProfileRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.RecruiterProfile, int64, error) {
	query := `SELECT ` + recruiterProfileColumns + ` FROM recruiter_profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.RecruiterProfile
	for rows.Next() {
		p, err := scanRecruiterProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recruiter_profiles`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
