package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type jobSeekerProfileRepo struct {
	db *pgxpool.Pool
}

func NewJobSeekerProfileRepository(db *pgxpool.Pool) domain.JobSeekerProfileRepository {
	return &jobSeekerProfileRepo{db: db}
}

func (r *jobSeekerProfileRepo) Create(ctx context.Context, profile *domain.JobSeekerProfile) error {
	query := `INSERT INTO job_seeker_profiles (id, user_id, summary, experience, education, phone_number, date_of_birth, gender, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.UserID, profile.Summary, profile.Experience, profile.Education,
		profile.PhoneNumber, profile.DateOfBirth, profile.Gender, profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *jobSeekerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	query := `SELECT id, user_id, summary, experience, education, phone_number, date_of_birth, gender, created_at, updated_at
              FROM job_seeker_profiles WHERE user_id = $1`
	var profile domain.JobSeekerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.Summary, &profile.Experience, &profile.Education,
		&profile.PhoneNumber, &profile.DateOfBirth, &profile.Gender, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	skills, err := r.loadSkills(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	profile.Skills = skills
	return &profile, nil
}

func (r *jobSeekerProfileRepo) Update(ctx context.Context, profile *domain.JobSeekerProfile) error {
	query := `UPDATE job_seeker_profiles SET
		summary = $2,
		experience = $3,
		education = $4,
		phone_number = $5,
		date_of_birth = $6,
		gender = $7,
		updated_at = $8
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		profile.ID, profile.Summary, profile.Experience, profile.Education,
		profile.PhoneNumber, profile.DateOfBirth, profile.Gender, profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetSkills replaces the profile's skill set in one transaction.
func (r *jobSeekerProfileRepo) SetSkills(ctx context.Context, profileID string, skillIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM job_seeker_profile_skills WHERE job_seeker_profile_id = $1`,
		profileID,
	); err != nil {
		return err
	}
	for _, skillID := range skillIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO job_seeker_profile_skills (job_seeker_profile_id, skill_id) VALUES ($1, $2)`,
			profileID, skillID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *jobSeekerProfileRepo) loadSkills(ctx context.Context, profileID string) ([]domain.Skill, error) {
	query := `
		SELECT s.id, s.name, s.description
		FROM skills s
		JOIN job_seeker_profile_skills ps ON ps.skill_id = s.id
		WHERE ps.job_seeker_profile_id = $1
		ORDER BY s.name`
	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var skill domain.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Description); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}
