package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, description) VALUES ($1, $2, $3)`,
		skill.ID, skill.Name, skill.Description,
	)
	return err
}

func (r *skillRepo) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description FROM skills WHERE LOWER(name) = LOWER($1)`,
		name,
	).Scan(&skill.ID, &skill.Name, &skill.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM skills ORDER BY name`)
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
