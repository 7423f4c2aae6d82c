package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, password_hash, avatar_url, active_role, is_verified, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.AvatarURL,
		&user.ActiveRole, &user.IsVerified, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, avatar_url, active_role, is_verified, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.AvatarURL,
		user.ActiveRole, user.IsVerified, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	grants, err := r.loadGrants(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Grants = grants
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
		username = $2,
		email = $3,
		avatar_url = $4,
		is_verified = $5,
		is_active = $6,
		updated_at = $7
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.Email, user.AvatarURL,
		user.IsVerified, user.IsActive, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) SetActiveRole(ctx context.Context, userID string, role domain.RoleName) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET active_role = $2, updated_at = $3 WHERE id = $1`,
		userID, role, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) ListActiveJobSeekerIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT u.id
		FROM users u
		JOIN role_grants g ON g.user_id = u.id
		WHERE u.is_active = true AND g.role = $1 AND g.is_approved = true`
	rows, err := r.db.Query(ctx, query, domain.RoleJobSeeker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userRepo) loadGrants(ctx context.Context, userID string) ([]domain.RoleGrant, error) {
	query := `SELECT id, user_id, role, is_approved, approved_at, approved_by, created_at
              FROM role_grants WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.RoleGrant
	for rows.Next() {
		var grant domain.RoleGrant
		if err := rows.Scan(&grant.ID, &grant.UserID, &grant.Role, &grant.IsApproved, &grant.ApprovedAt, &grant.ApprovedBy, &grant.CreatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}
