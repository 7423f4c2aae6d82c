package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruitment-platform/internal/domain"
)

type roleGrantRepo struct {
	db *pgxpool.Pool
}

func NewRoleGrantRepository(db *pgxpool.Pool) domain.RoleGrantRepository {
	return &roleGrantRepo{db: db}
}

func (r *roleGrantRepo) Create(ctx context.Context, grant *domain.RoleGrant) error {
	query := `INSERT INTO role_grants (id, user_id, role, is_approved, approved_at, approved_by, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		grant.ID, grant.UserID, grant.Role, grant.IsApproved, grant.ApprovedAt, grant.ApprovedBy, grant.CreatedAt,
	)
	return err
}

func (r *roleGrantRepo) GetByUserAndRole(ctx context.Context, userID string, role domain.RoleName) (*domain.RoleGrant, error) {
	query := `SELECT id, user_id, role, is_approved, approved_at, approved_by, created_at
              FROM role_grants WHERE user_id = $1 AND role = $2`
	var grant domain.RoleGrant
	err := r.db.QueryRow(ctx, query, userID, role).Scan(
		&grant.ID, &grant.UserID, &grant.Role, &grant.IsApproved, &grant.ApprovedAt, &grant.ApprovedBy, &grant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &grant, nil
}

func (r *roleGrantRepo) ListByUser(ctx context.Context, userID string) ([]domain.RoleGrant, error) {
	query := `SELECT id, user_id, role, is_approved, approved_at, approved_by, created_at
              FROM role_grants WHERE user_id = $1 ORDER BY created_at`
	return r.list(ctx, query, userID)
}

func (r *roleGrantRepo) ListPending(ctx context.Context) ([]domain.RoleGrant, error) {
	query := `
		SELECT g.id, g.user_id, g.role, g.is_approved, g.approved_at, g.approved_by, g.created_at, u.username
		FROM role_grants g
		JOIN users u ON u.id = g.user_id
		WHERE g.is_approved = false
		ORDER BY g.created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []domain.RoleGrant
	for rows.Next() {
		var grant domain.RoleGrant
		if err := rows.Scan(&grant.ID, &grant.UserID, &grant.Role, &grant.IsApproved, &grant.ApprovedAt, &grant.ApprovedBy, &grant.CreatedAt, &grant.Username); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

// Approve only touches unapproved rows, so repeating the call with the same
// ids is a no-op.
func (r *roleGrantRepo) Approve(ctx context.Context, grantIDs []string, approvedBy string, approvedAt time.Time) (int64, []domain.RoleGrant, error) {
	query := `
		UPDATE role_grants
		SET is_approved = true, approved_at = $2, approved_by = $3
		WHERE id = ANY($1) AND is_approved = false
		RETURNING id, user_id, role, is_approved, approved_at, approved_by, created_at`
	rows, err := r.db.Query(ctx, query, grantIDs, approvedAt, approvedBy)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var approved []domain.RoleGrant
	for rows.Next() {
		var grant domain.RoleGrant
		if err := rows.Scan(&grant.ID, &grant.UserID, &grant.Role, &grant.IsApproved, &grant.ApprovedAt, &grant.ApprovedBy, &grant.CreatedAt); err != nil {
			return 0, nil, err
		}
		approved = append(approved, grant)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return int64(len(approved)), approved, nil
}

func (r *roleGrantRepo) EnsureApproved(ctx context.Context, userID string, role domain.RoleName, approvedBy string, approvedAt time.Time) error {
	query := `
		INSERT INTO role_grants (id, user_id, role, is_approved, approved_at, approved_by, created_at)
		VALUES (gen_random_uuid(), $1, $2, true, $3, $4, $3)
		ON CONFLICT (user_id, role)
		DO UPDATE SET is_approved = true, approved_at = $3, approved_by = $4`
	_, err := r.db.Exec(ctx, query, userID, role, approvedAt, approvedBy)
	return err
}

func (r *roleGrantRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.RoleGrant, error) {
	rows, err := r.db.Query(ctx, query, args...)
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
