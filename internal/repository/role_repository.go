package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/member-directory/internal/domain"
)

// RoleRepository manages the user_roles table, one role row per account.
type RoleRepository interface {
	Get(ctx context.Context, userID string) (domain.Role, error)
	GetMany(ctx context.Context, userIDs []string) (map[string]domain.Role, error)
	Set(ctx context.Context, userID string, role domain.Role) error
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Get(ctx context.Context, userID string) (domain.Role, error) {
	const query = `SELECT role FROM user_roles WHERE user_id=$1`

	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&role); err != nil {
		return "", err
	}
	return role, nil
}

func (r *roleRepository) GetMany(ctx context.Context, userIDs []string) (map[string]domain.Role, error) {
	roles := make(map[string]domain.Role, len(userIDs))
	if len(userIDs) == 0 {
		return roles, nil
	}

	const query = `SELECT user_id, role FROM user_roles WHERE user_id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var role domain.Role
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, err
		}
		roles[userID] = role
	}
	return roles, rows.Err()
}

func (r *roleRepository) Set(ctx context.Context, userID string, role domain.Role) error {
	const query = `
        INSERT INTO user_roles (user_id, role)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`

	cmd, err := r.pool.Exec(ctx, query, userID, role)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
