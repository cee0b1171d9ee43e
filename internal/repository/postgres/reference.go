package postgres

import (
	"context"

	"asset-service/internal/domain/account"
	"asset-service/internal/domain/employee"
)

// ReferenceRepository serves the small lookup tables.
type ReferenceRepository struct {
	db *DB
}

func NewReferenceRepository(db *DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListRoles(ctx context.Context) ([]*account.Role, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM roles ORDER BY id`)
	if err != nil {
		return nil, errFailedListRoles(err)
	}
	defer rows.Close()

	var roles []*account.Role
	for rows.Next() {
		role := &account.Role{}
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, errFailedScanRole(err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *ReferenceRepository) ListPositions(ctx context.Context) ([]*employee.Position, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name, min_exp_years FROM positions ORDER BY id`)
	if err != nil {
		return nil, errFailedListPositions(err)
	}
	defer rows.Close()

	var positions []*employee.Position
	for rows.Next() {
		p := &employee.Position{}
		if err := rows.Scan(&p.ID, &p.Name, &p.MinExpYears); err != nil {
			return nil, errFailedScanPosition(err)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}
