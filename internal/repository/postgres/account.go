package postgres

import (
	"context"
	"errors"

	"asset-service/internal/domain/account"
	apperrors "asset-service/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, input account.CreateAccountInput) (*account.Account, error) {
	query := `
		INSERT INTO accounts (username, password_hash, employee_id, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, employee_id, role_id, created_at, updated_at
	`

	a := &account.Account{}
	err := r.db.Pool.QueryRow(ctx, query, input.Username, input.PasswordHash, input.EmployeeID, input.RoleID).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.EmployeeID, &a.RoleID, &a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict(errUsernameExists)
		}
		return nil, errFailedCreateAccount(err)
	}

	return a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int) (*account.Account, error) {
	query := `
		SELECT a.id, a.username, a.password_hash, a.employee_id, a.role_id, r.name, a.created_at, a.updated_at
		FROM accounts a
		INNER JOIN roles r ON r.id = a.role_id
		WHERE a.id = $1
	`

	a := &account.Account{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.EmployeeID, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errAccountNotFound)
		}
		return nil, errFailedGetAccount(err)
	}

	return a, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `
		SELECT a.id, a.username, a.password_hash, a.employee_id, a.role_id, r.name, a.created_at, a.updated_at
		FROM accounts a
		INNER JOIN roles r ON r.id = a.role_id
		WHERE a.username = $1
	`

	a := &account.Account{}
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.EmployeeID, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errAccountNotFound)
		}
		return nil, errFailedGetAccount(err)
	}

	return a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `
		SELECT a.id, a.username, a.password_hash, a.employee_id, a.role_id, r.name, a.created_at, a.updated_at
		FROM accounts a
		INNER JOIN roles r ON r.id = a.role_id
		ORDER BY a.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListAccounts(err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a := &account.Account{}
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.EmployeeID, &a.RoleID, &a.RoleName, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, errFailedScanAccount(err)
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, id int, input account.UpdateAccountInput) error {
	query := `
		UPDATE accounts
		SET username = $2,
		    password_hash = COALESCE($3, password_hash),
		    role_id = COALESCE($4, role_id),
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, input.Username, input.PasswordHash, input.RoleID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(errUsernameExists)
		}
		return errFailedUpdateAccount(err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errAccountNotFound)
	}

	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return errFailedDeleteAccount(err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errAccountNotFound)
	}

	return nil
}

// UsernameTaken reports whether another account already uses the username.
func (r *AccountRepository) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	var taken bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1 AND id <> $2)`,
		username, excludeID,
	).Scan(&taken)

	if err != nil {
		return false, errFailedCheckUsername(err)
	}

	return taken, nil
}

// RoleExists reports whether a role id is defined.
func (r *AccountRepository) RoleExists(ctx context.Context, roleID int) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`, roleID).Scan(&exists)
	if err != nil {
		return false, errFailedGetRole(err)
	}

	return exists, nil
}
