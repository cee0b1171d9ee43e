package postgres

import (
	"context"
	"errors"

	"asset-service/internal/domain/employee"
	apperrors "asset-service/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type EmployeeRepository struct {
	db *DB
}

func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	query := `
		SELECT e.id, p.first_name, p.middle_name, p.last_name, p.email, p.phone_number, p.passport_number,
		       e.salary, e.position_id, pos.name, e.hire_date
		FROM employees e
		INNER JOIN persons p ON p.id = e.person_id
		INNER JOIN positions pos ON pos.id = e.position_id
		ORDER BY e.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListEmployees(err)
	}
	defer rows.Close()

	var employees []*employee.Employee
	for rows.Next() {
		e := &employee.Employee{}
		if err := rows.Scan(
			&e.ID, &e.Person.FirstName, &e.Person.MiddleName, &e.Person.LastName,
			&e.Person.Email, &e.Person.PhoneNumber, &e.Person.PassportNumber,
			&e.Salary, &e.PositionID, &e.PositionName, &e.HireDate,
		); err != nil {
			return nil, errFailedScanEmployee(err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int) (*employee.Employee, error) {
	query := `
		SELECT e.id, p.first_name, p.middle_name, p.last_name, p.email, p.phone_number, p.passport_number,
		       e.salary, e.position_id, pos.name, e.hire_date
		FROM employees e
		INNER JOIN persons p ON p.id = e.person_id
		INNER JOIN positions pos ON pos.id = e.position_id
		WHERE e.id = $1
	`

	e := &employee.Employee{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Person.FirstName, &e.Person.MiddleName, &e.Person.LastName,
		&e.Person.Email, &e.Person.PhoneNumber, &e.Person.PassportNumber,
		&e.Salary, &e.PositionID, &e.PositionName, &e.HireDate,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errEmployeeNotFound)
		}
		return nil, errFailedGetEmployee(err)
	}

	return e, nil
}

// Update applies a partial update across the employee row and its person
// row inside one transaction.
func (r *EmployeeRepository) Update(ctx context.Context, id int, input employee.UpdateEmployeeInput) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return errFailedBeginTx(err)
	}
	defer tx.Rollback(ctx)

	personQuery := `
		UPDATE persons p
		SET first_name = COALESCE($2, p.first_name),
		    middle_name = COALESCE($3, p.middle_name),
		    last_name = COALESCE($4, p.last_name),
		    email = COALESCE($5, p.email),
		    phone_number = COALESCE($6, p.phone_number),
		    passport_number = COALESCE($7, p.passport_number)
		FROM employees e
		WHERE e.person_id = p.id AND e.id = $1
	`

	tag, err := tx.Exec(ctx, personQuery, id,
		input.FirstName, input.MiddleName, input.LastName,
		input.Email, input.PhoneNumber, input.PassportNumber,
	)
	if err != nil {
		return errFailedUpdateEmployee(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errEmployeeNotFound)
	}

	employeeQuery := `
		UPDATE employees
		SET position_id = COALESCE($2, position_id),
		    salary = COALESCE($3, salary)
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, employeeQuery, id, input.PositionID, input.Salary); err != nil {
		return errFailedUpdateEmployee(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return errFailedCommitTx(err)
	}

	return nil
}

func (r *EmployeeRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, errFailedCheckEmployee(err)
	}

	return exists, nil
}
