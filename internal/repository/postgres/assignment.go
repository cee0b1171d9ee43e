package postgres

import (
	"context"
	"errors"

	"asset-service/internal/domain/device"

	"github.com/jackc/pgx/v5"
)

type AssignmentRepository struct {
	db *DB
}

func NewAssignmentRepository(db *DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListViewsByEmployee returns the devices currently held by an employee.
// Only open assignments (no return date) count.
func (r *AssignmentRepository) ListViewsByEmployee(ctx context.Context, employeeID int) ([]*device.AssignmentView, error) {
	query := `
		SELECT de.id, d.id, d.name, d.is_enabled, d.additional_properties,
		       d.device_type_id, dt.name, de.issue_date, de.return_date
		FROM device_employees de
		INNER JOIN devices d ON d.id = de.device_id
		INNER JOIN device_types dt ON dt.id = d.device_type_id
		WHERE de.employee_id = $1 AND de.return_date IS NULL
		ORDER BY de.issue_date DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, errFailedListAssigned(err)
	}
	defer rows.Close()

	var views []*device.AssignmentView
	for rows.Next() {
		v := &device.AssignmentView{}
		if err := rows.Scan(
			&v.AssignmentID, &v.DeviceID, &v.Name, &v.IsEnabled, &v.AdditionalProperties,
			&v.DeviceTypeID, &v.DeviceTypeName, &v.IssueDate, &v.ReturnDate,
		); err != nil {
			return nil, errFailedScanAssignment(err)
		}
		views = append(views, v)
	}

	return views, rows.Err()
}

// IsActivelyAssigned reports whether the employee currently holds the device.
func (r *AssignmentRepository) IsActivelyAssigned(ctx context.Context, employeeID, deviceID int) (bool, error) {
	var assigned bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM device_employees
			WHERE employee_id = $1 AND device_id = $2 AND return_date IS NULL
		)
	`, employeeID, deviceID).Scan(&assigned)

	if err != nil {
		return false, errFailedCheckAssigned(err)
	}

	return assigned, nil
}

// HasAnyForDevice reports whether the device has any assignment records,
// open or closed.
func (r *AssignmentRepository) HasAnyForDevice(ctx context.Context, deviceID int) (bool, error) {
	var has bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM device_employees WHERE device_id = $1)`,
		deviceID,
	).Scan(&has)

	if err != nil {
		return false, errFailedCheckAssigned(err)
	}

	return has, nil
}

// CurrentHolder returns the employee holding the device right now, or nil
// when the device is unassigned.
func (r *AssignmentRepository) CurrentHolder(ctx context.Context, deviceID int) (*device.Holder, error) {
	query := `
		SELECT e.id, TRIM(CONCAT(p.first_name, ' ', p.last_name))
		FROM device_employees de
		INNER JOIN employees e ON e.id = de.employee_id
		INNER JOIN persons p ON p.id = e.person_id
		WHERE de.device_id = $1 AND de.return_date IS NULL
	`

	h := &device.Holder{}
	err := r.db.Pool.QueryRow(ctx, query, deviceID).Scan(&h.EmployeeID, &h.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errFailedGetHolder(err)
	}

	return h, nil
}
