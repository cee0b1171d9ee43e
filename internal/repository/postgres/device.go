package postgres

import (
	"context"
	"errors"

	"asset-service/internal/domain/device"
	apperrors "asset-service/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type DeviceRepository struct {
	db *DB
}

func NewDeviceRepository(db *DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) List(ctx context.Context) ([]*device.Device, error) {
	query := `
		SELECT d.id, d.name, d.device_type_id, dt.name, d.is_enabled, d.additional_properties
		FROM devices d
		INNER JOIN device_types dt ON dt.id = d.device_type_id
		ORDER BY d.id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, errFailedListDevices(err)
	}
	defer rows.Close()

	var devices []*device.Device
	for rows.Next() {
		d := &device.Device{}
		if err := rows.Scan(&d.ID, &d.Name, &d.DeviceTypeID, &d.DeviceTypeName, &d.IsEnabled, &d.AdditionalProperties); err != nil {
			return nil, errFailedScanDevice(err)
		}
		devices = append(devices, d)
	}

	return devices, rows.Err()
}

func (r *DeviceRepository) GetByID(ctx context.Context, id int) (*device.Device, error) {
	query := `
		SELECT d.id, d.name, d.device_type_id, dt.name, d.is_enabled, d.additional_properties
		FROM devices d
		INNER JOIN device_types dt ON dt.id = d.device_type_id
		WHERE d.id = $1
	`

	d := &device.Device{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.DeviceTypeID, &d.DeviceTypeName, &d.IsEnabled, &d.AdditionalProperties,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errDeviceNotFound)
		}
		return nil, errFailedGetDevice(err)
	}

	return d, nil
}

func (r *DeviceRepository) Create(ctx context.Context, input device.CreateDeviceInput) (*device.Device, error) {
	query := `
		INSERT INTO devices (name, device_type_id, is_enabled, additional_properties)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.db.Pool.QueryRow(ctx, query,
		input.Name, input.DeviceTypeID, input.IsEnabled, input.AdditionalProperties,
	).Scan(&id)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.BadRequest(errDeviceTypeNotFound)
		}
		return nil, errFailedCreateDevice(err)
	}

	return r.GetByID(ctx, id)
}

func (r *DeviceRepository) Update(ctx context.Context, id int, input device.UpdateDeviceInput) error {
	query := `
		UPDATE devices
		SET name = $2,
		    device_type_id = $3,
		    is_enabled = $4,
		    additional_properties = $5
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		id, input.Name, input.DeviceTypeID, input.IsEnabled, input.AdditionalProperties,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.BadRequest(errDeviceTypeNotFound)
		}
		return errFailedUpdateDevice(err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errDeviceNotFound)
	}

	return nil
}

// UpdatePartial applies only the fields present in the input, leaving the
// rest of the row untouched.
func (r *DeviceRepository) UpdatePartial(ctx context.Context, id int, input device.UpdateOwnDeviceInput) error {
	query := `
		UPDATE devices
		SET name = COALESCE($2, name),
		    is_enabled = COALESCE($3, is_enabled),
		    additional_properties = COALESCE($4, additional_properties)
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, input.Name, input.IsEnabled, input.AdditionalProperties)
	if err != nil {
		return errFailedUpdateDevice(err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errDeviceNotFound)
	}

	return nil
}

func (r *DeviceRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Conflict(errDeviceHasAssignments)
		}
		return errFailedDeleteDevice(err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errDeviceNotFound)
	}

	return nil
}

// GetTypeByName resolves a device type by its name, case-insensitively.
func (r *DeviceRepository) GetTypeByName(ctx context.Context, name string) (*device.DeviceType, error) {
	query := `SELECT id, name FROM device_types WHERE LOWER(name) = LOWER($1)`

	dt := &device.DeviceType{}
	err := r.db.Pool.QueryRow(ctx, query, name).Scan(&dt.ID, &dt.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errDeviceTypeNotFound)
		}
		return nil, errFailedGetDeviceType(err)
	}

	return dt, nil
}
