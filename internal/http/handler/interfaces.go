package handler

import (
	"context"

	"asset-service/internal/audit"
	"asset-service/internal/domain/account"
	"asset-service/internal/domain/device"
	"asset-service/internal/domain/employee"

	"github.com/labstack/echo/v4"
)

// Consumer-side interfaces: handlers declare exactly the repository surface
// they use, satisfied by the postgres implementations.

type AccountStore interface {
	Create(ctx context.Context, input account.CreateAccountInput) (*account.Account, error)
	GetByID(ctx context.Context, id int) (*account.Account, error)
	GetByUsername(ctx context.Context, username string) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
	Update(ctx context.Context, id int, input account.UpdateAccountInput) error
	Delete(ctx context.Context, id int) error
	UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)
	RoleExists(ctx context.Context, roleID int) (bool, error)
}

type EmployeeStore interface {
	List(ctx context.Context) ([]*employee.Employee, error)
	GetByID(ctx context.Context, id int) (*employee.Employee, error)
	Update(ctx context.Context, id int, input employee.UpdateEmployeeInput) error
	Exists(ctx context.Context, id int) (bool, error)
}

type DeviceStore interface {
	List(ctx context.Context) ([]*device.Device, error)
	GetByID(ctx context.Context, id int) (*device.Device, error)
	Create(ctx context.Context, input device.CreateDeviceInput) (*device.Device, error)
	Update(ctx context.Context, id int, input device.UpdateDeviceInput) error
	UpdatePartial(ctx context.Context, id int, input device.UpdateOwnDeviceInput) error
	Delete(ctx context.Context, id int) error
	GetTypeByName(ctx context.Context, name string) (*device.DeviceType, error)
}

type AssignmentStore interface {
	ListViewsByEmployee(ctx context.Context, employeeID int) ([]*device.AssignmentView, error)
	HasAnyForDevice(ctx context.Context, deviceID int) (bool, error)
	CurrentHolder(ctx context.Context, deviceID int) (*device.Holder, error)
}

type ReferenceStore interface {
	ListRoles(ctx context.Context) ([]*account.Role, error)
	ListPositions(ctx context.Context) ([]*employee.Position, error)
}

// AuditLogger records login attempts and mutations. Satisfied by the audit
// package's Logger; recording is fire-and-forget from the handler's view.
type AuditLogger interface {
	LogFromContext(c echo.Context, resourceType audit.ResourceType, resourceID *int, action audit.Action, status audit.Status, metadata map[string]any) error
	LogError(c echo.Context, resourceType audit.ResourceType, resourceID *int, action audit.Action, err error) error
}
