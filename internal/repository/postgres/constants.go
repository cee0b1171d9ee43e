package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errAccountNotFound    = "account not found"
	errEmployeeNotFound   = "employee not found"
	errDeviceNotFound     = "device not found"
	errDeviceTypeNotFound = "device type not found"
	errRoleNotFound       = "role not found"

	errUsernameExists       = "username already exists"
	errDeviceHasAssignments = "device has assignment history"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateAccountFmt  = "failed to create account: %w"
	errFailedGetAccountFmt     = "failed to get account: %w"
	errFailedListAccountsFmt   = "failed to list accounts: %w"
	errFailedScanAccountFmt    = "failed to scan account: %w"
	errFailedUpdateAccountFmt  = "failed to update account: %w"
	errFailedDeleteAccountFmt  = "failed to delete account: %w"
	errFailedCheckUsernameFmt  = "failed to check username: %w"
	errFailedGetRoleFmt        = "failed to get role: %w"
	errFailedListRolesFmt      = "failed to list roles: %w"
	errFailedScanRoleFmt       = "failed to scan role: %w"
	errFailedListPositionsFmt  = "failed to list positions: %w"
	errFailedScanPositionFmt   = "failed to scan position: %w"
	errFailedGetEmployeeFmt    = "failed to get employee: %w"
	errFailedListEmployeesFmt  = "failed to list employees: %w"
	errFailedScanEmployeeFmt   = "failed to scan employee: %w"
	errFailedUpdateEmployeeFmt = "failed to update employee: %w"
	errFailedCheckEmployeeFmt  = "failed to check employee: %w"
	errFailedBeginTxFmt        = "failed to start transaction: %w"
	errFailedCommitTxFmt       = "failed to commit transaction: %w"
	errFailedCreateDeviceFmt   = "failed to create device: %w"
	errFailedGetDeviceFmt      = "failed to get device: %w"
	errFailedListDevicesFmt    = "failed to list devices: %w"
	errFailedScanDeviceFmt     = "failed to scan device: %w"
	errFailedUpdateDeviceFmt   = "failed to update device: %w"
	errFailedDeleteDeviceFmt   = "failed to delete device: %w"
	errFailedGetDeviceTypeFmt  = "failed to get device type: %w"
	errFailedListAssignedFmt   = "failed to list assignments: %w"
	errFailedScanAssignmentFmt = "failed to scan assignment: %w"
	errFailedCheckAssignedFmt  = "failed to check assignment: %w"
	errFailedGetHolderFmt      = "failed to get current holder: %w"
)

var (
	errFailedParseDatabaseConfig = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error {
		return fmt.Errorf(errFailedCreateConnectionPoolFmt, err)
	}
	errFailedPingDatabase   = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedCreateAccount  = func(err error) error { return fmt.Errorf(errFailedCreateAccountFmt, err) }
	errFailedGetAccount     = func(err error) error { return fmt.Errorf(errFailedGetAccountFmt, err) }
	errFailedListAccounts   = func(err error) error { return fmt.Errorf(errFailedListAccountsFmt, err) }
	errFailedScanAccount    = func(err error) error { return fmt.Errorf(errFailedScanAccountFmt, err) }
	errFailedUpdateAccount  = func(err error) error { return fmt.Errorf(errFailedUpdateAccountFmt, err) }
	errFailedDeleteAccount  = func(err error) error { return fmt.Errorf(errFailedDeleteAccountFmt, err) }
	errFailedCheckUsername  = func(err error) error { return fmt.Errorf(errFailedCheckUsernameFmt, err) }
	errFailedGetRole        = func(err error) error { return fmt.Errorf(errFailedGetRoleFmt, err) }
	errFailedListRoles      = func(err error) error { return fmt.Errorf(errFailedListRolesFmt, err) }
	errFailedScanRole       = func(err error) error { return fmt.Errorf(errFailedScanRoleFmt, err) }
	errFailedListPositions  = func(err error) error { return fmt.Errorf(errFailedListPositionsFmt, err) }
	errFailedScanPosition   = func(err error) error { return fmt.Errorf(errFailedScanPositionFmt, err) }
	errFailedGetEmployee    = func(err error) error { return fmt.Errorf(errFailedGetEmployeeFmt, err) }
	errFailedListEmployees  = func(err error) error { return fmt.Errorf(errFailedListEmployeesFmt, err) }
	errFailedScanEmployee   = func(err error) error { return fmt.Errorf(errFailedScanEmployeeFmt, err) }
	errFailedUpdateEmployee = func(err error) error { return fmt.Errorf(errFailedUpdateEmployeeFmt, err) }
	errFailedCheckEmployee  = func(err error) error { return fmt.Errorf(errFailedCheckEmployeeFmt, err) }
	errFailedBeginTx        = func(err error) error { return fmt.Errorf(errFailedBeginTxFmt, err) }
	errFailedCommitTx       = func(err error) error { return fmt.Errorf(errFailedCommitTxFmt, err) }
	errFailedCreateDevice   = func(err error) error { return fmt.Errorf(errFailedCreateDeviceFmt, err) }
	errFailedGetDevice      = func(err error) error { return fmt.Errorf(errFailedGetDeviceFmt, err) }
	errFailedListDevices    = func(err error) error { return fmt.Errorf(errFailedListDevicesFmt, err) }
	errFailedScanDevice     = func(err error) error { return fmt.Errorf(errFailedScanDeviceFmt, err) }
	errFailedUpdateDevice   = func(err error) error { return fmt.Errorf(errFailedUpdateDeviceFmt, err) }
	errFailedDeleteDevice   = func(err error) error { return fmt.Errorf(errFailedDeleteDeviceFmt, err) }
	errFailedGetDeviceType  = func(err error) error { return fmt.Errorf(errFailedGetDeviceTypeFmt, err) }
	errFailedListAssigned   = func(err error) error { return fmt.Errorf(errFailedListAssignedFmt, err) }
	errFailedScanAssignment = func(err error) error { return fmt.Errorf(errFailedScanAssignmentFmt, err) }
	errFailedCheckAssigned  = func(err error) error { return fmt.Errorf(errFailedCheckAssignedFmt, err) }
	errFailedGetHolder      = func(err error) error { return fmt.Errorf(errFailedGetHolderFmt, err) }
)
