package device

import (
	"encoding/json"
	"time"
)

type Device struct {
	ID                   int
	Name                 string
	DeviceTypeID         int
	DeviceTypeName       string
	IsEnabled            bool
	AdditionalProperties json.RawMessage
}

type DeviceType struct {
	ID   int
	Name string
}

// Assignment links a device to an employee. An assignment with no return
// date is active: the employee currently holds the device.
type Assignment struct {
	ID         int
	DeviceID   int
	EmployeeID int
	IssueDate  time.Time
	ReturnDate *time.Time
}

func (a *Assignment) IsActive() bool {
	return a.ReturnDate == nil
}

// AssignmentView is the employee-facing projection of an assignment joined
// with its device.
type AssignmentView struct {
	AssignmentID         int
	DeviceID             int
	Name                 string
	IsEnabled            bool
	AdditionalProperties json.RawMessage
	DeviceTypeID         int
	DeviceTypeName       string
	IssueDate            time.Time
	ReturnDate           *time.Time
}

// Holder identifies the employee currently assigned to a device.
type Holder struct {
	EmployeeID int
	Name       string
}

type CreateDeviceInput struct {
	Name                 string
	DeviceTypeID         int
	IsEnabled            bool
	AdditionalProperties json.RawMessage
}

type UpdateDeviceInput struct {
	Name                 string
	DeviceTypeID         int
	IsEnabled            bool
	AdditionalProperties json.RawMessage
}

// UpdateOwnDeviceInput is the partial update an employee may apply to a
// device currently assigned to them.
type UpdateOwnDeviceInput struct {
	Name                 *string
	IsEnabled            *bool
	AdditionalProperties json.RawMessage
}
