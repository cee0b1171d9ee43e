package employee

import "time"

type Position struct {
	ID          int
	Name        string
	MinExpYears int
}

type Person struct {
	FirstName      string
	MiddleName     *string
	LastName       string
	Email          string
	PhoneNumber    string
	PassportNumber string
}

type Employee struct {
	ID           int
	Person       Person
	Salary       float64
	PositionID   int
	PositionName string
	HireDate     time.Time
}

// FullName joins first, optional middle and last name with single spaces.
func (e *Employee) FullName() string {
	if e.Person.MiddleName != nil && *e.Person.MiddleName != "" {
		return e.Person.FirstName + " " + *e.Person.MiddleName + " " + e.Person.LastName
	}
	return e.Person.FirstName + " " + e.Person.LastName
}

// UpdateEmployeeInput carries only the fields the caller wants to change.
// Salary updates are restricted to admins by the handler.
type UpdateEmployeeInput struct {
	FirstName      *string
	MiddleName     *string
	LastName       *string
	Email          *string
	PhoneNumber    *string
	PassportNumber *string
	PositionID     *int
	Salary         *float64
}
