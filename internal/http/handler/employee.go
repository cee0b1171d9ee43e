package handler

import (
	"net/http"
	"time"

	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/internal/domain/employee"

	"github.com/labstack/echo/v4"
)

type EmployeeHandler struct {
	employees EmployeeStore
	auditLog  AuditLogger
}

func NewEmployeeHandler(employees EmployeeStore, auditLog AuditLogger) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		auditLog:  auditLog,
	}
}

type UpdateEmployeeRequest struct {
	FirstName      *string  `json:"firstName,omitempty"`
	MiddleName     *string  `json:"middleName,omitempty"`
	LastName       *string  `json:"lastName,omitempty"`
	Email          *string  `json:"email,omitempty"`
	PhoneNumber    *string  `json:"phoneNumber,omitempty"`
	PassportNumber *string  `json:"passportNumber,omitempty"`
	PositionID     *int     `json:"positionId,omitempty"`
	Salary         *float64 `json:"salary,omitempty"`
}

type EmployeeResponse struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	MiddleName   *string   `json:"middleName,omitempty"`
	LastName     string    `json:"lastName"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	PositionID   int       `json:"positionId"`
	PositionName string    `json:"positionName"`
	HireDate     time.Time `json:"hireDate"`
}

// EmployeeDetailResponse adds the fields only shown on the single-employee
// view: passport number and salary.
type EmployeeDetailResponse struct {
	EmployeeResponse
	PassportNumber string  `json:"passportNumber"`
	Salary         float64 `json:"salary"`
}

func toEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.Person.FirstName,
		MiddleName:   e.Person.MiddleName,
		LastName:     e.Person.LastName,
		FullName:     e.FullName(),
		Email:        e.Person.Email,
		PhoneNumber:  e.Person.PhoneNumber,
		PositionID:   e.PositionID,
		PositionName: e.PositionName,
		HireDate:     e.HireDate,
	}
}

func toEmployeeDetailResponse(e *employee.Employee) EmployeeDetailResponse {
	return EmployeeDetailResponse{
		EmployeeResponse: toEmployeeResponse(e),
		PassportNumber:   e.Person.PassportNumber,
		Salary:           e.Salary,
	}
}

func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.employees.List(c.Request().Context())
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	e, err := h.employees.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toEmployeeDetailResponse(e))
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateEmployeeRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Salary != nil {
		principal, perr := auth.GetPrincipal(c)
		if perr != nil || !principal.IsAdmin() {
			return respondError(c, http.StatusForbidden, msgSalaryForbidden)
		}
	}

	ctx := c.Request().Context()
	input := employee.UpdateEmployeeInput{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		PassportNumber: req.PassportNumber,
		PositionID:     req.PositionID,
		Salary:         req.Salary,
	}

	if err := h.employees.Update(ctx, id, input); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeEmployee, &id, audit.ActionUpdate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeEmployee, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	e, err := h.employees.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toEmployeeDetailResponse(e))
}
