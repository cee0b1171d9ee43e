package handler

import (
	"net/http"
	"strings"
	"time"

	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/internal/domain/account"
	"asset-service/pkg/password"
	"asset-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	accounts  AccountStore
	employees EmployeeStore
	auditLog  AuditLogger
}

func NewAccountHandler(accounts AccountStore, employees EmployeeStore, auditLog AuditLogger) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		employees: employees,
		auditLog:  auditLog,
	}
}

type CreateAccountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	EmployeeID int    `json:"employeeId"`
	RoleID     *int   `json:"roleId,omitempty"`
}

type UpdateAccountRequest struct {
	Username string  `json:"username"`
	Password *string `json:"password,omitempty"`
	RoleID   *int    `json:"roleId,omitempty"`
}

// AccountResponse never carries the password hash.
type AccountResponse struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	EmployeeID *int      `json:"employeeId,omitempty"`
	RoleID     int       `json:"roleId"`
	RoleName   string    `json:"roleName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:         a.ID,
		Username:   a.Username,
		EmployeeID: a.EmployeeID,
		RoleID:     a.RoleID,
		RoleName:   a.RoleName,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (h *AccountHandler) Create(c echo.Context) error {
	var req CreateAccountRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validator.Username(req.Username); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	exists, err := h.employees.Exists(ctx, req.EmployeeID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}
	if !exists {
		return respondError(c, http.StatusBadRequest, msgEmployeeMissing)
	}

	roleID := account.RoleIDUser
	if req.RoleID != nil {
		ok, err := h.accounts.RoleExists(ctx, *req.RoleID)
		if err != nil {
			return RespondWithMappedError(c, err)
		}
		if !ok {
			return respondError(c, http.StatusBadRequest, msgRoleMissing)
		}
		roleID = *req.RoleID
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	created, err := h.accounts.Create(ctx, account.CreateAccountInput{
		Username:     req.Username,
		PasswordHash: passwordHash,
		EmployeeID:   req.EmployeeID,
		RoleID:       roleID,
	})
	if err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeAccount, nil, audit.ActionCreate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, toAccountResponse(created))
}

func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	a, err := h.accounts.GetByID(c.Request().Context(), id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateAccountRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validator.Username(req.Username); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	taken, err := h.accounts.UsernameTaken(ctx, req.Username, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}
	if taken {
		return respondError(c, http.StatusConflict, msgUsernameTaken)
	}

	input := account.UpdateAccountInput{Username: req.Username}

	if req.Password != nil {
		if err := validator.Password(*req.Password); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
		}
		input.PasswordHash = &hash
	}

	if req.RoleID != nil {
		// Non-admins may update their own account but never its role.
		principal, perr := auth.GetPrincipal(c)
		if perr != nil || !principal.IsAdmin() {
			return respondError(c, http.StatusForbidden, msgRoleChangeForbidden)
		}
		ok, err := h.accounts.RoleExists(ctx, *req.RoleID)
		if err != nil {
			return RespondWithMappedError(c, err)
		}
		if !ok {
			return respondError(c, http.StatusBadRequest, msgRoleMissing)
		}
		input.RoleID = req.RoleID
	}

	if err := h.accounts.Update(ctx, id, input); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeAccount, &id, audit.ActionUpdate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	a, err := h.accounts.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toAccountResponse(a))
}

func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.accounts.Delete(c.Request().Context(), id); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeAccount, &id, audit.ActionDelete, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgAccountDeleted)
}
