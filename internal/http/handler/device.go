package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/internal/domain/device"

	"github.com/labstack/echo/v4"
)

type DeviceHandler struct {
	devices     DeviceStore
	assignments AssignmentStore
	auditLog    AuditLogger
}

func NewDeviceHandler(devices DeviceStore, assignments AssignmentStore, auditLog AuditLogger) *DeviceHandler {
	return &DeviceHandler{
		devices:     devices,
		assignments: assignments,
		auditLog:    auditLog,
	}
}

type CreateDeviceRequest struct {
	Name                 string          `json:"name"`
	DeviceTypeName       string          `json:"deviceTypeName"`
	IsEnabled            bool            `json:"isEnabled"`
	AdditionalProperties json.RawMessage `json:"additionalProperties,omitempty"`
}

type UpdateOwnDeviceRequest struct {
	Name                 *string         `json:"name,omitempty"`
	IsEnabled            *bool           `json:"isEnabled,omitempty"`
	DeviceTypeName       string          `json:"deviceTypeName"`
	AdditionalProperties json.RawMessage `json:"additionalProperties,omitempty"`
}

type HolderResponse struct {
	EmployeeID int    `json:"employeeId"`
	Name       string `json:"name"`
}

type DeviceResponse struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	DeviceTypeID         int             `json:"deviceTypeId"`
	DeviceTypeName       string          `json:"deviceTypeName"`
	IsEnabled            bool            `json:"isEnabled"`
	AdditionalProperties json.RawMessage `json:"additionalProperties,omitempty"`
	Holder               *HolderResponse `json:"holder,omitempty"`
}

type AssignedDeviceResponse struct {
	DeviceID             int             `json:"deviceId"`
	Name                 string          `json:"name"`
	DeviceTypeID         int             `json:"deviceTypeId"`
	DeviceTypeName       string          `json:"deviceTypeName"`
	IsEnabled            bool            `json:"isEnabled"`
	AdditionalProperties json.RawMessage `json:"additionalProperties,omitempty"`
	IssueDate            time.Time       `json:"issueDate"`
}

func toDeviceResponse(d *device.Device) DeviceResponse {
	return DeviceResponse{
		ID:                   d.ID,
		Name:                 d.Name,
		DeviceTypeID:         d.DeviceTypeID,
		DeviceTypeName:       d.DeviceTypeName,
		IsEnabled:            d.IsEnabled,
		AdditionalProperties: d.AdditionalProperties,
	}
}

func (h *DeviceHandler) List(c echo.Context) error {
	devices, err := h.devices.List(c.Request().Context())
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, toDeviceResponse(d))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *DeviceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	ctx := c.Request().Context()
	d, err := h.devices.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	resp := toDeviceResponse(d)

	holder, err := h.assignments.CurrentHolder(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}
	if holder != nil {
		resp.Holder = &HolderResponse{EmployeeID: holder.EmployeeID, Name: holder.Name}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *DeviceHandler) Create(c echo.Context) error {
	var req CreateDeviceRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()

	dt, err := h.devices.GetTypeByName(ctx, req.DeviceTypeName)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgDeviceTypeUnknown)
	}

	created, err := h.devices.Create(ctx, device.CreateDeviceInput{
		Name:                 req.Name,
		DeviceTypeID:         dt.ID,
		IsEnabled:            req.IsEnabled,
		AdditionalProperties: req.AdditionalProperties,
	})
	if err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeDevice, nil, audit.ActionCreate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeDevice, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, toDeviceResponse(created))
}

func (h *DeviceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req CreateDeviceRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()

	dt, err := h.devices.GetTypeByName(ctx, req.DeviceTypeName)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgDeviceTypeUnknown)
	}

	if err := h.devices.Update(ctx, id, device.UpdateDeviceInput{
		Name:                 req.Name,
		DeviceTypeID:         dt.ID,
		IsEnabled:            req.IsEnabled,
		AdditionalProperties: req.AdditionalProperties,
	}); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeDevice, &id, audit.ActionUpdate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeDevice, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	d, err := h.devices.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toDeviceResponse(d))
}

func (h *DeviceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	ctx := c.Request().Context()

	has, err := h.assignments.HasAnyForDevice(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}
	if has {
		return respondError(c, http.StatusConflict, msgDeviceHasHistory)
	}

	if err := h.devices.Delete(ctx, id); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeDevice, &id, audit.ActionDelete, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeDevice, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgDeviceDeleted)
}

// ListMine returns the devices currently assigned to the caller's employee.
func (h *DeviceHandler) ListMine(c echo.Context) error {
	principal, err := auth.GetPrincipal(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}
	if principal.EmployeeID == nil {
		return respondError(c, http.StatusForbidden, msgEmployeeNotLinked)
	}

	views, err := h.assignments.ListViewsByEmployee(c.Request().Context(), *principal.EmployeeID)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]AssignedDeviceResponse, 0, len(views))
	for _, v := range views {
		out = append(out, AssignedDeviceResponse{
			DeviceID:             v.DeviceID,
			Name:                 v.Name,
			DeviceTypeID:         v.DeviceTypeID,
			DeviceTypeName:       v.DeviceTypeName,
			IsEnabled:            v.IsEnabled,
			AdditionalProperties: v.AdditionalProperties,
			IssueDate:            v.IssueDate,
		})
	}

	return c.JSON(http.StatusOK, out)
}

// UpdateMine applies a partial update to a device the caller currently
// holds. Ownership is checked by the admission gate on the route.
func (h *DeviceHandler) UpdateMine(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateOwnDeviceRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()

	if err := h.devices.UpdatePartial(ctx, id, device.UpdateOwnDeviceInput{
		Name:                 req.Name,
		IsEnabled:            req.IsEnabled,
		AdditionalProperties: req.AdditionalProperties,
	}); err != nil {
		h.auditLog.LogError(c, audit.ResourceTypeDevice, &id, audit.ActionUpdate, err)
		return RespondWithMappedError(c, err)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeDevice, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	d, err := h.devices.GetByID(ctx, id)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	return c.JSON(http.StatusOK, toDeviceResponse(d))
}
