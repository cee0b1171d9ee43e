package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ReferenceHandler struct {
	refs ReferenceStore
}

func NewReferenceHandler(refs ReferenceStore) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

type RoleResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PositionResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MinExpYears int    `json:"minExpYears"`
}

func (h *ReferenceHandler) ListRoles(c echo.Context) error {
	roles, err := h.refs.ListRoles(c.Request().Context())
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleResponse{ID: r.ID, Name: r.Name})
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) ListPositions(c echo.Context) error {
	positions, err := h.refs.ListPositions(c.Request().Context())
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	out := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, PositionResponse{ID: p.ID, Name: p.Name, MinExpYears: p.MinExpYears})
	}

	return c.JSON(http.StatusOK, out)
}
