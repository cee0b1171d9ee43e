package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound aligned with global body limit.
)

// bindStrictJSON decodes the request body into out, rejecting unknown
// fields and trailing data. Mutating endpoints bind through this so a
// typo'd field fails loudly instead of being silently dropped.
func bindStrictJSON(c echo.Context, out any) error {
	contentType := strings.ToLower(c.Request().Header.Get(echo.HeaderContentType))
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	decoder := json.NewDecoder(io.LimitReader(c.Request().Body, maxStrictBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	// A second decode must hit EOF, otherwise the body carried more
	// than one JSON value.
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}
