// Package handler defines the HTTP handlers. Each handler bundles the
// repositories it needs; shared request-parsing helpers live here.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// getUserID extracts the authenticated user id stored in the context by
// the JWT middleware. JWT numeric claims decode as float64, so every
// plausible representation is accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parsePagination reads page/page_size query parameters. Page numbers
// start at 1; page_size defaults to 10 and is capped at 100. Malformed
// or out-of-range values fall back to the defaults rather than failing
// the request.
func parsePagination(c echo.Context) (page, pageSize, offset int) {
	page = 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v >= 1 {
		page = v
	}
	pageSize = defaultPageSize
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v >= 1 {
		pageSize = v
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset = (page - 1) * pageSize
	return page, pageSize, offset
}

// pagedResponse is the envelope for paginated listings.
type pagedResponse struct {
	Items    interface{} `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int         `json:"total"`
}

// fieldErrorJSON renders a validation failure as a per-field object.
func fieldErrorJSON(c echo.Context, fe model.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fe})
}
