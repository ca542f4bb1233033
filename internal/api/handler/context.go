package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/churchhub/chms-api/internal/api/middleware"
	"github.com/churchhub/chms-api/internal/core/domain"
)

// ctxCaller extracts the caller injected by the Auth middleware and performs a
// fast-fail check before any service call: a present, non-empty id proves the
// middleware ran.
func ctxCaller(c echo.Context) (domain.Caller, error) {
	caller, ok := c.Get(middleware.CallerKey).(domain.Caller)
	if !ok || caller.ID == "" {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}

// ctxPage parses the page/limit query parameters. Absent parameters take the
// defaults; present but non-positive or non-numeric values are a 400.
func ctxPage(c echo.Context) (domain.PageRequest, error) {
	page := domain.PageRequest{Page: domain.DefaultPage, Limit: domain.DefaultLimit}

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domain.PageRequest{}, echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
		page.Page = n
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domain.PageRequest{}, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		page.Limit = n
	}
	return page.Normalize(), nil
}
