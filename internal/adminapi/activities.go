package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uzretail/storebot/internal/activity"
)

// listActivities returns check-in/check-out records, optionally
// filtered by user and start date. The since parameter accepts any
// common date format.
func (s *Server) listActivities(c echo.Context) error {
	f := activity.Filter{Limit: 200}

	if raw := strings.TrimSpace(c.QueryParam("user_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid user_id", nil)
		}
		f.UserID = id
	}
	if raw := strings.TrimSpace(c.QueryParam("since")); raw != "" {
		since, err := activity.ParseSince(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unparseable since date", err.Error())
		}
		f.From = since
	}
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			f.Limit = n
		}
	}

	acts, err := s.people.Activities(c.Request().Context(), f)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query activities", err.Error())
	}
	return ok(c, acts)
}

func (s *Server) stats(c echo.Context) error {
	ctx := c.Request().Context()
	st, err := s.inventory.Stats(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query inventory stats", err.Error())
	}
	users, err := s.people.CountUsers(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count users", err.Error())
	}
	activities, err := s.people.CountActivities(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count activities", err.Error())
	}
	today, err := s.people.DayStats(ctx, time.Now())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query day stats", err.Error())
	}
	return ok(c, map[string]interface{}{
		"inventory":  st,
		"users":      users,
		"activities": activities,
		"today":      today,
	})
}
