package calendar

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	projector *Projector
}

func NewHandler(projector *Projector) *Handler {
	return &Handler{projector: projector}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/calendar", h.View)
}

// View dispatches on ?view=day|week|month (default day), anchored at
// ?date=YYYY-MM-DD (default today), narrowed by ?staffIds=a,b. The week
// view uses the first selected staff member, or the first active one.
func (h *Handler) View(c echo.Context) error {
	date := time.Now().UTC()
	if v := c.QueryParam("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	staffIDs, err := parseStaffIDs(c.QueryParam("staffIds"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid staffIds")
	}

	ctx := c.Request().Context()
	switch view := c.QueryParam("view"); view {
	case "", "day":
		day, err := h.projector.Day(ctx, date, staffIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to build day view")
		}
		return c.JSON(http.StatusOK, day)

	case "week":
		var staffID *uuid.UUID
		if len(staffIDs) > 0 {
			staffID = &staffIDs[0]
		}
		week, err := h.projector.Week(ctx, date, staffID)
		if err != nil {
			if errors.Is(err, ErrNoStaff) {
				return echo.NewHTTPError(http.StatusNotFound, "no active staff")
			}
			if staffID != nil {
				return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to build week view")
		}
		return c.JSON(http.StatusOK, week)

	case "month":
		month, err := h.projector.Month(ctx, date.Year(), date.Month(), staffIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to build month view")
		}
		return c.JSON(http.StatusOK, month)

	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid view, expected day, week or month")
	}
}

func parseStaffIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
