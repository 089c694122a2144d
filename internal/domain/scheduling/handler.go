package scheduling

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/glowdesk/glowdesk/internal/platform/auth"
	"github.com/glowdesk/glowdesk/pkg/pagination"
	"github.com/glowdesk/glowdesk/pkg/timeutil"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Any authenticated staff member can read the book; writes are for
	// the front desk and up.
	book := auth.RequireRole(auth.RoleManager, auth.RoleReceptionist)

	appts := api.Group("/appointments")
	appts.POST("", h.Create, book)
	appts.GET("", h.List)
	appts.POST("/check-availability", h.CheckAvailability)
	appts.GET("/:id", h.Get)
	appts.PUT("/:id", h.Update, book)
	appts.POST("/:id/move", h.Move, book)
	appts.POST("/:id/cancel", h.Cancel, book)
	appts.POST("/:id/status", h.Transition, book)
	appts.POST("/:id/reopen", h.Reopen, book)
}

// conflictResponse is the 409 payload. The caller gets enough about each
// blocking appointment to render the collision on a calendar.
type conflictResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details struct {
		ConflictingAppointments []ConflictRef `json:"conflicting_appointments"`
	} `json:"details"`
}

func writeError(c echo.Context, err error) error {
	var ce *ConflictError
	if errors.As(err, &ce) {
		resp := conflictResponse{
			Code:    "APPOINTMENT_CONFLICT",
			Message: ce.Error(),
		}
		resp.Details.ConflictingAppointments = toConflictRefs(ce.Conflicting)
		return c.JSON(http.StatusConflict, resp)
	}
	if IsValidation(err) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func (h *Handler) Create(c echo.Context) error {
	var appt Appointment
	if err := c.Bind(&appt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := h.svc.Create(c.Request().Context(), &appt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}
	appt, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

// updateRequest distinguishes absent fields from explicit values so an
// update only touches what the body names. staff_id is raw JSON because
// an explicit null (unassign) and a missing key mean different things.
type updateRequest struct {
	ClientID    *uuid.UUID      `json:"client_id"`
	StaffID     json.RawMessage `json:"staff_id"`
	StartTime   *time.Time      `json:"start_time"`
	EndTime     *time.Time      `json:"end_time"`
	ServiceIDs  []uuid.UUID     `json:"service_ids"`
	Status      *string         `json:"status"`
	Notes       *string         `json:"notes"`
	TotalPrice  *float64        `json:"total_price"`
	DepositPaid *bool           `json:"deposit_paid"`
	IsRecurring *bool           `json:"is_recurring"`
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	patch := Patch{
		ClientID:    req.ClientID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ServiceIDs:  req.ServiceIDs,
		Status:      req.Status,
		Notes:       req.Notes,
		TotalPrice:  req.TotalPrice,
		DepositPaid: req.DepositPaid,
		IsRecurring: req.IsRecurring,
	}
	if len(req.StaffID) > 0 {
		patch.AssignStaff = true
		if string(req.StaffID) != "null" {
			var staffID uuid.UUID
			if err := json.Unmarshal(req.StaffID, &staffID); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid staff_id")
			}
			patch.StaffID = &staffID
		}
	}

	updated, err := h.svc.Update(c.Request().Context(), id, &patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

type moveRequest struct {
	StartTime time.Time  `json:"start_time"`
	StaffID   *uuid.UUID `json:"staff_id,omitempty"`
}

func (h *Handler) Move(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StartTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time is required")
	}
	appt, err := h.svc.Move(c.Request().Context(), id, req.StartTime, req.StaffID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}
	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	appt, err := h.svc.Cancel(c.Request().Context(), id, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Transition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	appt, err := h.svc.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) Reopen(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment ID")
	}
	appt, err := h.svc.Reopen(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

type availabilityRequest struct {
	StaffID   *uuid.UUID `json:"staff_id,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	ExcludeID *uuid.UUID `json:"exclude_id,omitempty"`
}

type availabilityResponse struct {
	Available bool          `json:"available"`
	Conflicts []ConflictRef `json:"conflicts"`
}

func (h *Handler) CheckAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time and end_time are required")
	}
	available, conflicts, err := h.svc.CheckAvailability(c.Request().Context(), req.StaffID, req.StartTime, req.EndTime, req.ExcludeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, availabilityResponse{Available: available, Conflicts: conflicts})
}

// parseDateParam accepts either a date-only value or a full timestamp.
func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func (h *Handler) List(c echo.Context) error {
	var filter SearchFilter

	if v := c.QueryParam("date"); v != "" {
		day, err := parseDateParam(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date")
		}
		start := timeutil.StartOfDay(day)
		end := start.AddDate(0, 0, 1)
		filter.StartDate = &start
		filter.EndDate = &end
	}
	if v := c.QueryParam("startDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid startDate")
		}
		filter.StartDate = &t
	}
	if v := c.QueryParam("endDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid endDate")
		}
		filter.EndDate = &t
	}
	if v := c.QueryParam("clientId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid clientId")
		}
		filter.ClientID = &id
	}
	if v := c.QueryParam("staffId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid staffId")
		}
		filter.StaffID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		if !validStatuses[v] {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		filter.Status = v
	}

	params := pagination.FromContext(c)
	items, total, err := h.svc.Search(c.Request().Context(), filter, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params))
}
