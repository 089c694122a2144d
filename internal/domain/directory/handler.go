package directory

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/glowdesk/glowdesk/internal/platform/auth"
	"github.com/glowdesk/glowdesk/pkg/pagination"
)

type Handler struct {
	svc *DirectoryService
}

func NewHandler(svc *DirectoryService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := api.Group("/staff")
	staff.GET("", h.ListStaff)
	staff.GET("/:id", h.GetStaff)
	staff.POST("", h.CreateStaff, auth.RequireRole(auth.RoleManager))
	staff.PUT("/:id", h.UpdateStaff, auth.RequireRole(auth.RoleManager))
	staff.POST("/:id/deactivate", h.DeactivateStaff, auth.RequireRole(auth.RoleManager))

	clients := api.Group("/clients")
	clients.GET("", h.ListClients)
	clients.GET("/:id", h.GetClient)
	clients.POST("", h.CreateClient)
	clients.PUT("/:id", h.UpdateClient)
	clients.DELETE("/:id", h.DeleteClient, auth.RequireRole(auth.RoleManager))

	services := api.Group("/services")
	services.GET("", h.ListServices)
	services.GET("/:id", h.GetService)
	services.POST("", h.CreateService, auth.RequireRole(auth.RoleManager))
	services.PUT("/:id", h.UpdateService, auth.RequireRole(auth.RoleManager))
	services.DELETE("/:id", h.DeleteService, auth.RequireRole(auth.RoleManager))
}

// --- Staff ---

func (h *Handler) CreateStaff(c echo.Context) error {
	var st Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateStaff(c.Request().Context(), &st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *Handler) GetStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid staff ID")
	}
	st, err := h.svc.GetStaff(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid staff ID")
	}
	var st Staff
	if err := c.Bind(&st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	st.ID = id
	if err := h.svc.UpdateStaff(c.Request().Context(), &st); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) DeactivateStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid staff ID")
	}
	if err := h.svc.DeactivateStaff(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListStaff(c echo.Context) error {
	if c.QueryParam("active") == "true" {
		items, err := h.svc.ListActiveStaff(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to list staff")
		}
		return c.JSON(http.StatusOK, items)
	}
	params := pagination.FromContext(c)
	items, total, err := h.svc.ListStaff(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list staff")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params))
}

// --- Clients ---

func (h *Handler) CreateClient(c echo.Context) error {
	var cl Client
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateClient(c.Request().Context(), &cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *Handler) GetClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client ID")
	}
	cl, err := h.svc.GetClient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "client not found")
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) UpdateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client ID")
	}
	var cl Client
	if err := c.Bind(&cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	cl.ID = id
	if err := h.svc.UpdateClient(c.Request().Context(), &cl); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) DeleteClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client ID")
	}
	if err := h.svc.DeleteClient(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "client not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListClients(c echo.Context) error {
	params := pagination.FromContext(c)
	items, total, err := h.svc.ListClients(c.Request().Context(), c.QueryParam("search"), params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list clients")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params))
}

// --- Services ---

func (h *Handler) CreateService(c echo.Context) error {
	var svc Service
	if err := c.Bind(&svc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.CreateService(c.Request().Context(), &svc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, svc)
}

func (h *Handler) GetService(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service ID")
	}
	svc, err := h.svc.GetService(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *Handler) UpdateService(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service ID")
	}
	var svc Service
	if err := c.Bind(&svc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	svc.ID = id
	if err := h.svc.UpdateService(c.Request().Context(), &svc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, svc)
}

func (h *Handler) DeleteService(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid service ID")
	}
	if err := h.svc.DeleteService(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "service not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListServices(c echo.Context) error {
	params := pagination.FromContext(c)
	items, total, err := h.svc.ListServices(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list services")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params))
}
