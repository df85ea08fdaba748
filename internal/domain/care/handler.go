package care

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pwh/registry/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/treatments", h.ListTreatments)
	api.POST("/treatments", h.RecordTreatment)
	api.PUT("/treatments/:id", h.UpdateTreatment)

	api.GET("/deaths", h.ListDeaths)
	api.POST("/deaths", h.RecordDeath)
	api.PUT("/deaths/:id", h.UpdateDeath)

	api.GET("/contacts", h.ListContacts)
	api.POST("/contacts", h.RecordContact)
	api.PUT("/contacts/:id", h.UpdateContact)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) RecordTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if err := h.svc.UpdateTreatment(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTreatments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListTreatments(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RecordDeath(c echo.Context) error {
	var d DeathRecord
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordDeath(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDeath(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var d DeathRecord
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.UpdateDeath(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDeaths(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDeaths(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RecordContact(c echo.Context) error {
	var ct Contact
	if err := c.Bind(&ct); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordContact(c.Request().Context(), &ct); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ct)
}

func (h *Handler) UpdateContact(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var ct Contact
	if err := c.Bind(&ct); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ct.ID = id
	if err := h.svc.UpdateContact(c.Request().Context(), &ct); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ct)
}

func (h *Handler) ListContacts(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListContacts(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
