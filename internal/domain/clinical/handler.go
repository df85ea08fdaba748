package clinical

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
	api.GET("/diagnoses", h.ListDiagnoses)
	api.POST("/diagnoses", h.RecordDiagnosis)
	api.PUT("/diagnoses/:id", h.UpdateDiagnosis)

	api.GET("/inhibitors", h.ListInhibitors)
	api.POST("/inhibitors", h.RecordInhibitor)
	api.PUT("/inhibitors/:id", h.UpdateInhibitor)

	api.GET("/virus-tests", h.ListVirusTests)
	api.POST("/virus-tests", h.RecordVirusTest)
	api.PUT("/virus-tests/:id", h.UpdateVirusTest)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) RecordDiagnosis(c echo.Context) error {
	var d Diagnosis
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordDiagnosis(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var d Diagnosis
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.UpdateDiagnosis(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDiagnoses(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDiagnoses(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RecordInhibitor(c echo.Context) error {
	var i Inhibitor
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordInhibitor(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *Handler) UpdateInhibitor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var i Inhibitor
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	i.ID = id
	if err := h.svc.UpdateInhibitor(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) ListInhibitors(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListInhibitors(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RecordVirusTest(c echo.Context) error {
	var v VirusTest
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordVirusTest(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateVirusTest(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var v VirusTest
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.ID = id
	if err := h.svc.UpdateVirusTest(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListVirusTests(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListVirusTests(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
