package patient

import (
	"errors"
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
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.POST("/patients", h.Create)
	api.PUT("/patients/:id", h.Update)
	api.DELETE("/patients/:id", h.Delete)
}

const masked = "*****"

// listedPatient hides birth place, birth date, and phone in listings. The
// full record stays available through the by-id endpoint.
type listedPatient struct {
	ID         int64   `json:"id"`
	FullName   string  `json:"full_name"`
	BirthPlace string  `json:"birth_place"`
	BirthDate  string  `json:"birth_date"`
	Gender     *string `json:"gender"`
	BloodGroup *string `json:"blood_group"`
	Rhesus     *string `json:"rhesus"`
	Occupation *string `json:"occupation"`
	Education  *string `json:"education"`
	Phone      string  `json:"phone"`
	Province   *string `json:"province"`
	City       *string `json:"city"`
}

func toListed(p Patient) listedPatient {
	return listedPatient{
		ID:         p.ID,
		FullName:   p.FullName,
		BirthPlace: masked,
		BirthDate:  masked,
		Gender:     p.Gender,
		BloodGroup: p.BloodGroup,
		Rhesus:     p.Rhesus,
		Occupation: p.Occupation,
		Education:  p.Education,
		Phone:      masked,
		Province:   p.Province,
		City:       p.City,
	}
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func conflictOr(err error, fallback int) error {
	var dup *DuplicateNameError
	if errors.As(err, &dup) {
		return echo.NewHTTPError(http.StatusConflict, map[string]interface{}{
			"error":       "duplicate patient name",
			"full_name":   dup.FullName,
			"existing_id": dup.ID,
		})
	}
	return echo.NewHTTPError(fallback, err.Error())
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return conflictOr(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	patients, total, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	listed := make([]listedPatient, 0, len(patients))
	for _, p := range patients {
		listed = append(listed, toListed(p))
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(listed, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return conflictOr(err, http.StatusBadRequest)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
