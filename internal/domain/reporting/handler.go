package reporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx/v3"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/gender", h.GenderPivot)
	api.GET("/reports/gender/csv", h.GenderPivotCSV)
	api.GET("/reports/hospital-caseload", h.HospitalCaseload)
	api.GET("/reports/hospital-caseload/xlsx", h.HospitalCaseloadXLSX)
	api.GET("/reports/hospitals", h.Directory)
	api.GET("/reports/patient-summary", h.PatientSummaries)
	api.GET("/reports/distribution", h.Distribution)
	api.GET("/reports/distribution/csv", h.DistributionCSV)
}

func (h *Handler) GenderPivot(c echo.Context) error {
	rows, err := h.svc.GenderPivot(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) GenderPivotCSV(c echo.Context) error {
	rows, err := h.svc.GenderPivot(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Kategori", "Laki-laki", "Perempuan", "Total"})
	for _, r := range rows {
		_ = w.Write([]string{r.Category, strconv.Itoa(r.Male), strconv.Itoa(r.Female), strconv.Itoa(r.Total)})
	}
	w.Flush()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="rekapitulasi_jenis_kelamin.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) HospitalCaseload(c echo.Context) error {
	items, err := h.svc.HospitalCaseload(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if top, err := strconv.Atoi(c.QueryParam("top")); err == nil && top > 0 && top < len(items) {
		items = items[:top]
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) HospitalCaseloadXLSX(c echo.Context) error {
	items, err := h.svc.HospitalCaseload(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	file := xlsx.NewFile()
	sh, err := file.AddSheet("Rekap_RS_Penanganan")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	header := sh.AddRow()
	for _, col := range []string{"Nama Rumah Sakit", "Jumlah Pasien", "Persentase (%)"} {
		header.AddCell().SetValue(col)
	}
	for _, item := range items {
		row := sh.AddRow()
		row.AddCell().SetValue(item.Hospital)
		row.AddCell().SetValue(item.Patients)
		row.AddCell().SetValue(fmt.Sprintf("%.2f", item.Percentage))
	}
	for i := 0; i < sh.MaxCol; i++ {
		_ = sh.SetColAutoWidth(i, xlsx.DefaultAutoWidth)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="rekap_rs_penanganan_pasien.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (h *Handler) Directory(c echo.Context) error {
	filterOf := func(param string) string {
		v := c.QueryParam(param)
		switch v {
		case FilterYes, FilterNo, FilterEmpty:
			return v
		}
		return FilterAll
	}

	entries, stats, err := h.svc.Directory(c.Request().Context(),
		c.QueryParam("province"), filterOf("hematologist"), filterOf("team"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  entries,
		"stats": stats,
	})
}

const maskedField = "*****"

// summaryRow masks the birth fields and phone the way the interactive
// listing does.
type summaryRow struct {
	ID         int64    `json:"id"`
	FullName   string   `json:"full_name"`
	BirthPlace string   `json:"birth_place"`
	BirthDate  string   `json:"birth_date"`
	BloodGroup *string  `json:"blood_group"`
	Rhesus     *string  `json:"rhesus"`
	Occupation *string  `json:"occupation"`
	VWD        *string  `json:"vwd"`
	CategoryA  *string  `json:"category_a"`
	CategoryB  *string  `json:"category_b"`
	FVIIIBU    *float64 `json:"fviii_bu"`
	FIXBU      *float64 `json:"fix_bu"`
	HBsAg      *string  `json:"hbsag"`
	AntiHCV    *string  `json:"anti_hcv"`
	HIV        *string  `json:"hiv"`
	Address    *string  `json:"address"`
	Phone      string   `json:"phone"`
	Father     *string  `json:"father"`
	Mother     *string  `json:"mother"`
	AgeYears   *int     `json:"age_years"`
}

func (h *Handler) PatientSummaries(c echo.Context) error {
	items, err := h.svc.PatientSummaries(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	rows := make([]summaryRow, 0, len(items))
	for _, s := range items {
		rows = append(rows, summaryRow{
			ID:         s.ID,
			FullName:   s.FullName,
			BirthPlace: maskedField,
			BirthDate:  maskedField,
			BloodGroup: s.BloodGroup,
			Rhesus:     s.Rhesus,
			Occupation: s.Occupation,
			VWD:        s.VWD,
			CategoryA:  s.CategoryA,
			CategoryB:  s.CategoryB,
			FVIIIBU:    s.FVIIIBU,
			FIXBU:      s.FIXBU,
			HBsAg:      s.HBsAg,
			AntiHCV:    s.AntiHCV,
			HIV:        s.HIV,
			Address:    s.Address,
			Phone:      maskedField,
			Father:     s.Father,
			Mother:     s.Mother,
			AgeYears:   s.AgeYears,
		})
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Distribution(c echo.Context) error {
	minCount, _ := strconv.Atoi(c.QueryParam("min_count"))
	result, err := h.svc.Distribution(c.Request().Context(), minCount)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DistributionCSV(c echo.Context) error {
	minCount, _ := strconv.Atoi(c.QueryParam("min_count"))
	result, err := h.svc.Distribution(c.Request().Context(), minCount)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Kota", "Propinsi", "Jumlah Pasien", "lat", "lon"})
	for _, p := range result.Points {
		_ = w.Write([]string{
			p.City, p.Province, strconv.Itoa(p.Patients),
			strconv.FormatFloat(p.Lat, 'f', -1, 64),
			strconv.FormatFloat(p.Lon, 'f', -1, 64),
		})
	}
	w.Flush()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="distribusi_pasien_per_kota.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
