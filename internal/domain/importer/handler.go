package importer

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx/v3"

	"github.com/pwh/registry/internal/refdata"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxUploadBytes bounds import uploads; the registry's workbooks are small.
const maxUploadBytes = 20 << 20

type Handler struct {
	importer *Importer
	exporter *Exporter
	ref      *refdata.Reference
}

func NewHandler(importer *Importer, exporter *Exporter, ref *refdata.Reference) *Handler {
	return &Handler{importer: importer, exporter: exporter, ref: ref}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/import", h.Import)
	api.GET("/export", h.Export)
	api.GET("/export/template", h.Template)
}

func (h *Handler) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}
	if fh.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "workbook too large")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	summary, err := h.importer.Run(c.Request().Context(), data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) Export(c echo.Context) error {
	file, err := h.exporter.BuildExport(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendWorkbook(c, file, "pwh_export.xlsx")
}

func (h *Handler) Template(c echo.Context) error {
	file, err := BuildTemplate(h.ref)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return sendWorkbook(c, file, "pwh_bulk_template.xlsx")
}

func sendWorkbook(c echo.Context, file *xlsx.File, name string) error {
	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
