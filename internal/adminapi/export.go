package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uzretail/storebot/internal/report"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportProducts(c echo.Context) error {
	ctx := c.Request().Context()
	products, err := s.inventory.ListProducts(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list products", err.Error())
	}
	st, err := s.inventory.Stats(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query stats", err.Error())
	}
	data, err := report.ProductsWorkbook(products, st)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build workbook", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+report.WorkbookFilename(time.Now())+`"`)
	return c.Blob(http.StatusOK, xlsxMime, data)
}
