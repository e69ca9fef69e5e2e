package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/internal/ledger"
)

func (s *Server) listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	category := strings.TrimSpace(c.QueryParam("category"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	// whitelist sort columns
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"quantity":   "quantity",
		"price":      "price",
		"updated_at": "updated_at",
	}
	sortCol, found := allowed[sortField]
	if !found {
		sortCol = "name"
	}

	db := s.db.WithContext(c.Request().Context()).Model(&domain.Product{})
	if q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func (s *Server) getProduct(c echo.Context) error {
	name := c.Param("name")
	p, err := s.inventory.GetProduct(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}

type adjustPayload struct {
	Name     string `json:"name"`
	Quantity *int64 `json:"quantity"`
	Reason   string `json:"reason"`
}

// adjustProduct overwrites a product's quantity, recording an audit row.
func (s *Server) adjustProduct(c echo.Context) error {
	var payload adjustPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse adjustment", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Quantity == nil || *payload.Quantity < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity is required and must be >= 0", nil)
	}
	p, err := s.inventory.SetQuantity(c.Request().Context(), payload.Name, *payload.Quantity, payload.Reason, 0)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to adjust product", err.Error())
	}
	return ok(c, p)
}
