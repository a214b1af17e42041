// Package adminapi exposes the product catalog over the authenticated
// admin HTTP API.
package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/app"
	"github.com/brightline/catalogd/internal/catalog"
	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/webserver"
)

// InitRouter registers every admin API route; call after webserver.Init.
func InitRouter() {
	registerProductRoutes()
	registerCategoryRoutes()
	registerAttributeRoutes()
	registerAssetRoutes()
	registerOplogRoutes()
}

func GetApp(c echo.Context) *app.Application {
	return webserver.GetApp()
}

func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetApp().DB()
}

func GetCatalog(c echo.Context) *catalog.Manager {
	return webserver.GetApp().Catalog()
}

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

type pagedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination interface{} `json:"pagination"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiResponse{Success: false, Error: &apiError{
		Code:    code,
		Message: message,
		Detail:  detail,
	}})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return c.JSON(http.StatusOK, pagedResponse{
		Success: true,
		Data:    rows,
		Pagination: map[string]interface{}{
			"total_items":  total,
			"total_pages":  totalPages,
			"current_page": page,
			"page_size":    pageSize,
		},
	})
}

// failErr translates a service error into the HTTP envelope by its kind.
func failErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAssetKind):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrUpstreamData):
		return fail(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error(), nil)
	case errors.Is(err, domain.ErrSerialization):
		return fail(c, http.StatusInternalServerError, "SERIALIZATION_ERROR", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error(), nil)
	}
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	perPage := c.QueryParam("perPage")
	if perPage == "" {
		perPage = c.QueryParam("pageSize")
	}
	if ps, err := strconv.Atoi(perPage); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func paramID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func paramInt64(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
