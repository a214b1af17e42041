package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brightline/catalogd/internal/webserver"
)

type categoryPayload struct {
	Name string `json:"name" form:"name"`
}

// registerCategoryRoutes registers category vocabulary CRUD and the
// product/category association endpoints
func registerCategoryRoutes() {
	webserver.ApiGET("/catalog/categories", listCategories)
	webserver.ApiPOST("/catalog/categories", createCategory)
	webserver.ApiPUT("/catalog/categories/:id", renameCategory)
	webserver.ApiDELETE("/catalog/categories/:id", deleteCategory)
	webserver.ApiPOST("/catalog/products/:id/categories", assignProductCategory)
	webserver.ApiDELETE("/catalog/products/:id/categories/:cid", removeProductCategory)
}

func listCategories(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows, total, err := GetCatalog(c).Categories().List(page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	cat, err := GetCatalog(c).Categories().Create(webserver.RequestContext(c), payload.Name)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cat)
}

func renameCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if err := GetCatalog(c).Categories().Rename(webserver.RequestContext(c), id, payload.Name); err != nil {
		return failErr(c, err)
	}
	cat, err := GetCatalog(c).Categories().GetByID(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cat)
}

func deleteCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	if err := GetCatalog(c).Categories().Delete(webserver.RequestContext(c), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func assignProductCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	m := GetCatalog(c)
	rctx := webserver.RequestContext(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	cat, err := m.Categories().GetOrCreate(rctx, payload.Name)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.AssignCategory(rctx, p, cat); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID, "category_id": cat.ID})
}

func removeProductCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	cid, err := paramInt64(c, "cid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	cat, err := m.Categories().GetByID(cid)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.RemoveCategory(webserver.RequestContext(c), p, cat); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID, "category_id": cat.ID})
}
