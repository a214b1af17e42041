package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brightline/catalogd/internal/webserver"
)

type attributePayload struct {
	Name  string      `json:"name" form:"name"`
	Value interface{} `json:"value"`
}

// registerAttributeRoutes registers attribute vocabulary CRUD and the
// product/attribute association endpoints
func registerAttributeRoutes() {
	webserver.ApiGET("/catalog/attributes", listAttributes)
	webserver.ApiPOST("/catalog/attributes", createAttribute)
	webserver.ApiPUT("/catalog/attributes/:id", renameAttribute)
	webserver.ApiDELETE("/catalog/attributes/:id", deleteAttribute)
	webserver.ApiPOST("/catalog/products/:id/attributes", assignProductAttribute)
	webserver.ApiPUT("/catalog/products/:id/attributes/:aid", updateProductAttribute)
	webserver.ApiDELETE("/catalog/products/:id/attributes/:aid", removeProductAttribute)
}

func listAttributes(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows, total, err := GetCatalog(c).Attributes().List(page, pageSize)
	if err != nil {
		return failErr(c, err)
	}
	return paged(c, rows, total, page, pageSize)
}

func createAttribute(c echo.Context) error {
	var payload attributePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse attribute", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	attr, err := GetCatalog(c).Attributes().Create(webserver.RequestContext(c), payload.Name)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, attr)
}

func renameAttribute(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid attribute ID", nil)
	}
	var payload attributePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse attribute", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if err := GetCatalog(c).Attributes().Rename(webserver.RequestContext(c), id, payload.Name); err != nil {
		return failErr(c, err)
	}
	attr, err := GetCatalog(c).Attributes().GetByID(id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, attr)
}

func deleteAttribute(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid attribute ID", nil)
	}
	if err := GetCatalog(c).Attributes().Delete(webserver.RequestContext(c), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func assignProductAttribute(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload attributePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse attribute", err.Error())
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
	attr, err := m.Attributes().GetOrCreate(rctx, payload.Name)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.AssignAttribute(rctx, p, attr, payload.Value); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID, "attribute_id": attr.ID})
}

func updateProductAttribute(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	aid, err := paramInt64(c, "aid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid attribute ID", nil)
	}
	var payload attributePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse attribute", err.Error())
	}

	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	attr, err := m.Attributes().GetByID(aid)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.UpdateAttributeValue(webserver.RequestContext(c), p, attr, payload.Value); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID, "attribute_id": attr.ID})
}

func removeProductAttribute(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	aid, err := paramInt64(c, "aid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid attribute ID", nil)
	}

	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	attr, err := m.Attributes().GetByID(aid)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.RemoveAttribute(webserver.RequestContext(c), p, attr); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID, "attribute_id": attr.ID})
}
