package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brightline/catalogd/internal/catalog"
	"github.com/brightline/catalogd/internal/webserver"
)

// registerProductRoutes registers the product CRUD and state endpoints
func registerProductRoutes() {
	webserver.ApiGET("/catalog/products", listProducts)
	webserver.ApiGET("/catalog/products/:id", getProduct)
	webserver.ApiPOST("/catalog/products", createProduct)
	webserver.ApiPUT("/catalog/products/:id", updateProduct)
	webserver.ApiDELETE("/catalog/products/:id", deleteProduct)
	webserver.ApiPOST("/catalog/products/:id/activate", activateProduct)
	webserver.ApiPOST("/catalog/products/:id/deactivate", deactivateProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := catalog.ListQuery{
		Search:   strings.TrimSpace(c.QueryParam("q")),
		Page:     page,
		PageSize: pageSize,
		Sort:     strings.TrimSpace(c.QueryParam("sort")),
		Order:    strings.TrimSpace(c.QueryParam("order")),
		Currency: strings.TrimSpace(c.QueryParam("currency")),
	}
	if v := strings.TrimSpace(c.QueryParam("category")); v != "" {
		q.Categories = strings.Split(v, ",")
	}
	if v := strings.TrimSpace(c.QueryParam("attribute")); v != "" {
		q.Attributes = strings.Split(v, ",")
	}

	views, info, err := GetCatalog(c).ProductsList(q)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(http.StatusOK, pagedResponse{
		Success:    true,
		Data:       views,
		Pagination: info,
	})
}

func getProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := GetCatalog(c).GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	view, err := GetCatalog(c).FormatProductData(p, c.QueryParam("currency"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, view)
}

func createProduct(c echo.Context) error {
	var payload catalog.CreateProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p, err := GetCatalog(c).CreateProduct(webserver.RequestContext(c), payload)
	if err != nil {
		return failErr(c, err)
	}
	view, err := GetCatalog(c).FormatProductData(p, "")
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, view)
}

func updateProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload catalog.EditProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	if err := GetCatalog(c).EditProduct(webserver.RequestContext(c), id, payload); err != nil {
		return failErr(c, err)
	}
	p, err := GetCatalog(c).GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	view, err := GetCatalog(c).FormatProductData(p, "")
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, view)
}

func deleteProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetCatalog(c).DeleteProduct(webserver.RequestContext(c), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func activateProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetCatalog(c).ActivateProduct(webserver.RequestContext(c), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "active": true})
}

func deactivateProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetCatalog(c).DeactivateProduct(webserver.RequestContext(c), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "active": false})
}
