package adminapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brightline/catalogd/internal/webserver"
)

const maxAssetSize = 8 << 20 // 8 MiB upload cap

// registerAssetRoutes registers icon/image upload and delete endpoints
// plus the on-demand orphan sweep
func registerAssetRoutes() {
	webserver.ApiPOST("/catalog/products/:id/icon", uploadProductIcon)
	webserver.ApiDELETE("/catalog/products/:id/icon", deleteProductIcon)
	webserver.ApiPOST("/catalog/products/:id/images", uploadProductImage)
	webserver.ApiDELETE("/catalog/products/:id/images/:imgid", deleteProductImage)
	webserver.ApiPOST("/catalog/assets/reconcile", reconcileAssets)
}

// readUpload pulls the "file" part out of the multipart form.
func readUpload(c echo.Context) (name string, content []byte, err error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	if fh.Size > maxAssetSize {
		return "", nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	src, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	content, err = io.ReadAll(io.LimitReader(src, maxAssetSize))
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, content, nil
}

func uploadProductIcon(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	name, content, err := readUpload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read upload", err.Error())
	}

	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	icon, err := m.CreateProductIcon(webserver.RequestContext(c), p, name, content)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, icon)
}

func deleteProductIcon(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.DeleteProductIcon(webserver.RequestContext(c), p); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID})
}

func uploadProductImage(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	name, content, err := readUpload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read upload", err.Error())
	}

	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	img, err := m.CreateProductImage(webserver.RequestContext(c), p, name, content)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, img)
}

func deleteProductImage(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	imgID, err := paramInt64(c, "imgid")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID", nil)
	}

	m := GetCatalog(c)
	p, err := m.GetProduct(id)
	if err != nil {
		return failErr(c, err)
	}
	if err := m.DeleteProductImage(webserver.RequestContext(c), p, imgID); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"product_id": p.ID, "image_id": imgID})
}

func reconcileAssets(c echo.Context) error {
	removed, err := GetCatalog(c).ReconcileOrphanedAssets()
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"removed": removed})
}
