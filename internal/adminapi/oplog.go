package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/internal/webserver"
)

// registerOplogRoutes registers the audit log query endpoint
func registerOplogRoutes() {
	webserver.ApiGET("/system/oplog", listOplog)
}

func listOplog(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.SysOprLog{})
	if action := strings.TrimSpace(c.QueryParam("action")); action != "" {
		db = db.Where("opt_action = ?", action)
	}
	if operator := strings.TrimSpace(c.QueryParam("operator")); operator != "" {
		db = db.Where("opr_name = ?", operator)
	}
	if severity := strings.TrimSpace(c.QueryParam("severity")); severity != "" {
		db = db.Where("severity = ?", strings.ToUpper(severity))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query oplog", err.Error())
	}

	var rows []domain.SysOprLog
	err := db.Order("opt_time DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query oplog", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}
