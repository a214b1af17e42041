// Package oplog records mutating catalog operations to the sys_opr_log
// table and mirrors them to the zap logger.
package oplog

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/pkg/common"
)

// Severity levels of an operation log entry.
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
	SeverityNotice   = "NOTICE"
	SeverityInfo     = "INFO"
)

// RequestContext carries the caller identity for audit logging. HTTP
// handlers populate it from the request; CLI and seed paths build a
// synthetic one instead of relying on ambient globals.
type RequestContext struct {
	Operator   string
	IP         string
	UserAgent  string
	RequestURI string
	Method     string
}

// SystemContext returns the synthetic context used by non-HTTP callers.
func SystemContext() RequestContext {
	return RequestContext{
		Operator:   "system",
		IP:         "127.0.0.1",
		UserAgent:  "catalogd-cli",
		RequestURI: "-",
		Method:     "CLI",
	}
}

type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

// Write persists one audit entry. A message containing "Connection refused"
// is dropped silently so a dead log sink cannot cascade into the operation
// that tried to report it.
func (w *Writer) Write(rctx RequestContext, action, message, severity string) {
	if strings.Contains(message, "Connection refused") {
		return
	}

	entry := domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   rctx.Operator,
		OprIp:     rctx.IP,
		OptAction: action,
		OptDesc:   message,
		Severity:  severity,
		OptTime:   time.Now(),
	}
	if err := w.db.Create(&entry).Error; err != nil {
		zap.L().Error("failed to write operation log",
			zap.String("action", action), zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("action", action),
		zap.String("operator", rctx.Operator),
		zap.String("ip", rctx.IP),
	}
	switch severity {
	case SeverityCritical:
		zap.L().Error(message, fields...)
	case SeverityWarning:
		zap.L().Warn(message, fields...)
	default:
		zap.L().Info(message, fields...)
	}
}

// CleanupBefore removes audit entries older than the cutoff, returning the
// number of rows deleted.
func (w *Writer) CleanupBefore(cutoff time.Time) (int64, error) {
	res := w.db.Where("opt_time < ?", cutoff).Delete(&domain.SysOprLog{})
	return res.RowsAffected, res.Error
}
