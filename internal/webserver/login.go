package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brightline/catalogd/internal/domain"
	"github.com/brightline/catalogd/pkg/common"
)

const tokenLifetime = 8 * time.Hour

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Level    string `json:"level"`
}

func (s *AdminServer) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and password required"})
	}

	var opr domain.SysOpr
	err := s.app.DB().Where("username = ?", req.Username).First(&opr).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		zap.L().Error("login query failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	hashed := common.Sha256HashWithSalt(req.Password, common.GetSecretSalt())
	if opr.Password != hashed || !strings.EqualFold(opr.Status, common.ENABLED) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	claims := jwt.MapClaims{
		"usr": opr.Username,
		"lvl": opr.Level,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.app.Config().Web.JwtSecret))
	if err != nil {
		zap.L().Error("token signing failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "server error"})
	}

	s.app.DB().Model(&domain.SysOpr{}).Where("id = ?", opr.ID).
		Update("last_login", time.Now())

	return c.JSON(http.StatusOK, loginResponse{
		Token:    signed,
		Username: opr.Username,
		Level:    opr.Level,
	})
}

// OperatorName resolves the operator identity from the verified JWT.
func OperatorName(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "anonymous"
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "anonymous"
	}
	if usr, ok := claims["usr"].(string); ok && usr != "" {
		return usr
	}
	return "anonymous"
}
