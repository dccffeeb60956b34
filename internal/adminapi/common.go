package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/domain"
)

// InitRouter registers every admin endpoint on the web server.
func InitRouter() {
	registerAuthRoutes()
	registerServiceRoutes()
	registerUploadRoutes()
	registerMessageRoutes()
}

// ok responds with the standard success envelope.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// okMsg responds with a success envelope carrying a human message and an
// optional service record.
func okMsg(c echo.Context, message string, svc *domain.Service) error {
	body := map[string]interface{}{
		"success": true,
		"message": message,
	}
	if svc != nil {
		body["service"] = svc
	}
	return c.JSON(http.StatusOK, body)
}

// fail responds with the standard error envelope. detail is logged, never
// sent to the client.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	if detail != nil {
		zap.L().Error("admin api error",
			zap.String("code", code),
			zap.String("uri", c.Request().RequestURI),
			zap.Any("detail", detail))
	}
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
