package publicapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/catalog"
	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/internal/webserver"
	"github.com/modderpro/site/pkg/common"
)

// InitRouter registers every public endpoint on the web server.
func InitRouter() {
	webserver.PubGET("/", homePage)
	webserver.PubGET("/api/services", listActiveServices)
	webserver.PubGET("/api/services/:category", listActiveByCategory)
	webserver.PubPOST("/api/contact", submitContact)
}

// listActiveServices returns active services only. When the store is
// unreachable it degrades to the fixed fallback dataset so the public site
// keeps working.
func listActiveServices(c echo.Context) error {
	services, err := webserver.GetApp(c).Catalog().ListActive(c.Request().Context(), "")
	if err != nil {
		zap.L().Error("public listing failed, serving fallback data", zap.Error(err))
		return c.JSON(http.StatusOK, catalog.FallbackServices())
	}
	return c.JSON(http.StatusOK, services)
}

func listActiveByCategory(c echo.Context) error {
	category := strings.TrimSpace(c.Param("category"))
	services, err := webserver.GetApp(c).Catalog().ListActive(c.Request().Context(), category)
	if err != nil {
		zap.L().Error("public category listing failed, serving fallback data",
			zap.String("category", category), zap.Error(err))
		return c.JSON(http.StatusOK, catalog.FallbackByCategory(category))
	}
	return c.JSON(http.StatusOK, services)
}

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
	Service string `json:"service" form:"service"`
}

// submitContact persists a contact/order submission and fires a best-effort
// operator notification. Delivery failures never fail the request.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Unable to parse request",
		})
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false, "message": "Name and message are required",
		})
	}

	msg := &domain.ContactMessage{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     strings.TrimSpace(payload.Email),
		Message:   payload.Message,
		Service:   strings.TrimSpace(payload.Service),
		CreatedAt: time.Now(),
	}
	if err := webserver.GetDB(c).Create(msg).Error; err != nil {
		zap.L().Error("failed to store contact message", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": "Failed to send message",
		})
	}

	go webserver.GetApp(c).Mailer().NotifyContact(msg)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true, "message": "Message sent successfully",
	})
}
