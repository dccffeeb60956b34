package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/internal/webserver"
)

func registerMessageRoutes() {
	webserver.ApiGET("/admin/api/messages", listMessages)
	webserver.ApiGET("/admin/api/messages/:id", getMessage)
	webserver.ApiDELETE("/admin/api/messages/:id", deleteMessage)
}

// listMessages returns contact submissions newest-first
func listMessages(c echo.Context) error {
	var messages []domain.ContactMessage
	if err := webserver.GetDB(c).Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages", err.Error())
	}
	return ok(c, messages)
}

func getMessage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID", nil)
	}
	var msg domain.ContactMessage
	if err := webserver.GetDB(c).Where("id = ?", id).First(&msg).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query message", err.Error())
	}
	return ok(c, msg)
}

func deleteMessage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid message ID", nil)
	}
	res := webserver.GetDB(c).Where("id = ?", id).Delete(&domain.ContactMessage{})
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete message", res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Message not found", nil)
	}
	return okMsg(c, "Message deleted successfully", nil)
}
